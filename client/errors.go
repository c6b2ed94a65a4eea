package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by New for an unusable relay URL.
	ErrInvalidConfig = errors.New("invalid relay client config")
	// ErrTransport wraps failures to reach the relay.
	ErrTransport = errors.New("relay request failed")
	// ErrDecode wraps relay responses that are not the expected JSON.
	ErrDecode = errors.New("undecodable relay response")
)

// ResponseError is a non-2xx relay response with a JSON body.
type ResponseError struct {
	StatusCode int
	Message    string // "error" field
	Details    string // "details" field
}

func (e *ResponseError) Error() string {
	switch {
	case e.Message != "" && e.Details != "":
		return fmt.Sprintf("relay responded %d: %s: %s", e.StatusCode, e.Message, e.Details)
	case e.Message != "":
		return fmt.Sprintf("relay responded %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("relay responded %d", e.StatusCode)
	}
}

// Text is what the form shows for this failure: details, then the error
// message, then fallback.
func (e *ResponseError) Text(fallback string) string {
	if e.Details != "" {
		return e.Details
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}
