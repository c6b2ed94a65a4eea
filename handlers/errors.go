package handlers

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/views"
)

// ErrorHandler renders handler errors. Relay paths answer with the relay's
// JSON error shape; everything else gets an error page.
func ErrorHandler(c internal.Context, err error) error {
	code := http.StatusInternalServerError
	message, detail := ErrorFailedToSend, "internal error"

	if herr := internal.AsHTTPError(err); herr != nil {
		code, message, detail = herr.Code, herr.Message, herr.Detail
	}

	switch {
	case code >= http.StatusInternalServerError:
		c.LogError("request failed", "error", err)
	default:
		c.LogWarn("request rejected", "status", code, "error", err)
	}

	if isRelayRequest(c) {
		if middlewares.IsPanicError(err) {
			message, detail = ErrorFailedToSend, "internal error"
		}
		return c.JSON(code, client.Response{Error: message, Details: detail})
	}

	return renderError(c, code, pageMessage(c, code))
}

// NotFound renders the 404 page.
func NotFound(c internal.Context) error {
	if isRelayRequest(c) {
		return c.JSON(http.StatusNotFound, client.Response{Error: "Not Found"})
	}
	return renderError(c, http.StatusNotFound, pageMessage(c, http.StatusNotFound))
}

// MethodNotAllowed renders the 405 page.
func MethodNotAllowed(c internal.Context) error {
	if isRelayRequest(c) {
		return c.JSON(http.StatusMethodNotAllowed, client.Response{Error: "Method Not Allowed"})
	}
	return renderError(c, http.StatusMethodNotAllowed, pageMessage(c, http.StatusMethodNotAllowed))
}

func isRelayRequest(c internal.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/functions/")
}

func pageMessage(c internal.Context, code int) string {
	switch code {
	case http.StatusNotFound:
		return c.T("error_page.not_found")
	case http.StatusMethodNotAllowed:
		return c.T("error_page.method_not_allowed")
	case http.StatusForbidden:
		return c.T("error_page.forbidden")
	default:
		if code >= http.StatusInternalServerError {
			return c.T("error_page.internal")
		}
		return http.StatusText(code)
	}
}

func renderError(c internal.Context, code int, message string) error {
	data := views.ErrorData{Page: page(c), Code: code, Message: message}
	return c.RenderPartial(code, views.ErrorPage(data), views.ErrorContent(data))
}
