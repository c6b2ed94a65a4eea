package internal

// Handler declares routes on a router.
//
// Example:
//
//	type RelayHandler struct {
//	    sender mailer.Sender
//	}
//
//	func (h *RelayHandler) Routes(r formrelay.Router) {
//	    r.OPTIONS("/functions/v1/send-email", h.preflight)
//	    r.POST("/functions/v1/send-email", h.send)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Bearer(next formrelay.HandlerFunc) formrelay.HandlerFunc {
//	    return func(c formrelay.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return formrelay.ErrUnauthorized("missing token")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
