// Package internal holds the HTTP framework behind formrelay: the App, its
// Router adapter over chi, the request Context, and the server run loop.
//
// Import "github.com/dmitrymomot/formrelay" instead; it re-exports this API.
//
// # Application
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(relay, form),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("smtp", sender.Ping)),
//	)
//	err := app.Run(":8080", internal.Logger(log))
//
// App implements http.Handler, so tests can drive it with httptest directly.
//
// # Context
//
// Context embeds context.Context and delegates Deadline, Done, Err and Value
// to the request context, so it can be passed to any blocking call:
//
//	func (h *Relay) send(c internal.Context) error {
//	    if err := h.sender.Send(c, email); err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, response)
//	}
//
// # Binding
//
// Bind, BindQuery and BindJSON decode the request, apply `sanitize` struct
// tags, then call Validate when the target implements Validatable. Validation
// failures come back as ValidationErrors, translated for the request language
// when the I18n middleware ran. Decode failures are returned as errors;
// IsBindError tells them apart from server faults.
//
// # Middleware
//
// Middleware uses the Context signature. Plain net/http middleware such as
// gorilla/csrf is registered with WithHTTPMiddleware and runs first.
// Both kinds share one ResponseWriter per request.
//
// # HTMX
//
// For requests carrying HX-Request, non-200 status codes are sent as 200 so
// the returned fragment is swapped in, and Redirect uses HX-Redirect.
//
// # Errors
//
// HTTPError carries a status code, a user-facing Message and an optional
// Detail. Handlers return it and the ErrorHandler renders it:
//
//	return internal.ErrInternal("Failed to send email", internal.WithDetail(err.Error()))
//
// # Shutdown
//
// Run listens for SIGINT and SIGTERM, drains the server within the shutdown
// timeout, then runs shutdown hooks in order.
package internal
