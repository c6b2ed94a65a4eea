// Package formrelay is a small framework for serving a contact form and the
// mail relay it submits to.
//
// The application type, routing, context and error types live in internal
// and are re-exported here. Handlers implement [Handler] to declare routes:
//
//	type RelayHandler struct {
//	    sender contact.EmailSender
//	}
//
//	func (h *RelayHandler) Routes(r formrelay.Router) {
//	    r.OPTIONS("/functions/v1/send-email", h.preflight)
//	    r.POST("/functions/v1/send-email", h.send)
//	}
//
// An application is assembled once with options and then run:
//
//	app := formrelay.New(
//	    formrelay.WithCustomLogger(log),
//	    formrelay.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    formrelay.WithHandlers(relay, form),
//	    formrelay.WithHealthChecks(formrelay.WithReadinessCheck("smtp", sender.Ping)),
//	)
//
//	err := app.Run(":8080", formrelay.Logger(log))
//
// # Errors
//
// Handlers return errors instead of writing them. [HTTPError] carries the
// status code, a message and an optional detail; the application's
// [ErrorHandler] decides how to render them.
//
//	return formrelay.ErrUnauthorized("Unauthorized", formrelay.WithDetail("token expired"))
//
// # Binding
//
// [Context.Bind] decodes the form, applies `sanitize` tags and calls
// Validate when the target implements it. Validation problems come back
// as [ValidationErrors], translated for the request language.
package formrelay
