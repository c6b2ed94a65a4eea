// Package middlewares provides the request middleware used by formrelay.
//
// # Request ID
//
// RequestID keeps an upstream X-Request-ID or generates a UUID, stores it in
// the context and echoes it in the response. Pair it with RequestIDExtractor
// so every log record carries request_id:
//
//	formrelay.New(
//	    formrelay.WithLogger("relay", logCfg, middlewares.RequestIDExtractor()),
//	    formrelay.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics into *PanicError and hands them to the app's
// ErrorHandler, which decides how to answer.
//
// # CORS
//
// CORS answers preflight requests and decorates responses. The relay endpoint
// uses it with a fixed preflight answer so browsers get headers even without
// an Origin header:
//
//	r.Use(middlewares.CORS(
//	    middlewares.WithAllowHeaders("authorization", "x-client-info", "apikey", "content-type"),
//	    middlewares.WithPreflightResponse(http.StatusOK, "ok"),
//	    middlewares.WithAlwaysSend(),
//	))
//
// # JWT
//
// JWT verifies an HS256 bearer token with pkg/jwt and stores the claims.
// Missing or invalid tokens produce a 401 HTTPError.
//
// # I18n
//
// I18n resolves the language from ?lang=, the lang cookie, then
// Accept-Language, and stores a Translator for c.T and Bind.
//
// # CSP and CSRF
//
// CSP sets a Content-Security-Policy header rendered by crewjam/csp.
// CSRF wraps gorilla/csrf; views read the token with GetCSRFField.
package middlewares
