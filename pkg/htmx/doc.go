// Package htmx holds the few HTMX request and response helpers the form uses.
//
// Detect HTMX requests with [IsHTMX], redirect with [Redirect] (HX-Redirect
// for HTMX, 302 otherwise) and configure partial responses with render
// options:
//
//	cfg := htmx.NewConfig(
//		htmx.WithRetarget("#banner"),
//		htmx.WithTriggerDetail("form:sent", map[string]string{"status": "ok"}),
//	)
//	cfg.ApplyHeaders(w)
package htmx
