package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/formrelay/internal"
)

// serve mounts h behind mw on every method at "/" and sends req.
func serve(t *testing.T, req *http.Request, h internal.HandlerFunc, mw ...internal.Middleware) *httptest.ResponseRecorder {
	t.Helper()

	app := internal.New(
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(mw...)
				r.GET("/", h)
				r.POST("/", h)
				r.OPTIONS("/", h)
			})
		})),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			if herr := internal.AsHTTPError(err); herr != nil {
				return c.JSON(herr.Code, map[string]string{"error": herr.Message, "details": herr.Detail})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

func okHandler(c internal.Context) error {
	return c.String(http.StatusOK, "handler")
}
