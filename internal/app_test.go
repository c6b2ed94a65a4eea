package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal"
)

type routesFunc func(r internal.Router)

func (f routesFunc) Routes(r internal.Router) { f(r) }

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func tagMiddleware(tag string, order *[]string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			*order = append(*order, tag)
			return next(c)
		}
	}
}

func TestAppRouting(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routesFunc(func(r internal.Router) {
		r.Route("/functions/v1", func(r internal.Router) {
			r.OPTIONS("/send-email", func(c internal.Context) error {
				return c.String(http.StatusOK, "ok")
			})
			r.POST("/send-email", func(c internal.Context) error {
				return c.JSON(http.StatusOK, map[string]string{"message": "sent"})
			})
		})
		r.GET("/terms/{lang}", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Param("lang"))
		})
	})))

	w := serve(app, httptest.NewRequest(http.MethodOptions, "/functions/v1/send-email", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = serve(app, httptest.NewRequest(http.MethodPost, "/functions/v1/send-email", nil))
	assert.JSONEq(t, `{"message":"sent"}`, w.Body.String())

	w = serve(app, httptest.NewRequest(http.MethodGet, "/terms/ka", nil))
	assert.Equal(t, "ka", w.Body.String())

	w = serve(app, httptest.NewRequest(http.MethodGet, "/functions/v1/send-email", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAppMiddlewareOrder(t *testing.T) {
	t.Parallel()

	var order []string
	httpMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "http")
			next.ServeHTTP(w, r)
		})
	}

	app := internal.New(
		internal.WithMiddleware(tagMiddleware("global-1", &order), tagMiddleware("global-2", &order)),
		internal.WithHTTPMiddleware(httpMW),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(tagMiddleware("group", &order))
				r.GET("/", func(c internal.Context) error {
					order = append(order, "handler")
					return c.NoContent(http.StatusNoContent)
				}, tagMiddleware("route-1", &order), tagMiddleware("route-2", &order))
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"http", "global-1", "global-2", "group", "route-1", "route-2", "handler"}, order)
}

func TestAppMiddlewareValuesReachHandler(t *testing.T) {
	t.Parallel()

	type langKey struct{}
	setLang := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(langKey{}, "ka")
			return next(c)
		}
	}

	app := internal.New(
		internal.WithMiddleware(setLang),
		internal.WithHandlers(routesFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, internal.ContextValue[string](c, langKey{}))
			})
		})),
	)

	assert.Equal(t, "ka", serve(app, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
}

func TestAppErrorHandling(t *testing.T) {
	t.Parallel()

	failing := routesFunc(func(r internal.Router) {
		r.GET("/fail", func(c internal.Context) error {
			return errors.New("boom")
		})
		r.GET("/late", func(c internal.Context) error {
			_ = c.String(http.StatusOK, "partial")
			return errors.New("after write")
		})
	})

	t.Run("default handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(failing))
		w := serve(app, httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("custom handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(failing),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}),
		)
		w := serve(app, httptest.NewRequest(http.MethodGet, "/fail", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
	})

	t.Run("written response is kept", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(failing))
		w := serve(app, httptest.NewRequest(http.MethodGet, "/late", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})

	t.Run("not found and method not allowed", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(failing),
			internal.WithNotFoundHandler(func(c internal.Context) error {
				return c.String(http.StatusNotFound, "nothing here")
			}),
			internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
				return c.String(http.StatusMethodNotAllowed, "nope")
			}),
		)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "nothing here", w.Body.String())

		w = serve(app, httptest.NewRequest(http.MethodPost, "/fail", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "nope", w.Body.String())
	})
}

func TestAppHealthChecks(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks(
			internal.WithReadinessCheck("smtp", func(context.Context) error { return nil }),
		))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing readiness check", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHealthChecks(
			internal.WithReadinessPath("/readyz"),
			internal.WithLivenessPath("/livez"),
			internal.WithReadinessCheck("smtp", func(context.Context) error { return errors.New("connection refused") }),
		))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		w = serve(app, httptest.NewRequest(http.MethodGet, "/livez", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAppStaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"static/form.js":   {Data: []byte("console.log('form')")},
		"static/css/a.css": {Data: []byte("body{}")},
	}
	app := internal.New(internal.WithStaticFiles("/static/", fsys, "static"))

	w := serve(app, httptest.NewRequest(http.MethodGet, "/static/form.js", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('form')", w.Body.String())
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = serve(app, httptest.NewRequest(http.MethodGet, "/static/css/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
