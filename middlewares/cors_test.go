package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formrelay/middlewares"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	withOrigin := func(method, origin string) *http.Request {
		req := httptest.NewRequest(method, "/", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return req
	}

	t.Run("wildcard by default", func(t *testing.T) {
		t.Parallel()

		w := serve(t, withOrigin(http.MethodGet, "https://site.example"), okHandler, middlewares.CORS())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "handler", w.Body.String())
	})

	t.Run("no headers without origin", func(t *testing.T) {
		t.Parallel()

		w := serve(t, withOrigin(http.MethodGet, ""), okHandler, middlewares.CORS())
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origins are echoed", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithAllowOrigins("https://allowed.example"))

		w := serve(t, withOrigin(http.MethodGet, "https://allowed.example"), okHandler, mw)
		assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Values("Vary"), "Origin")

		w = serve(t, withOrigin(http.MethodGet, "https://evil.example"), okHandler, mw)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "handler", w.Body.String())
	})

	t.Run("origin func overrides list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://allowed.example"),
			middlewares.WithAllowOriginFunc(func(origin string) bool { return origin == "https://dynamic.example" }),
		)

		w := serve(t, withOrigin(http.MethodGet, "https://dynamic.example"), okHandler, mw)
		assert.Equal(t, "https://dynamic.example", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(t, withOrigin(http.MethodGet, "https://allowed.example"), okHandler, mw)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("credentials echo the origin", func(t *testing.T) {
		t.Parallel()

		w := serve(t, withOrigin(http.MethodGet, "https://site.example"), okHandler,
			middlewares.CORS(middlewares.WithAllowCredentials(), middlewares.WithExposeHeaders("X-Request-ID")))
		assert.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight default", func(t *testing.T) {
		t.Parallel()

		w := serve(t, withOrigin(http.MethodOptions, "https://site.example"), okHandler,
			middlewares.CORS(middlewares.WithMaxAge(time.Hour)))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("relay preflight without origin", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowHeaders("authorization", "x-client-info", "apikey", "content-type"),
			middlewares.WithPreflightResponse(http.StatusOK, "ok"),
			middlewares.WithAlwaysSend(),
		)

		w := serve(t, withOrigin(http.MethodOptions, ""), okHandler, mw)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))

		w = serve(t, withOrigin(http.MethodPost, ""), okHandler, mw)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "handler", w.Body.String())
	})
}
