package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/pkg/cookie"
	"github.com/dmitrymomot/formrelay/pkg/htmx"
	"github.com/dmitrymomot/formrelay/pkg/i18n"
	"github.com/dmitrymomot/formrelay/pkg/validator"
)

// requestVia registers fn at "/" for both GET and POST, sends req through a
// fresh App and returns the recorded response.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(&captureHandler{fn: fn}))
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

type captureHandler struct {
	fn func(c internal.Context) error
}

func (h *captureHandler) Routes(r internal.Router) {
	r.GET("/", h.fn)
	r.POST("/", h.fn)
}

type textComponent string

func (s textComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type contactInput struct {
	Name  string `form:"firstName" json:"firstName" sanitize:"trim"`
	Email string `form:"email" json:"email" sanitize:"trim,lower"`
}

func (in *contactInput) Validate() error {
	return validator.Apply(
		validator.RequiredString("firstName", in.Name),
		validator.Email("email", in.Email),
	)
}

func newTranslator(t *testing.T, lang string) *i18n.Translator {
	t.Helper()
	svc, err := i18n.New(
		i18n.WithDefaultLanguage("ka"),
		i18n.WithLanguages("ka", "en"),
		i18n.WithTranslations("ka", "form", map[string]any{
			"validation": map[string]any{"required": "ველი {{field}} სავალდებულოა"},
			"hello":      "გამარჯობა, {{name}}",
		}),
		i18n.WithTranslations("en", "form", map[string]any{
			"validation": map[string]any{"required": "{{field}} is required"},
			"hello":      "Hello, {{name}}",
		}),
	)
	require.NoError(t, err)
	return i18n.NewTranslator(svc, lang, "form")
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestContextDelegatesToRequestContext(t *testing.T) {
	t.Parallel()

	t.Run("deadline", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		want, _ := ctx.Deadline()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) error {
			got, ok := c.Deadline()
			assert.True(t, ok)
			assert.Equal(t, want, got)
			return nil
		})
	})

	t.Run("cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		requestVia(t, req, nil, func(c internal.Context) error {
			<-c.Done()
			assert.ErrorIs(t, c.Err(), context.Canceled)
			return nil
		})
	})

	t.Run("value set via Set is visible through Value", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		requestVia(t, req, nil, func(c internal.Context) error {
			c.Set(key{}, "v")
			assert.Equal(t, "v", c.Value(key{}))
			assert.Equal(t, "v", internal.ContextValue[string](c, key{}))
			assert.Zero(t, internal.ContextValue[int](c, key{}))
			return nil
		})
	})
}

func TestContextResponses(t *testing.T) {
	t.Parallel()

	t.Run("JSON", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"message": "Email sent successfully"})
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"message":"Email sent successfully"}`, w.Body.String())
	})

	t.Run("String and NoContent", func(t *testing.T) {
		t.Parallel()

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.String(http.StatusAccepted, "ok")
		})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "ok", w.Body.String())

		w = requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Redirect uses HX-Redirect for htmx", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		w := requestVia(t, req, nil, func(c internal.Context) error {
			return c.Redirect(http.StatusSeeOther, "/thanks")
		})
		assert.Equal(t, "/thanks", w.Header().Get("HX-Redirect"))

		w = requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			return c.Redirect(http.StatusSeeOther, "/thanks")
		})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/thanks", w.Header().Get("Location"))
	})

	t.Run("RenderPartial picks fragment for htmx", func(t *testing.T) {
		t.Parallel()

		render := func(c internal.Context) error {
			return c.RenderPartial(http.StatusUnprocessableEntity, textComponent("<html>page</html>"), textComponent("<div>banner</div>"),
				htmx.WithOOB(textComponent("<span hx-swap-oob=\"true\">oob</span>")))
		}

		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, render)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "<html>page</html>", w.Body.String())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("HX-Request", "true")
		w = requestVia(t, req, nil, render)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `<div>banner</div><span hx-swap-oob="true">oob</span>`, w.Body.String())
	})
}

func TestContextBind(t *testing.T) {
	t.Parallel()

	t.Run("sanitizes and validates form input", func(t *testing.T) {
		t.Parallel()

		req := formRequest(url.Values{"firstName": {"  Nino "}, "email": {" NINO@Example.com "}})
		requestVia(t, req, nil, func(c internal.Context) error {
			var in contactInput
			verrs, err := c.Bind(&in)
			require.NoError(t, err)
			assert.Nil(t, verrs)
			assert.Equal(t, "Nino", in.Name)
			assert.Equal(t, "nino@example.com", in.Email)
			return nil
		})
	})

	t.Run("translates validation errors for the request language", func(t *testing.T) {
		t.Parallel()

		tr := newTranslator(t, "en")
		req := formRequest(url.Values{"email": {"nino@example.com"}})
		requestVia(t, req, nil, func(c internal.Context) error {
			c.Set(internal.TranslatorKey{}, tr)

			var in contactInput
			verrs, err := c.Bind(&in)
			require.NoError(t, err)
			require.True(t, verrs.Has("firstName"))
			assert.Equal(t, "firstName is required", verrs.First("firstName"))
			return nil
		})
	})

	t.Run("keeps default messages without translator", func(t *testing.T) {
		t.Parallel()

		req := formRequest(url.Values{})
		requestVia(t, req, nil, func(c internal.Context) error {
			var in contactInput
			verrs, err := c.Bind(&in)
			require.NoError(t, err)
			assert.True(t, verrs.Has("firstName"))
			assert.NotEmpty(t, verrs.First("firstName"))
			return nil
		})
	})

	t.Run("malformed JSON is a bind error", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		requestVia(t, req, nil, func(c internal.Context) error {
			var in contactInput
			verrs, err := c.BindJSON(&in)
			require.Error(t, err)
			assert.Nil(t, verrs)
			assert.True(t, internal.IsBindError(err))
			return nil
		})
	})

	t.Run("query without Validate skips validation", func(t *testing.T) {
		t.Parallel()

		type filter struct {
			Lang string `query:"lang"`
		}
		req := httptest.NewRequest(http.MethodGet, "/?lang=ka", nil)
		requestVia(t, req, nil, func(c internal.Context) error {
			var f filter
			verrs, err := c.BindQuery(&f)
			require.NoError(t, err)
			assert.Nil(t, verrs)
			assert.Equal(t, "ka", f.Lang)
			return nil
		})
	})
}

func TestContextI18n(t *testing.T) {
	t.Parallel()

	t.Run("T uses translator from context", func(t *testing.T) {
		t.Parallel()

		tr := newTranslator(t, "ka")
		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			c.Set(internal.TranslatorKey{}, tr)
			assert.Equal(t, "გამარჯობა, ნინო", c.T("hello", i18n.M{"name": "ნინო"}))
			assert.Equal(t, "ka", c.Language())
			return nil
		})
	})

	t.Run("falls back to key and LanguageKey", func(t *testing.T) {
		t.Parallel()

		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			assert.Equal(t, "hello", c.T("hello"))
			assert.Empty(t, c.Language())
			c.Set(internal.LanguageKey{}, "en")
			assert.Equal(t, "en", c.Language())
			return nil
		})
	})
}

func TestContextFlash(t *testing.T) {
	t.Parallel()

	const secret = "0123456789abcdef0123456789abcdef"

	t.Run("round trip across requests", func(t *testing.T) {
		t.Parallel()

		opts := []internal.Option{internal.WithCookieOptions(cookie.WithSecret(secret))}
		w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
			return c.SetFlash("result", map[string]string{"status": "success"})
		})
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		requestVia(t, req, opts, func(c internal.Context) error {
			var got map[string]string
			require.NoError(t, c.Flash("result", &got))
			assert.Equal(t, "success", got["status"])
			return nil
		})
	})

	t.Run("without secret", func(t *testing.T) {
		t.Parallel()

		requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), nil, func(c internal.Context) error {
			err := c.SetFlash("result", "x")
			assert.True(t, errors.Is(err, cookie.ErrNoSecret))
			return nil
		})
	})
}

func TestContextError(t *testing.T) {
	t.Parallel()

	var handled *internal.HTTPError
	opts := []internal.Option{internal.WithErrorHandler(func(c internal.Context, err error) error {
		handled = internal.AsHTTPError(err)
		return c.JSON(handled.Code, map[string]string{"error": handled.Message, "details": handled.Detail})
	})}

	w := requestVia(t, httptest.NewRequest(http.MethodGet, "/", nil), opts, func(c internal.Context) error {
		return c.Error(http.StatusInternalServerError, "Failed to send email", internal.WithDetail("dial tcp: refused"))
	})
	require.NotNil(t, handled)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email","details":"dial tcp: refused"}`, w.Body.String())
}
