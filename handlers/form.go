package handlers

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/crewjam/csp"
	"github.com/gorilla/csrf"

	"github.com/dmitrymomot/formrelay/client"
	"github.com/dmitrymomot/formrelay/contact"
	"github.com/dmitrymomot/formrelay/internal"
	"github.com/dmitrymomot/formrelay/middlewares"
	"github.com/dmitrymomot/formrelay/pkg/i18n"
	"github.com/dmitrymomot/formrelay/pkg/validator"
	"github.com/dmitrymomot/formrelay/views"
)

// Phone number digit bounds.
const (
	minPhoneDigits = 6
	maxPhoneDigits = 20
)

// ContactForm is the browser's form-encoded submission.
type ContactForm struct {
	Name        string `form:"name" sanitize:"name"`
	Surname     string `form:"surname" sanitize:"name"`
	Tel         string `form:"tel" sanitize:"strip,phone,trim"`
	Email       string `form:"email" sanitize:"strip,email"`
	AcceptTerms bool   `form:"acceptTerms"`
}

// Validate checks required fields, address and phone formats and consent.
func (f *ContactForm) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", f.Name),
		validator.RequiredString("surname", f.Surname),
		validator.RequiredString("tel", f.Tel),
		validator.Phone("tel", f.Tel, minPhoneDigits, maxPhoneDigits),
		validator.RequiredString("email", f.Email),
		validator.Email("email", f.Email),
		validator.Accepted("acceptTerms", f.AcceptTerms),
	)
}

// Payload converts the form to the relay payload.
func (f ContactForm) Payload() contact.Payload {
	return contact.Payload{
		Name:        f.Name,
		Surname:     f.Surname,
		Tel:         f.Tel,
		Email:       f.Email,
		AcceptTerms: f.AcceptTerms,
	}
}

func (f ContactForm) values() views.FormValues {
	return views.FormValues{
		Name:        f.Name,
		Surname:     f.Surname,
		Tel:         f.Tel,
		Email:       f.Email,
		AcceptTerms: f.AcceptTerms,
	}
}

// RelaySubmitter submits a payload to the relay.
// *client.Client implements it.
type RelaySubmitter interface {
	Submit(ctx context.Context, p contact.Payload) (*client.Response, error)
}

// FormHandler serves the Form UI.
type FormHandler struct {
	relay    RelaySubmitter
	policy   csp.Header
	csrfKey  []byte
	csrfOpts []csrf.Option
	terms    *Terms
	prg      bool
}

const flashSuccess = "form_success"

// FormOption configures a FormHandler.
type FormOption func(*FormHandler)

// WithCSRF protects the form POST with gorilla/csrf using a 32-byte key.
func WithCSRF(key []byte, opts ...csrf.Option) FormOption {
	return func(h *FormHandler) {
		h.csrfKey = key
		h.csrfOpts = opts
	}
}

// WithCSP replaces the default Content-Security-Policy.
func WithCSP(policy csp.Header) FormOption {
	return func(h *FormHandler) {
		h.policy = policy
	}
}

// WithTerms serves the terms page from t.
func WithTerms(t *Terms) FormOption {
	return func(h *FormHandler) {
		h.terms = t
	}
}

// Localize returns the I18n middleware the Form UI expects, resolving the
// language from ?lang=, the form's lang field, the lang cookie, then
// Accept-Language. Install it app-wide so error pages are translated too.
func Localize(svc *i18n.I18n, namespace string, opts ...middlewares.I18nOption) internal.Middleware {
	return middlewares.I18n(svc, append([]middlewares.I18nOption{
		middlewares.WithI18nNamespace(namespace),
		middlewares.WithI18nExtractor(internal.NewExtractor(
			internal.FromQuery("lang"),
			internal.FromForm("lang"),
			internal.FromCookie(middlewares.DefaultLanguageCookie),
			middlewares.FromAcceptLanguage(svc.Languages()),
		)),
	}, opts...)...)
}

// WithPostRedirectGet redirects classic (non-htmx) successful submits back
// to the form and shows the success banner from a flash cookie. The app
// needs a cookie secret.
func WithPostRedirectGet() FormOption {
	return func(h *FormHandler) {
		h.prg = true
	}
}

// NewFormHandler creates the Form UI handler.
// Translations come from the Localize middleware.
func NewFormHandler(relay RelaySubmitter, opts ...FormOption) *FormHandler {
	h := &FormHandler{
		relay:  relay,
		policy: middlewares.DefaultCSP,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements internal.Handler.
func (h *FormHandler) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.CSP(h.policy))
		if len(h.csrfKey) > 0 {
			r.Use(middlewares.CSRF(h.csrfKey, h.csrfOpts...))
		}

		r.GET("/", h.show)
		r.POST("/", h.submit)
		if h.terms != nil {
			r.GET("/terms", h.terms.show)
		}
	})
}

func (h *FormHandler) show(c internal.Context) error {
	var banner *views.Banner
	if h.prg {
		var text string
		if err := c.Flash(flashSuccess, &text); err == nil && text != "" {
			banner = views.SuccessBanner(text)
		}
	}
	return h.render(c, http.StatusOK, ContactForm{}, nil, banner)
}

func (h *FormHandler) submit(c internal.Context) error {
	var form ContactForm
	errs, err := c.Bind(&form)
	if err != nil {
		if internal.IsBindError(err) {
			return internal.ErrBadRequest("Bad Request", internal.WithError(err))
		}
		return err
	}
	if len(errs) > 0 {
		return h.render(c, http.StatusUnprocessableEntity, form, formErrors(errs), nil)
	}

	_, err = h.relay.Submit(client.WithForwardedFor(c, remoteHost(c)), form.Payload())
	if err == nil {
		if h.prg && !c.IsHTMX() {
			ferr := c.SetFlash(flashSuccess, c.T("success"))
			if ferr == nil {
				return c.Redirect(http.StatusSeeOther, "/?lang="+c.Language())
			}
			c.LogWarn("failed to set flash", "error", ferr)
		}
		return h.render(c, http.StatusOK, ContactForm{}, nil, views.SuccessBanner(c.T("success")))
	}

	var rerr *client.ResponseError
	if errors.As(err, &rerr) {
		c.LogWarn("relay rejected submission", "status", rerr.StatusCode, "error", rerr.Message, "details", rerr.Details)
		if rerr.StatusCode == http.StatusTooManyRequests {
			return h.render(c, http.StatusOK, form, nil, views.ErrorBanner(c.T("error.rate_limited")))
		}
		return h.render(c, http.StatusOK, form, nil, views.ErrorBanner(rerr.Text(c.T("error.failed"))))
	}

	c.LogError("relay request failed", "error", err)
	return h.render(c, http.StatusOK, form, nil, views.ErrorBanner(c.T("error.retry")))
}

func (h *FormHandler) render(c internal.Context, code int, form ContactForm, errs views.FormErrors, banner *views.Banner) error {
	data := views.FormData{
		Page:      page(c),
		Values:    form.values(),
		Errors:    errs,
		Banner:    banner,
		CSRFField: middlewares.GetCSRFField(c),
	}
	return c.RenderPartial(code, views.FormPage(data), views.Form(data))
}

// formErrors keeps the first message per field.
func formErrors(errs validator.ValidationErrors) views.FormErrors {
	out := make(views.FormErrors, len(errs))
	for _, e := range errs {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

func page(c internal.Context) views.Page {
	p := views.Page{
		T:    c.T,
		Lang: c.Language(),
		Path: c.Request().URL.Path,
	}
	if tr := middlewares.GetTranslator(c); tr != nil {
		p.Languages = tr.Languages()
	}
	return p
}

func remoteHost(c internal.Context) string {
	addr := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
