package cookie

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrNoSecret  = errors.New("cookie: secret required")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrDecode    = errors.New("cookie: invalid or tampered value")
)

const flashPrefix = "flash_"

// Manager handles plain cookies and, with a secret, encrypted flash values.
type Manager struct {
	codec    *securecookie.SecureCookie // nil = no secret
	domain   string
	path     string
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a cookie Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		path:     "/",
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithSecret enables encrypted values. Secrets shorter than 32 bytes are ignored.
// Hash and block keys are derived from the secret.
func WithSecret(secret string) Option {
	return func(m *Manager) {
		if len(secret) < 32 {
			return
		}
		hashKey := sha256.Sum256([]byte("hash:" + secret))
		blockKey := sha256.Sum256([]byte("block:" + secret))
		m.codec = securecookie.New(hashKey[:], blockKey[:]).SetSerializer(securecookie.JSONEncoder{})
	}
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) { m.domain = domain }
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) { m.path = path }
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// WithHTTPOnly sets the HttpOnly flag.
func WithHTTPOnly(httpOnly bool) Option {
	return func(m *Manager) { m.httpOnly = httpOnly }
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) { m.sameSite = ss }
}

// HasSecret reports whether encrypted operations are available.
func (m *Manager) HasSecret() bool {
	return m.codec != nil
}

// Get returns a plain cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set sets a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, m.cookie(name, value, maxAge))
}

// Delete removes a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// GetEncrypted decodes an encrypted cookie into dest.
func (m *Manager) GetEncrypted(r *http.Request, name string, dest any) error {
	if m.codec == nil {
		return ErrNoSecret
	}
	raw, err := m.Get(r, name)
	if err != nil {
		return err
	}
	if err := m.codec.Decode(name, raw, dest); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

// SetEncrypted encodes value into an authenticated, encrypted cookie.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name string, value any, maxAge int) error {
	if m.codec == nil {
		return ErrNoSecret
	}
	encoded, err := m.codec.Encode(name, value)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
	return nil
}

// Flash reads and deletes a flash value.
// Returns ErrNotFound if there is none.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	if err := m.GetEncrypted(r, name, dest); err != nil {
		return err
	}
	m.Delete(w, name)
	return nil
}

// SetFlash stores a value that survives exactly one redirect.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	return m.SetEncrypted(w, flashPrefix+key, value, 0)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
