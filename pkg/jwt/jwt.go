package jwt

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret    = errors.New("jwt: signing secret is empty")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrInvalidAudience  = errors.New("jwt: audience mismatch")
	ErrInvalidIssuer    = errors.New("jwt: issuer mismatch")
)

// Config holds HS256 signing settings.
type Config struct {
	Secret   string        `env:"RELAY_JWT_SECRET"`
	Issuer   string        `env:"RELAY_JWT_ISSUER"`
	Audience string        `env:"RELAY_JWT_AUDIENCE"`
	Leeway   time.Duration `env:"RELAY_JWT_LEEWAY" envDefault:"30s"`
}

// Claims are the registered claims plus the role carried by API keys.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Service signs and verifies HS256 bearer tokens.
type Service struct {
	secret []byte
	config Config
}

// New creates a Service. The secret must not be empty.
func New(cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{secret: []byte(cfg.Secret), config: cfg}, nil
}

// Generate signs claims. Issuer and audience default to the service config;
// a positive ttl sets ExpiresAt, zero means the token never expires.
func (s *Service) Generate(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	if claims.Issuer == "" {
		claims.Issuer = s.config.Issuer
	}
	if len(claims.Audience) == 0 && s.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.config.Audience}
	}
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return token, nil
}

// Parse verifies the signature, expiry, issuer and audience of token.
func (s *Service) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithLeeway(s.config.Leeway))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, errors.Join(ErrInvalidToken, err)
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if s.config.Issuer != "" && claims.Issuer != s.config.Issuer {
		return nil, ErrInvalidIssuer
	}
	if s.config.Audience != "" && !slices.Contains(claims.Audience, s.config.Audience) {
		return nil, ErrInvalidAudience
	}
	return claims, nil
}
