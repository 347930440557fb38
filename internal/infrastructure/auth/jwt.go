package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/infrastructure/config"
)

// Common errors
var (
	ErrMissingToken     = errors.New("missing bearer token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingUserID    = errors.New("missing user id in claims")
	ErrTokenRevoked     = errors.New("token has been revoked")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
)

// Claims are the identity-provider claims the dashboard reads
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

// UID returns the user id, falling back to the subject
func (c *Claims) UID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// RevocationKey identifies the token in a revocation list: its jti when
// present, otherwise user id and issue time.
func (c *Claims) RevocationKey() string {
	if c.ID != "" {
		return "jti:" + c.ID
	}
	iat := int64(0)
	if c.IssuedAt != nil {
		iat = c.IssuedAt.Unix()
	}
	return "uid:" + c.UID() + ":" + time.Unix(iat, 0).UTC().Format(time.RFC3339)
}

// GetExpiresAtTime returns the token's expiration time as time.Time
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// RemainingTTL returns the time left until expiry at now
func (c *Claims) RemainingTTL(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := c.ExpiresAt.Time.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TokenParser reads bearer tokens issued by the identity provider. Without a
// secret the signature is left to the upstream API, which receives the same
// token; expiry and the user id are still enforced here.
type TokenParser struct {
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

// ParserOption configures a TokenParser
type ParserOption func(*TokenParser)

// WithTimeFunc overrides the clock used for expiry checks
func WithTimeFunc(now func() time.Time) ParserOption {
	return func(p *TokenParser) {
		p.now = now
	}
}

// NewTokenParser creates a parser from identity settings
func NewTokenParser(cfg config.IdentityConfig, opts ...ParserOption) *TokenParser {
	p := &TokenParser{
		leeway: cfg.TokenLeeway,
		now:    time.Now,
	}
	if cfg.TokenSecret != "" {
		p.secret = []byte(cfg.TokenSecret)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Verifies reports whether signatures are checked locally
func (p *TokenParser) Verifies() bool {
	return len(p.secret) > 0
}

// Parse validates a raw token (with or without the "Bearer " prefix) and
// returns its claims
func (p *TokenParser) Parse(raw string) (*Claims, error) {
	tokenString := StripBearer(raw)
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	if p.Verifies() {
		parser := jwt.NewParser(
			jwt.WithLeeway(p.leeway),
			jwt.WithTimeFunc(p.now),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return p.secret, nil
		})
		if err != nil {
			return nil, mapJWTError(err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
		if err := p.checkTimes(claims); err != nil {
			return nil, err
		}
	}

	if claims.UID() == "" {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

func (p *TokenParser) checkTimes(c *Claims) error {
	now := p.now()
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time.Add(p.leeway)) {
		return ErrExpiredToken
	}
	if c.NotBefore != nil && now.Add(p.leeway).Before(c.NotBefore.Time) {
		return ErrTokenNotYetValid
	}
	return nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}

// StripBearer removes the "Bearer " scheme from an Authorization header value
func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

// Principal parses raw and returns the caller it identifies
func (p *TokenParser) Principal(raw string) (*identity.Principal, error) {
	claims, err := p.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &identity.Principal{
		UserID:        claims.UID(),
		Email:         claims.Email,
		Name:          claims.Name,
		TenantID:      claims.TenantID,
		RevocationKey: claims.RevocationKey(),
		ExpiresAt:     claims.GetExpiresAtTime(),
		Token:         StripBearer(raw),
	}, nil
}
