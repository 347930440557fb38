// Package session resolves the caller of each request, keeps the per-user
// preferences and signs users out.
package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
)

// LoginPath is where a signed-out client is sent
const LoginPath = "/login"

// TokenParser turns a bearer token into the caller it identifies
type TokenParser interface {
	Principal(raw string) (*identity.Principal, error)
}

// Revocations is the list of signed-out tokens
type Revocations interface {
	AddToBlacklist(ctx context.Context, key string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, key string) (bool, error)
}

// ProfileSource returns the signed-in user's profile from the upstream API
type ProfileSource interface {
	Me(ctx context.Context) (*identity.Profile, error)
}

// Bootstrap is what the client needs right after sign-in
type Bootstrap struct {
	Profile  identity.Profile `json:"profile"`
	TenantID string           `json:"tenant_id"`
	Theme    identity.Theme   `json:"theme"`
}

// Service handles the caller's session
type Service struct {
	tokens      TokenParser
	revocations Revocations
	profiles    ProfileSource
	prefs       identity.PreferenceStore
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTimeFunc overrides the clock used for revocation TTLs
func WithTimeFunc(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service
func NewService(tokens TokenParser, revocations Revocations, profiles ProfileSource, prefs identity.PreferenceStore, opts ...Option) *Service {
	s := &Service{
		tokens:      tokens,
		revocations: revocations,
		profiles:    profiles,
		prefs:       prefs,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate resolves the caller of an Authorization header. Every
// failure is shared.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, header string) (*identity.Principal, error) {
	p, err := s.tokens.Principal(header)
	if err != nil {
		s.logger.Debug("Rejected bearer token", zap.Error(err))
		return nil, shared.ErrUnauthorized
	}

	revoked, err := s.revocations.IsBlacklisted(ctx, p.RevocationKey)
	if err != nil {
		// fail open
		s.logger.Warn("Failed to check token revocation", zap.Error(err))
		return p, nil
	}
	if revoked {
		s.logger.Debug("Rejected revoked token", zap.String("user_id", p.UserID))
		return nil, shared.ErrUnauthorized
	}
	return p, nil
}

// SignOut revokes the caller's token for the rest of its lifetime and
// returns where to send the client
func (s *Service) SignOut(ctx context.Context, p *identity.Principal) (string, error) {
	if p == nil {
		return LoginPath, nil
	}
	ttl := p.RemainingTTL(s.now())
	if ttl <= 0 {
		return LoginPath, nil
	}
	if err := s.revocations.AddToBlacklist(ctx, p.RevocationKey, ttl); err != nil {
		s.logger.Error("Failed to revoke token", zap.String("user_id", p.UserID), zap.Error(err))
		return "", err
	}
	s.logger.Info("User signed out", zap.String("user_id", p.UserID))
	return LoginPath, nil
}

// OnUnauthorized is called when the upstream API rejects the caller's
// token. The token is revoked so the next request is sent to sign in.
func (s *Service) OnUnauthorized(ctx context.Context) {
	p := PrincipalFrom(ctx)
	if p == nil {
		return
	}
	s.logger.Info("Upstream rejected session", zap.String("user_id", p.UserID))
	_, _ = s.SignOut(ctx, p)
}

// Bootstrap loads the profile and settles the active tenant. A user with
// no stored tenant, or one that no longer belongs to them, gets their
// first tenant stored.
func (s *Service) Bootstrap(ctx context.Context, p *identity.Principal) (*Bootstrap, error) {
	profile, err := s.profiles.Me(ctx)
	if err != nil {
		return nil, err
	}

	tenantID, err := s.prefs.ActiveTenant(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if tenantID == "" || !profile.HasTenant(tenantID) {
		tenantID = profile.DefaultTenantID()
		if tenantID != "" {
			if err := s.prefs.SetActiveTenant(ctx, p.UserID, tenantID); err != nil {
				return nil, err
			}
			s.logger.Info("Active tenant set", zap.String("user_id", p.UserID), zap.String("tenant_id", tenantID))
		}
	}

	theme, err := s.prefs.Theme(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &Bootstrap{Profile: *profile, TenantID: tenantID, Theme: theme}, nil
}

// ActiveTenant returns the tenant the caller's requests run under: the
// stored one, else the token's own
func (s *Service) ActiveTenant(ctx context.Context, p *identity.Principal) (string, error) {
	tenantID, err := s.prefs.ActiveTenant(ctx, p.UserID)
	if err != nil {
		return "", err
	}
	if tenantID == "" {
		tenantID = p.TenantID
	}
	return tenantID, nil
}

// SetActiveTenant switches the caller to tenantID, which must be one of
// their tenants
func (s *Service) SetActiveTenant(ctx context.Context, p *identity.Principal, tenantID string) error {
	profile, err := s.profiles.Me(ctx)
	if err != nil {
		return err
	}
	if !profile.HasTenant(tenantID) {
		verr := shared.NewValidationError()
		verr.Add("tenant_id", "Organização inválida")
		return verr
	}
	return s.prefs.SetActiveTenant(ctx, p.UserID, tenantID)
}

// Theme returns the caller's theme
func (s *Service) Theme(ctx context.Context, p *identity.Principal) (identity.Theme, error) {
	return s.prefs.Theme(ctx, p.UserID)
}

// SetTheme stores the caller's theme
func (s *Service) SetTheme(ctx context.Context, p *identity.Principal, theme identity.Theme) error {
	if !theme.Valid() {
		verr := shared.NewValidationError()
		verr.Add("theme", "Tema inválido")
		return verr
	}
	return s.prefs.SetTheme(ctx, p.UserID, theme)
}

type principalKey struct{}

// WithPrincipal attaches the caller to ctx
func WithPrincipal(ctx context.Context, p *identity.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached to ctx, or nil
func PrincipalFrom(ctx context.Context) *identity.Principal {
	p, _ := ctx.Value(principalKey{}).(*identity.Principal)
	return p
}

// UserID returns the id of the caller attached to ctx, or ""
func UserID(ctx context.Context) string {
	if p := PrincipalFrom(ctx); p != nil {
		return p.UserID
	}
	return ""
}
