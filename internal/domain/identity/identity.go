// Package identity holds the signed-in user's profile and client preferences.
package identity

import (
	"context"
	"time"
)

// Tenant is an organization the user belongs to
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Profile is the signed-in user as returned by /users/me
type Profile struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Tenants []Tenant `json:"tenants"`
}

// DefaultTenantID returns the first tenant, or "" when there is none
func (p Profile) DefaultTenantID() string {
	if len(p.Tenants) == 0 {
		return ""
	}
	return p.Tenants[0].ID
}

// Theme is the UI color scheme preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// DefaultTheme applies when nothing was stored
const DefaultTheme = ThemeSystem

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// PreferenceStore persists per-user client state. Both values are
// last-write-wins scalars.
type PreferenceStore interface {
	// Theme returns DefaultTheme when nothing was stored
	Theme(ctx context.Context, userID string) (Theme, error)
	SetTheme(ctx context.Context, userID string, theme Theme) error
	// ActiveTenant returns "" when nothing was stored
	ActiveTenant(ctx context.Context, userID string) (string, error)
	SetActiveTenant(ctx context.Context, userID, tenantID string) error
}

// HasTenant reports whether id is one of the profile's tenants
func (p Profile) HasTenant(id string) bool {
	for _, t := range p.Tenants {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Principal is the caller a bearer token identifies
type Principal struct {
	UserID   string
	Email    string
	Name     string
	TenantID string
	// RevocationKey names the token in the sign-out list
	RevocationKey string
	ExpiresAt     time.Time
	Token         string
}

// RemainingTTL returns how long the token stays valid after now
func (p Principal) RemainingTTL(now time.Time) time.Duration {
	if p.ExpiresAt.IsZero() || !p.ExpiresAt.After(now) {
		return 0
	}
	return p.ExpiresAt.Sub(now)
}
