package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/constructpro/dashboard/internal/application/session"
	"github.com/constructpro/dashboard/internal/domain/identity"
)

// SessionService is the caller's session and stored preferences
type SessionService interface {
	Bootstrap(ctx context.Context, p *identity.Principal) (*session.Bootstrap, error)
	SignOut(ctx context.Context, p *identity.Principal) (string, error)
	ActiveTenant(ctx context.Context, p *identity.Principal) (string, error)
	SetActiveTenant(ctx context.Context, p *identity.Principal, tenantID string) error
	Theme(ctx context.Context, p *identity.Principal) (identity.Theme, error)
	SetTheme(ctx context.Context, p *identity.Principal, theme identity.Theme) error
}

// SessionHandler serves the session bootstrap, sign-out and preferences
type SessionHandler struct {
	BaseHandler
	sessionService SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// ThemeRequest stores the theme preference
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ThemeResponse is the stored theme preference
type ThemeResponse struct {
	Theme identity.Theme `json:"theme"`
}

// TenantRequest switches the active organization
type TenantRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
}

// TenantResponse is the active organization
type TenantResponse struct {
	TenantID string `json:"tenant_id"`
}

// SignOutResponse tells the client where to go next
type SignOutResponse struct {
	Redirect string `json:"redirect"`
}

// principal returns the caller set by the session middleware
func principal(c *gin.Context) *identity.Principal {
	return session.PrincipalFrom(c.Request.Context())
}

// Bootstrap godoc
// @ID           getSession
// @Summary      Load the signed-in user, active organization and theme
// @Tags         session
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Security     BearerAuth
// @Router       /session [get]
func (h *SessionHandler) Bootstrap(c *gin.Context) {
	b, err := h.sessionService.Bootstrap(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, b)
}

// SignOut godoc
// @ID           signOut
// @Summary      Sign out
// @Description  Revokes the bearer token for the rest of its lifetime.
// @Tags         session
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /session [delete]
func (h *SessionHandler) SignOut(c *gin.Context) {
	redirect, err := h.sessionService.SignOut(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, SignOutResponse{Redirect: redirect})
}

// GetTheme godoc
// @ID           getThemePreference
// @Summary      Get the theme preference
// @Tags         preferences
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /preferences/theme [get]
func (h *SessionHandler) GetTheme(c *gin.Context) {
	theme, err := h.sessionService.Theme(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ThemeResponse{Theme: theme})
}

// SetTheme godoc
// @ID           setThemePreference
// @Summary      Store the theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request body ThemeRequest true "light, dark or system"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /preferences/theme [put]
func (h *SessionHandler) SetTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, bindError(err))
		return
	}

	theme := identity.Theme(req.Theme)
	if err := h.sessionService.SetTheme(c.Request.Context(), principal(c), theme); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ThemeResponse{Theme: theme})
}

// GetTenant godoc
// @ID           getTenantPreference
// @Summary      Get the active organization
// @Tags         preferences
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /preferences/tenant [get]
func (h *SessionHandler) GetTenant(c *gin.Context) {
	tenantID, err := h.sessionService.ActiveTenant(c.Request.Context(), principal(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, TenantResponse{TenantID: tenantID})
}

// SetTenant godoc
// @ID           setTenantPreference
// @Summary      Switch the active organization
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request body TenantRequest true "One of the user's organizations"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /preferences/tenant [put]
func (h *SessionHandler) SetTenant(c *gin.Context) {
	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, bindError(err))
		return
	}

	if err := h.sessionService.SetActiveTenant(c.Request.Context(), principal(c), req.TenantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, TenantResponse{TenantID: req.TenantID})
}
