package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/constructpro/dashboard/internal/application/session"
	"github.com/constructpro/dashboard/internal/application/submission"
	"github.com/constructpro/dashboard/internal/domain/identity"
	"github.com/constructpro/dashboard/internal/domain/shared"
	"github.com/constructpro/dashboard/internal/infrastructure/apiclient"
	"github.com/constructpro/dashboard/internal/infrastructure/logger"
	"github.com/constructpro/dashboard/internal/interfaces/http/dto"
)

// Session context keys
const (
	PrincipalKey     = "principal"
	TenantIDKey      = "tenant_id"
	NotificationsKey = "notifications"
	AuthHeaderKey    = "Authorization"
)

// Authenticator resolves the caller of a request
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*identity.Principal, error)
	ActiveTenant(ctx context.Context, p *identity.Principal) (string, error)
	// OnUnauthorized signs the caller out after the upstream API rejected
	// their token
	OnUnauthorized(ctx context.Context)
}

// Session authenticates the bearer token and prepares the request context
// for the application layer: the caller, the credentials forwarded upstream,
// the submit-guard actor and a notifier collecting the messages returned in
// the response. A missing, malformed or revoked token is a 401 that sends
// the client to sign in. When a handler reports an upstream 401, the caller
// is signed out whichever operation hit it.
func Session(auth Authenticator, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		p, err := auth.Authenticate(ctx, c.GetHeader(AuthHeaderKey))
		if err != nil {
			log.Debug("Session rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			abortUnauthorized(c)
			return
		}

		tenantID, err := auth.ActiveTenant(ctx, p)
		if err != nil {
			log.Warn("Failed to load active tenant, using the token's",
				zap.String("user_id", p.UserID),
				zap.Error(err),
			)
			tenantID = p.TenantID
		}

		notes := &shared.Notifications{}
		ctx = session.WithPrincipal(ctx, p)
		ctx = apiclient.WithCredentials(ctx, p.Token, tenantID)
		ctx = submission.WithActor(ctx, p.UserID)
		ctx = shared.WithNotifier(ctx, notes)
		ctx = logger.WithUserID(ctx, p.UserID)
		if tenantID != logger.TenantID(ctx) {
			ctx = logger.WithTenantID(ctx, tenantID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set(PrincipalKey, p)
		c.Set(TenantIDKey, tenantID)
		c.Set(NotificationsKey, notes)
		c.Set("logger", logger.FromContext(ctx))

		c.Next()

		for _, e := range c.Errors {
			if shared.IsUnauthorized(e.Err) {
				auth.OnUnauthorized(ctx)
				return
			}
		}
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedResponse(
		shared.ErrUnauthorized.Message,
		session.LoginPath,
		c.GetString(RequestIDKey),
	))
}

// GetNotifications returns the notifier the Session middleware attached, or
// nil on public routes
func GetNotifications(c *gin.Context) *shared.Notifications {
	v, ok := c.Get(NotificationsKey)
	if !ok {
		return nil
	}
	n, _ := v.(*shared.Notifications)
	return n
}

// GetTenantID returns the tenant the request runs under
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}
