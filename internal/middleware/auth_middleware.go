package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	appauth "github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
	"github.com/kzhao/applytrack/internal/pkg/auth"
	"github.com/kzhao/applytrack/internal/pkg/logger"
)

const (
	// TokenCookieName is the cookie the token is also carried in. The
	// Authorization header wins when both are present.
	TokenCookieName = "token"

	principalKey = "principal"
)

// IPrincipalResolver turns a verified token subject into a full Principal.
type IPrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, userID int64) (*appauth.Principal, error)
}

// AuthMiddleware authenticates the request. The token comes from the
// Authorization header or, failing that, the token cookie. The resolved
// principal is stored on the context for handlers.
func AuthMiddleware(jwtService *auth.JWTService, resolver IPrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				HandleAPIError(c, apperrors.ErrTokenExpired)
			} else {
				HandleAPIError(c, apperrors.ErrTokenInvalid)
			}
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), claims.UserID)
		if err != nil {
			// A valid token whose subject no longer resolves is treated
			// as an authentication failure, not a lookup miss.
			logger.Warn().Err(err).Int64("userId", claims.UserID).Msg("Token subject did not resolve")
			HandleAPIError(c, apperrors.ErrTokenInvalid)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole restricts a route group to one role. Runs after AuthMiddleware.
func RequireRole(role models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}
		if principal.Role != role {
			HandleAPIError(c, apperrors.ErrPermissionDenied)
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the authenticated principal from the context.
func GetPrincipal(c *gin.Context) (*appauth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*appauth.Principal)
	return principal, ok
}

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token, err := auth.ExtractBearerToken(header)
		if err == nil {
			return token
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
