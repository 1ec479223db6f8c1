package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kzhao/applytrack/internal/app/models/dto"
	"github.com/kzhao/applytrack/internal/app/services"
	"github.com/kzhao/applytrack/internal/middleware"
	"github.com/kzhao/applytrack/internal/pkg/apperrors"
)

// AuthController handles registration, login and session introspection.
type AuthController struct {
	authService  *services.AuthService
	tokenExpiry  time.Duration
	secureCookie bool
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, tokenExpiry time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenExpiry:  tokenExpiry,
		secureCookie: secureCookie,
	}
}

// Register handles POST /api/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, resp.Token)
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setTokenCookie(ctx, resp.Token)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Logout handles POST /api/auth/logout. Tokens are not revoked server-side;
// logout clears the cookie so browser clients drop their session.
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookieName, "", -1, "/", "", c.secureCookie, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me handles GET /api/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	user := dto.AuthUser{
		ID:    principal.UserID,
		Email: principal.Email,
		Role:  principal.Role,
	}
	if principal.Student != nil {
		user.Profile = principal.Student
	} else if principal.Parent != nil {
		user.Profile = principal.Parent
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

func (c *AuthController) setTokenCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookieName, token, int(c.tokenExpiry.Seconds()), "/", "", c.secureCookie, true)
}
