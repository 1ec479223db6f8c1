package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/kzhao/applytrack/internal/app/auth"
	"github.com/kzhao/applytrack/internal/app/models"
	"github.com/kzhao/applytrack/internal/pkg/auth"
)

type fakeResolver struct {
	principals map[int64]*appauth.Principal
	err        error
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, userID int64) (*appauth.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.principals[userID]
	if !ok {
		return nil, assert.AnError
	}
	return p, nil
}

func newTestRouter(jwtService *auth.JWTService, resolver IPrincipalResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlerMiddleware())
	authed := router.Group("/", AuthMiddleware(jwtService, resolver))
	authed.GET("/whoami", func(c *gin.Context) {
		principal, _ := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"email": principal.Email})
	})
	authed.GET("/student-only", RequireRole(models.RoleStudent), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func newTestJWT(expiry time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "unit-test-secret",
		TokenExp:    expiry,
		TokenIssuer: "applytrack-test",
	})
}

func testPrincipals() map[int64]*appauth.Principal {
	return map[int64]*appauth.Principal{
		1: {
			UserID:  1,
			Email:   "alice@example.com",
			Role:    models.RoleStudent,
			Student: &models.Student{ID: 10, UserID: 1, Name: "Alice"},
		},
		2: {
			UserID: 2,
			Email:  "bob@example.com",
			Role:   models.RoleParent,
			Parent: &models.Parent{ID: 20, UserID: 2, Name: "Bob"},
		},
	}
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour), &fakeResolver{principals: testPrincipals()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_HeaderToken(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService, &fakeResolver{principals: testPrincipals()})

	token, _, err := jwtService.GenerateToken(1, "alice@example.com", string(models.RoleStudent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService, &fakeResolver{principals: testPrincipals()})

	token, _, err := jwtService.GenerateToken(2, "bob@example.com", string(models.RoleParent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")
}

func TestAuthMiddleware_HeaderWinsOverCookie(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService, &fakeResolver{principals: testPrincipals()})

	headerToken, _, err := jwtService.GenerateToken(1, "alice@example.com", string(models.RoleStudent))
	require.NoError(t, err)
	cookieToken, _, err := jwtService.GenerateToken(2, "bob@example.com", string(models.RoleParent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: cookieToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "bob@example.com")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := newTestRouter(newTestJWT(time.Hour), &fakeResolver{principals: testPrincipals()})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_004")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := newTestJWT(-time.Minute)
	router := newTestRouter(jwtService, &fakeResolver{principals: testPrincipals()})

	token, _, err := jwtService.GenerateToken(1, "alice@example.com", string(models.RoleStudent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_005")
}

func TestAuthMiddleware_UnresolvableSubject(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService, &fakeResolver{err: assert.AnError})

	token, _, err := jwtService.GenerateToken(1, "alice@example.com", string(models.RoleStudent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWT(time.Hour)
	router := newTestRouter(jwtService, &fakeResolver{principals: testPrincipals()})

	studentToken, _, err := jwtService.GenerateToken(1, "alice@example.com", string(models.RoleStudent))
	require.NoError(t, err)
	parentToken, _, err := jwtService.GenerateToken(2, "bob@example.com", string(models.RoleParent))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+parentToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
