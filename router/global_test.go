package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appConfig "github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/middleware"
	"github.com/Xushengqwer/blog_service/security"
)

type whoAmI struct{}

func (whoAmI) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/whoami", middleware.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
}

func newTestRouter(t *testing.T, origins []string) (*gin.Engine, *security.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := security.NewTokenManager("router-test", time.Hour, "blog-test")
	cfg := &appConfig.BlogConfig{ServerConfig: appConfig.ServerConfig{RequestTimeout: 5, AllowOrigins: origins}}
	return SetupRouter(core.NewNopLogger(), cfg, tokens, whoAmI{}), tokens
}

func TestSetupRouter_PingAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestSetupRouter_AuthenticatedGroup(t *testing.T) {
	r, tokens := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/blog/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := tokens.Issue(42, "alice", []string{"ROLE_USER"})
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blog/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":42}`, rec.Body.String())
}

func TestSetupRouter_CORSWhitelist(t *testing.T) {
	r, _ := newTestRouter(t, []string{"https://blog.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/blog/whoami", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "https://blog.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
