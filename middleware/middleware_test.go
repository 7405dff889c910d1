package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/core"
	"github.com/Xushengqwer/blog_service/response"
	"github.com/Xushengqwer/blog_service/security"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()
	var body response.APIResponse[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestUserContextMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("mw-secret", time.Hour, "blog-test")
	valid, _, err := tokens.Issue(7, "alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	other := security.NewTokenManager("other-secret", time.Hour, "blog-test")
	forged, _, err := other.Issue(7, "alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	r := newEngine(UserContextMiddleware(tokens))
	r.GET("/me", func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "ok": ok})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"anonymous", "", http.StatusOK, `{"id":0,"ok":false}`},
		{"valid bearer", "Bearer " + valid, http.StatusOK, `{"id":7,"ok":true}`},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, `{"id":7,"ok":true}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"foreign signature", "Bearer " + forged, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, response.ErrCodeClientUnauthorized, decodeCode(t, rec))
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	tokens := security.NewTokenManager("mw-secret", time.Hour, "blog-test")
	r := newEngine(UserContextMiddleware(tokens))
	r.GET("/private", RequireAuth(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := tokens.Issue(3, "bob", nil)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestErrorHandlingMiddleware_RecoversPanic(t *testing.T) {
	r := newEngine(ErrorHandlingMiddleware(core.NewNopLogger()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, response.ErrCodeServerInternal, decodeCode(t, rec))
}

func TestRequestTimeoutMiddleware_SetsDeadline(t *testing.T) {
	r := newEngine(RequestTimeoutMiddleware(core.NewNopLogger(), 50*time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		_, hasDeadline := c.Request.Context().Deadline()
		assert.True(t, hasDeadline)
		<-c.Request.Context().Done()
		c.Status(http.StatusGatewayTimeout)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRequestLoggerMiddleware_RequestID(t *testing.T) {
	r := newEngine(RequestLoggerMiddleware(zap.NewNop()))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
