package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story_web/internal/utils"
)

func newAuthRouter(tokens *utils.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	echo := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	}
	r.GET("/private", AuthMiddleware(tokens), echo)
	r.GET("/public", OptionalAuth(tokens), echo)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	token, err := tokens.GenerateToken(42, "alice")
	require.NoError(t, err)
	r := newAuthRouter(tokens)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{name: "bearer", path: "/private", header: "Bearer " + token, status: http.StatusOK, body: `{"user_id":42}`},
		{name: "jwt prefix", path: "/private", header: "JWT " + token, status: http.StatusOK, body: `{"user_id":42}`},
		{name: "missing", path: "/private", status: http.StatusUnauthorized},
		{name: "bad scheme", path: "/private", header: "Token " + token, status: http.StatusUnauthorized},
		{name: "garbage", path: "/private", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "optional anonymous", path: "/public", status: http.StatusOK, body: `{"user_id":0}`},
		{name: "optional with token", path: "/public", header: "Bearer " + token, status: http.StatusOK, body: `{"user_id":42}`},
		{name: "optional with bad token", path: "/public", header: "Bearer nope", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			}
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newAuthRouter(utils.NewTokenManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
