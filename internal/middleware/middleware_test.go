// internal/middleware/middleware_test.go
package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spending-tracker/internal/auth"
	"spending-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, logs *bytes.Buffer) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	ts := auth.NewTokenService(config.Config{
		JWTSecret:     "middleware-test-secret",
		JWTAccessTTL:  time.Minute,
		JWTRefreshTTL: time.Hour,
	})
	r := gin.New()
	r.Use(RequestLogger(slog.New(slog.NewTextHandler(logs, nil))))
	r.GET("/me", NewAuthMiddleware(ts).RequireAuth(), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	return r, ts
}

func TestRequireAuth(t *testing.T) {
	var logs bytes.Buffer
	r, ts := newTestRouter(t, &logs)
	pair, err := ts.GeneratePair(9)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + pair.Access, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.Refresh, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid", "Bearer " + pair.Access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"user_id":9}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"detail"`)
			}
		})
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	var logs bytes.Buffer
	r, ts := newTestRouter(t, &logs)
	access, err := ts.GenerateAccessToken(3)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Contains(t, logs.String(), "level=INFO")
	assert.Contains(t, logs.String(), "user_id=3")

	logs.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "status=401")
}
