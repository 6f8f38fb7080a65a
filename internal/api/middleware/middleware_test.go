package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/footkitshop/storefront/internal/config"
)

func adminRouter(cfg config.AdminConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(cfg, zap.NewNop()), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth_PlainSecret(t *testing.T) {
	r := adminRouter(config.AdminConfig{Secret: "s3cret"})

	assert.Equal(t, http.StatusOK, get(r, "/admin/ping?secret=s3cret").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin/ping?secret=wrong").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin/ping").Code)
}

func TestAdminAuth_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	// The hash takes precedence even when a plaintext secret is also set.
	r := adminRouter(config.AdminConfig{Secret: "other", SecretHash: string(hash)})

	assert.Equal(t, http.StatusOK, get(r, "/admin/ping?secret=s3cret").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/admin/ping?secret=other").Code)
}

func TestAdminAuth_NothingConfigured(t *testing.T) {
	r := adminRouter(config.AdminConfig{})

	assert.Equal(t, http.StatusForbidden, get(r, "/admin/ping?secret=anything").Code)
}

func TestAdminAuth_ForbiddenBodyIsEmpty(t *testing.T) {
	r := adminRouter(config.AdminConfig{Secret: "s3cret"})

	w := get(r, "/admin/ping?secret=wrong")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := get(r, "/")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}
