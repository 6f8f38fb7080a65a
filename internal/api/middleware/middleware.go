package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/footkitshop/storefront/internal/config"
)

// RequestIDHeader carries the correlation id assigned to every request
const RequestIDHeader = "X-Request-ID"

// RequestID assigns a uuid to each request unless the client sent one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// AdminAuth gates the administrative endpoints behind the shared secret
// passed as a query parameter. A configured bcrypt hash takes precedence
// over the plaintext secret; with neither configured every request is
// refused. Failures disclose nothing beyond the status.
func AdminAuth(cfg config.AdminConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.Query("secret")

		if !secretMatches(cfg, secret) {
			logger.Warn("Admin request rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func secretMatches(cfg config.AdminConfig, candidate string) bool {
	if candidate == "" {
		return false
	}
	if cfg.SecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.SecretHash), []byte(candidate)) == nil
	}
	if cfg.Secret != "" {
		return subtle.ConstantTimeCompare([]byte(cfg.Secret), []byte(candidate)) == 1
	}
	return false
}
