package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"interview-tracker/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const authKeyContextKey = "authKey"

// Auth admits a request when its X-Auth-Key matches the configured key, or
// when the X-Frontend-Source referer is on the allowlist. The accepted
// credential is attached to the request context so outbound collaborator
// calls carry it; nothing reads it from process-wide state.
func Auth(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	allowed := strings.TrimRight(cfg.AllowedFrontend, "/")

	return func(c *gin.Context) {
		key := c.GetHeader("X-Auth-Key")
		referer := strings.TrimRight(c.GetHeader("X-Frontend-Source"), "/")

		if key != "" && key == cfg.AuthKey {
			c.Set(authKeyContextKey, key)
			c.Next()
			return
		}

		if allowed != "" && referer == allowed {
			c.Next()
			return
		}

		logger.Warn("request rejected",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("referer", referer),
		)

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"detail": fmt.Sprintf("Forbidden: Invalid auth key or referer (%s)", referer),
		})
	}
}

// CredentialFrom returns the auth key the request was admitted with; empty
// for referer-admitted requests.
func CredentialFrom(c *gin.Context) string {
	return c.GetString(authKeyContextKey)
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
