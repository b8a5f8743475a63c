package middleware

import (
	"time"

	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger emits one structured "http_request" record per request.
func RequestLogger(service string) gin.HandlerFunc {
	if service == "" {
		service = "unknown"
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.FromContext(c.Request.Context())
		args := []any{
			"service", service,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			log.Error("http_request", args...)
		case status >= 400:
			log.Warn("http_request", args...)
		default:
			log.Info("http_request", args...)
		}
	}
}
