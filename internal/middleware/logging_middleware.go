// internal/middleware/logging_middleware.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketml-service/internal/utils"
)

// LoggingMiddleware logs every request with its request ID. Ticket routes
// also record the backend and print job they rendered.
func LoggingMiddleware(logger *utils.ServiceLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		duration := time.Since(startTime)

		logger.LogAPIRequest(
			c.Request.Method,
			c.Request.URL.Path,
			c.Request.UserAgent(),
			c.ClientIP(),
			c.Writer.Status(),
			duration,
			requestFields(c)...,
		)
	}
}

// requestFields collects the ticket context set by handlers
func requestFields(c *gin.Context) []zap.Field {
	fields := []zap.Field{zap.String("request_id", c.GetString(utils.ContextRequestID))}
	if backend := c.GetString(utils.ContextBackend); backend != "" {
		fields = append(fields, zap.String("backend", backend))
	}
	if jobID := c.GetString(utils.ContextJobID); jobID != "" {
		fields = append(fields, zap.String("job_id", jobID))
	}
	return fields
}
