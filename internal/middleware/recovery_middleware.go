// internal/middleware/recovery_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ticketml-service/internal/utils"
)

// RecoveryMiddleware turns a panic in a handler into a 500 response.
// A panic mid-render leaves the printer with a partial ticket, so the
// log entry names the backend and job when the handler had set them.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		fields := append(requestFields(c),
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Stack("stacktrace"),
		)
		logger.Error("Panic recovered", fields...)

		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", nil)
	})
}
