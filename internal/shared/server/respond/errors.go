package respond

import (
	"github.com/gin-gonic/gin"

	"pdfdash-backend/internal/shared/telemetry"
)

// Error sends a standardized failure envelope and logs the occurrence.
func Error(c *gin.Context, status int, message, detail string) {
	ErrorWithData(c, status, message, detail, nil)
}

// ErrorWithData sends a failure envelope that still carries partial data,
// used when extraction succeeded but a later stage failed.
func ErrorWithData(c *gin.Context, status int, message, detail string, data any) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"error":      detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: message,
		Error:   detail,
		Data:    data,
	})
}
