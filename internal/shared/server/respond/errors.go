package respond

import (
	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if sessionID := c.GetString("sessionId"); sessionID != "" {
		fields["session_id"] = sessionID
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Messages sends an error whose details carry a list of user-facing messages.
func Messages(c *gin.Context, status int, code string, messages []string) {
	message := ""
	if len(messages) > 0 {
		message = messages[0]
	}
	Error(c, status, code, message, gin.H{"messages": messages})
}

// Validation reports field errors under details.fields.
func Validation(c *gin.Context, fields map[string]string) {
	Error(c, 400, "validation_error", "Please correct the highlighted fields.", gin.H{"fields": fields})
}
