package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := requestFields(c)
		fields["status"] = c.Writer.Status()
		fields["duration_ms"] = float64(latency.Microseconds()) / 1000.0
		fields["client_ip"] = c.ClientIP()
		fields["user_agent"] = c.Request.UserAgent()
		telemetry.Info("request.complete", fields)
	}
}

// requestFields identifies the request and the recruiter, session, job and
// applicant it touched.
func requestFields(c *gin.Context) map[string]any {
	fields := map[string]any{
		"request_id": RequestIDFromContext(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"route":      c.FullPath(),
		"user_id":    UserIDFromContext(c),
		"session_id": SessionIDFromContext(c),
	}
	if jobID := c.GetString("jobId"); jobID != "" {
		fields["job_id"] = jobID
	}
	if applicantID := c.GetString("applicantId"); applicantID != "" {
		fields["applicant_id"] = applicantID
	}
	return fields
}
