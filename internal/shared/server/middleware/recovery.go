package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/server/respond"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

// Recovery turns a panic into a 500 envelope. The log line carries the same
// request, session, job and applicant fields as request.complete.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := requestFields(c)
			fields["error"] = fmt.Sprint(rec)
			fields["stack"] = string(debug.Stack())
			telemetry.Error("panic", fields)
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
