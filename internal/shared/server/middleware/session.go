package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "ats_session"
	sessionHeader = "X-Session-Id"
	sessionIDKey  = "sessionId"
)

// Session resolves the browser session id from the ats_session cookie or the
// X-Session-Id header, minting a new one when neither is present. The id is
// echoed back in both places.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id := ""
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			id = strings.TrimSpace(cookie)
		}
		if id == "" {
			id = strings.TrimSpace(c.GetHeader(sessionHeader))
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(sessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, maxAge, "/", "", secure, true)
		c.Next()
	}
}

// SessionIDFromContext fetches the session id stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	return contextString(c, sessionIDKey)
}
