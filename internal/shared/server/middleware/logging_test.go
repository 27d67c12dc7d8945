package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/auth"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Session(time.Hour, false), Auth(), Logging())
	router.GET("/jobs/:id/applicants/:applicantId", func(c *gin.Context) {
		c.Set("jobId", c.Param("id"))
		c.Set("applicantId", c.Param("applicantId"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	token, err := auth.SignJWT(auth.Identity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/jobs/job-1/applicants/app-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "user_id", "session_id", "job_id", "applicant_id", "duration_ms", "status"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["user_id"] != "user-1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["job_id"] != "job-1" {
		t.Fatalf("unexpected job_id: %v", payload["job_id"])
	}
	if payload["applicant_id"] != "app-1" {
		t.Fatalf("unexpected applicant_id: %v", payload["applicant_id"])
	}
	if payload["route"] != "/jobs/:id/applicants/:applicantId" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
}
