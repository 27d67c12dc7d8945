package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/telemetry"
)

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
	if !strings.Contains(buf.String(), `"msg":"panic"`) {
		t.Fatalf("expected panic log, got %s", buf.String())
	}
}

func TestRecoveryLogsApplicantContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Session(time.Hour, false), Recovery())
	router.GET("/applicants/:id", func(c *gin.Context) {
		c.Set("applicantId", c.Param("id"))
		c.Set("jobId", "job-9")
		panic(errors.New("nil resume"))
	})

	req := httptest.NewRequest(http.MethodGet, "/applicants/app-7", nil)
	req.Header.Set("X-Session-Id", "0f8fad5b-d9cb-469f-a165-70867728950e")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	out := buf.String()
	for _, want := range []string{
		`"applicant_id":"app-7"`,
		`"job_id":"job-9"`,
		`"session_id":"0f8fad5b-d9cb-469f-a165-70867728950e"`,
		`"route":"/applicants/:id"`,
		`"error":"nil resume"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in panic log, got %s", want, out)
		}
	}
}
