package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/applicants"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/auth"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
)

type stubJobs struct {
	list []jobs.Job
	err  error
}

func (s stubJobs) ListByOwner(context.Context, string) ([]jobs.Job, error) {
	return s.list, s.err
}

type stubApplicants struct {
	list   []applicants.Applicant
	filter applicants.ListFilter
}

func (s *stubApplicants) List(_ context.Context, _ string, filter applicants.ListFilter) ([]applicants.Applicant, error) {
	s.filter = filter
	return s.list, nil
}

func TestSummaryCounts(t *testing.T) {
	owned := []jobs.Job{
		{ID: "j-1", IsActive: true, ApplicantCount: 2},
		{ID: "j-2", IsActive: false, ApplicantCount: 1},
		{ID: "j-3", IsActive: true},
	}
	apps := &stubApplicants{list: []applicants.Applicant{{ID: "a-1"}, {ID: "a-2"}}}
	svc := NewService(stubJobs{list: owned}, apps)

	sum, err := svc.Summary(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalJobs != 3 || sum.ActiveJobs != 2 || sum.TotalApplicants != 3 {
		t.Fatalf("unexpected counts %+v", sum)
	}
	if apps.filter.Limit != RecentLimit {
		t.Fatalf("recent limit = %d", apps.filter.Limit)
	}
}

func TestSummaryPropagatesErrors(t *testing.T) {
	svc := NewService(stubJobs{err: errors.New("db down")}, &stubApplicants{})
	if _, err := svc.Summary(context.Background(), "owner-1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestDashboardEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	var recent []applicants.Applicant
	for i := 0; i < RecentLimit; i++ {
		recent = append(recent, applicants.Applicant{ID: fmt.Sprintf("a-%d", i), FirstName: "A", LastName: "B", Status: applicants.StatusApplied})
	}
	deadline := time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(stubJobs{list: []jobs.Job{{ID: "j-1", Title: "Product Manager", IsActive: true, Deadline: deadline, ApplicantCount: 10}}}, &stubApplicants{list: recent})

	r := gin.New()
	r.Use(middleware.Auth())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", resp.Code)
	}

	token, err := auth.SignJWT(auth.Identity{UserID: "owner-1"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body summaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TotalJobs != 1 || body.TotalApplicants != 10 || len(body.RecentApplicants) != RecentLimit {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Jobs[0].ApplicantCount != 10 || body.Jobs[0].Deadline != "2026-12-01" {
		t.Fatalf("unexpected job %+v", body.Jobs[0])
	}
}
