package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mareenraj/ATS/internal/shared/auth"
	"github.com/Mareenraj/ATS/internal/shared/server/middleware"
	"github.com/Mareenraj/ATS/internal/shared/server/respond"
)

func newTestRouter(t *testing.T, svc *Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	r := gin.New()
	r.Use(middleware.Auth())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Identity{UserID: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return token
}

func do(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func jobBody() map[string]any {
	return map[string]any{
		"title":            "Data Scientist",
		"description":      "Model things.",
		"location":         "New York, NY",
		"employmentType":   "CT",
		"salaryRange":      "$120k - $150k",
		"requirements":     "Statistics",
		"responsibilities": "Ship models",
		"deadline":         "2026-12-31",
	}
}

func TestCreateRequiresUser(t *testing.T) {
	r := newTestRouter(t, newTestService(nil, time.Now()))
	resp := do(r, http.MethodPost, "/api/v1/jobs", "", jobBody())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestJobCRUDFlow(t *testing.T) {
	svc := newTestService(nil, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC))
	r := newTestRouter(t, svc)
	owner := tokenFor(t, "owner-1")

	resp := do(r, http.MethodPost, "/api/v1/jobs", owner, jobBody())
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Message string   `json:"message"`
		Job     Response `json:"job"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Message != "Job posted successfully!" || created.Job.EmploymentTypeLabel != "Contract" {
		t.Fatalf("unexpected create response %+v", created)
	}
	id := created.Job.ID

	resp = do(r, http.MethodGet, "/api/v1/jobs", "", nil)
	var page respond.Page[Response]
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if page.Count != 1 || page.Items[0].ID != id {
		t.Fatalf("unexpected list %+v", page)
	}

	body := jobBody()
	body["title"] = "Lead Data Scientist"
	resp = do(r, http.MethodPut, "/api/v1/jobs/"+id, tokenFor(t, "owner-2"), body)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", resp.Code)
	}
	resp = do(r, http.MethodPut, "/api/v1/jobs/"+id, owner, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(r, http.MethodDelete, "/api/v1/jobs/"+id, owner, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.Code)
	}
	resp = do(r, http.MethodGet, "/api/v1/jobs/"+id, "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", resp.Code)
	}
}

func TestCreateValidationEnvelope(t *testing.T) {
	r := newTestRouter(t, newTestService(nil, time.Now()))
	body := jobBody()
	delete(body, "title")

	resp := do(r, http.MethodPost, "/api/v1/jobs", tokenFor(t, "owner-1"), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var env struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields map[string]string `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Error.Code != "validation_error" || env.Error.Details.Fields["title"] == "" {
		t.Fatalf("unexpected envelope %s", resp.Body.String())
	}
}

func TestApplyPreflightRejectsOwner(t *testing.T) {
	svc := newTestService(nil, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC))
	r := newTestRouter(t, svc)
	in := validInput()
	in.Deadline = "2026-12-31"
	job, err := svc.Create(context.Background(), "owner-1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp := do(r, http.MethodGet, "/api/v1/jobs/"+job.ID+"/apply", tokenFor(t, "owner-1"), nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("You cannot apply to your own job posting.")) {
		t.Fatalf("missing message: %s", resp.Body.String())
	}

	resp = do(r, http.MethodGet, "/api/v1/jobs/"+job.ID+"/apply", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("anonymous preflight: expected 200, got %d", resp.Code)
	}
}
