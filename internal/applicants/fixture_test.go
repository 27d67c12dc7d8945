package applicants

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Mareenraj/ATS/internal/extract"
	"github.com/Mareenraj/ATS/internal/fit"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/session"
	"github.com/Mareenraj/ATS/internal/shared/storage/object/local"
	"github.com/Mareenraj/ATS/internal/users"
)

var fixtureNow = time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	repo     *MemoryRepo
	jobs     *jobs.Service
	sessions *session.MemoryStore
	store    *local.Store
	analyzer *fakeAnalyzer
	owner    users.User
	job      jobs.Job
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	userRepo := users.NewMemoryRepo()
	owner := users.User{ID: "owner-1", Username: "recruiter", Email: "recruiter@example.com", FirstName: "Jane", LastName: "Smith"}
	if err := userRepo.Create(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if err := userRepo.Create(ctx, users.User{ID: "owner-2", Username: "other", Email: "other@example.com"}); err != nil {
		t.Fatalf("create second owner: %v", err)
	}

	repo := NewMemoryRepo()
	clock := fixtureNow
	now := func() time.Time { return clock }

	jobSvc := jobs.NewService(jobs.NewMemoryRepo(), repo)
	jobSvc.Now = now
	job, err := jobSvc.Create(ctx, owner.ID, jobs.Input{
		Title:            "Senior Python Developer",
		Description:      "Build backend services.",
		Location:         "Remote",
		Requirements:     "Python, Django",
		Responsibilities: "Design APIs",
		Deadline:         "2026-11-30",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	store := local.New(t.TempDir())
	sessions := session.NewMemoryStore(time.Hour, now)
	analyzer := &fakeAnalyzer{result: fit.Result{Success: true, Kind: fit.KindSuccess, Analysis: "Strong match"}}

	svc := NewService(repo, jobSvc, users.NewService(userRepo), store, sessions, analyzer)
	svc.Now = now
	return &fixture{
		svc:      svc,
		repo:     repo,
		jobs:     jobSvc,
		sessions: sessions,
		store:    store,
		analyzer: analyzer,
		owner:    owner,
		job:      job,
		clock:    &clock,
	}
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

type fakeAnalyzer struct {
	mu       sync.Mutex
	result   fit.Result
	requests []fit.Request
}

func (a *fakeAnalyzer) Analyze(_ context.Context, req fit.Request) fit.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	return a.result
}

func (a *fakeAnalyzer) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.requests)
}

type fakeResumes struct {
	result extract.Result
	keys   []string
}

func (r *fakeResumes) Extract(_ context.Context, key string) extract.Result {
	r.keys = append(r.keys, key)
	return r.result
}

func aliceForm() Form {
	return Form{
		FirstName: "Alice",
		LastName:  "Johnson",
		Email:     "alice@example.com",
		Phone:     "555-0101",
		LinkedIn:  "https://linkedin.com/in/alicejohnson",
	}
}
