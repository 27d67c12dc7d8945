package applicants

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mareenraj/ATS/internal/extract"
	"github.com/Mareenraj/ATS/internal/fit"
)

func seedApplicant(t *testing.T, f *fixture, resumeKey string) Applicant {
	t.Helper()
	a := Applicant{
		ID:        "app-1",
		JobID:     f.job.ID,
		FirstName: "Alice",
		LastName:  "Johnson",
		Email:     "alice@example.com",
		Phone:     "555-0101",
		ResumeKey: resumeKey,
	}
	if err := f.repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed applicant: %v", err)
	}
	return a
}

func TestDetailOrchestration(t *testing.T) {
	text := extract.Result{Outcome: extract.OutcomeText, Text: "Python developer"}
	empty := extract.Result{Outcome: extract.OutcomeEmpty}
	failed := fit.Result{Kind: fit.KindRateLimited, Error: "AI service rate limit reached. Please wait about 30 seconds and try again."}

	cases := []struct {
		name         string
		resumeKey    string
		extraction   extract.Result
		analysis     *fit.Result
		analyze      bool
		wantResume   bool
		wantAnalysis bool
		wantCalls    int
		wantWarnings []string
	}{
		{
			name:       "view pdf extracts eagerly without analysis",
			resumeKey:  "h/abc_alice.pdf",
			extraction: text,
			wantResume: true,
		},
		{
			name:      "non pdf has no text",
			resumeKey: "h/abc_alice.docx",
		},
		{
			name:         "analyze with usable text",
			resumeKey:    "h/abc_alice.PDF",
			extraction:   text,
			analyze:      true,
			wantResume:   true,
			wantAnalysis: true,
			wantCalls:    1,
		},
		{
			name:         "analyze with empty extraction",
			resumeKey:    "h/abc_alice.pdf",
			extraction:   empty,
			analyze:      true,
			wantResume:   true,
			wantWarnings: []string{"Cannot analyze - resume text extraction failed."},
		},
		{
			name:         "analyze non pdf",
			resumeKey:    "h/abc_alice.doc",
			analyze:      true,
			wantWarnings: []string{"Cannot analyze - resume text extraction failed."},
		},
		{
			name:         "analysis failure becomes warning",
			resumeKey:    "h/abc_alice.pdf",
			extraction:   text,
			analysis:     &failed,
			analyze:      true,
			wantResume:   true,
			wantAnalysis: true,
			wantCalls:    1,
			wantWarnings: []string{"AI Analysis: " + failed.Error},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			resumes := &fakeResumes{result: tc.extraction}
			f.svc.Resumes = resumes
			if tc.analysis != nil {
				f.analyzer.result = *tc.analysis
			}
			a := seedApplicant(t, f, tc.resumeKey)
			if _, err := f.svc.AddNote(context.Background(), f.owner.ID, a.ID, "Strong portfolio"); err != nil {
				t.Fatalf("AddNote: %v", err)
			}

			d, err := f.svc.Detail(context.Background(), f.owner.ID, a.ID, tc.analyze)
			if err != nil {
				t.Fatalf("Detail: %v", err)
			}
			if (d.Resume != nil) != tc.wantResume {
				t.Fatalf("resume present = %v, want %v", d.Resume != nil, tc.wantResume)
			}
			if (d.Analysis != nil) != tc.wantAnalysis {
				t.Fatalf("analysis present = %v, want %v", d.Analysis != nil, tc.wantAnalysis)
			}
			if got := f.analyzer.calls(); got != tc.wantCalls {
				t.Fatalf("analyzer calls = %d, want %d", got, tc.wantCalls)
			}
			if strings.Join(d.Warnings, "|") != strings.Join(tc.wantWarnings, "|") {
				t.Fatalf("warnings = %v, want %v", d.Warnings, tc.wantWarnings)
			}
			if len(d.Notes) != 1 || d.Job.ID != f.job.ID {
				t.Fatalf("unexpected detail %+v", d)
			}
		})
	}
}

func TestDetailPassesJobFieldsToAnalyzer(t *testing.T) {
	f := newFixture(t)
	f.svc.Resumes = &fakeResumes{result: extract.Result{Outcome: extract.OutcomeText, Text: "Django expert"}}
	a := seedApplicant(t, f, "h/abc_alice.pdf")

	if _, err := f.svc.Detail(context.Background(), f.owner.ID, a.ID, true); err != nil {
		t.Fatalf("Detail: %v", err)
	}
	req := f.analyzer.requests[0]
	if req.JobTitle != f.job.Title || req.JobDescription != f.job.Description ||
		req.JobRequirements != f.job.Requirements || req.ResumeText != "Django expert" {
		t.Fatalf("unexpected analyzer request %+v", req)
	}
}

func TestDetailScopedToRecruiter(t *testing.T) {
	f := newFixture(t)
	a := seedApplicant(t, f, "h/abc_alice.pdf")
	if _, err := f.svc.Detail(context.Background(), "owner-2", a.ID, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.analyzer.calls() != 0 {
		t.Fatal("analyzer must not run for foreign applicants")
	}
}

func TestDetailUsesStoredFile(t *testing.T) {
	f := newFixture(t)
	a := seedApplicant(t, f, "missing/abc_alice.pdf")

	d, err := f.svc.Detail(context.Background(), f.owner.ID, a.ID, true)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Resume == nil || d.Resume.Outcome != extract.OutcomeNotFound {
		t.Fatalf("expected not_found extraction, got %+v", d.Resume)
	}
	if len(d.Warnings) != 1 || d.Warnings[0] != warnExtractionFailed {
		t.Fatalf("unexpected warnings %v", d.Warnings)
	}
}
