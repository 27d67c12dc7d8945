package applicants

import (
	"context"

	"github.com/Mareenraj/ATS/internal/extract"
	"github.com/Mareenraj/ATS/internal/fit"
	"github.com/Mareenraj/ATS/internal/jobs"
)

const warnExtractionFailed = "Cannot analyze - resume text extraction failed."

// Detail is everything the recruiter's applicant page shows.
// Resume is nil when the stored file is not a PDF. Analysis is nil unless
// analysis was requested and the resume text was usable.
type Detail struct {
	Applicant Applicant
	Job       jobs.Job
	Notes     []Note
	Resume    *extract.Result
	Analysis  *fit.Result
	Warnings  []string
}

// Detail loads a scoped applicant, extracts PDF resumes eagerly and, when
// analyze is set, runs the fit analysis on the extracted text. Extraction and
// analysis failures become warnings, never errors.
func (s *Service) Detail(ctx context.Context, recruiterID, applicantID string, analyze bool) (Detail, error) {
	a, job, err := s.Get(ctx, recruiterID, applicantID)
	if err != nil {
		return Detail{}, err
	}
	notes, err := s.Repo.ListNotes(ctx, a.ID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Applicant: a, Job: job, Notes: notes}
	if extract.IsPDF(a.ResumeKey) && s.Resumes != nil {
		res := s.Resumes.Extract(ctx, a.ResumeKey)
		d.Resume = &res
	}
	if !analyze {
		return d, nil
	}

	if d.Resume == nil || !d.Resume.Usable() {
		d.Warnings = append(d.Warnings, warnExtractionFailed)
		return d, nil
	}
	result := s.Analyzer.Analyze(ctx, fit.Request{
		JobTitle:        job.Title,
		JobDescription:  job.Description,
		JobRequirements: job.Requirements,
		ResumeText:      d.Resume.Text,
	})
	d.Analysis = &result
	if !result.Success {
		d.Warnings = append(d.Warnings, "AI Analysis: "+result.Error)
	}
	return d, nil
}
