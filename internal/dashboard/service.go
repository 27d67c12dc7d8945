// Package dashboard summarizes a recruiter's postings and recent applicants.
package dashboard

import (
	"context"
	"time"

	"github.com/Mareenraj/ATS/internal/applicants"
	"github.com/Mareenraj/ATS/internal/jobs"
)

// RecentLimit is how many of the newest applicants the dashboard shows.
const RecentLimit = 10

type JobLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]jobs.Job, error)
}

type ApplicantLister interface {
	List(ctx context.Context, recruiterID string, filter applicants.ListFilter) ([]applicants.Applicant, error)
}

// Summary is the recruiter's overview.
type Summary struct {
	TotalJobs        int
	ActiveJobs       int
	TotalApplicants  int
	Jobs             []jobs.Job
	RecentApplicants []applicants.Applicant
}

type Service struct {
	Jobs       JobLister
	Applicants ApplicantLister
	Now        func() time.Time
}

func NewService(jobLister JobLister, applicantLister ApplicantLister) *Service {
	return &Service{Jobs: jobLister, Applicants: applicantLister, Now: time.Now}
}

func (s *Service) Summary(ctx context.Context, recruiterID string) (Summary, error) {
	owned, err := s.Jobs.ListByOwner(ctx, recruiterID)
	if err != nil {
		return Summary{}, err
	}
	recent, err := s.Applicants.List(ctx, recruiterID, applicants.ListFilter{Limit: RecentLimit})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		TotalJobs:        len(owned),
		Jobs:             owned,
		RecentApplicants: recent,
	}
	for _, job := range owned {
		if job.IsActive {
			sum.ActiveJobs++
		}
		sum.TotalApplicants += job.ApplicantCount
	}
	return sum, nil
}
