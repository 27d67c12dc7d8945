package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Mareenraj/ATS/internal/intake"
)

// ApplicantCounter reports how many applicants each job has.
type ApplicantCounter interface {
	CountByJob(ctx context.Context, jobIDs []string) (map[string]int, error)
}

// ApplicantReleaser cleans up after a deleted posting's applicants.
type ApplicantReleaser interface {
	ResumeKeys(ctx context.Context, jobID string) ([]string, error)
	ReleaseJob(ctx context.Context, jobID string, resumeKeys []string)
}

type Service struct {
	Repo    Repo
	Counter ApplicantCounter
	// Applicants is optional; without it a deleted job's resumes stay stored.
	Applicants ApplicantReleaser
	Now        func() time.Time
}

func NewService(repo Repo, counter ApplicantCounter) *Service {
	return &Service{Repo: repo, Counter: counter, Now: time.Now}
}

// ListActive returns open postings, newest first, with applicant counts.
func (s *Service) ListActive(ctx context.Context) ([]Job, error) {
	list, err := s.Repo.List(ctx, Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, list)
}

// ListByOwner returns every posting created by ownerID with applicant counts.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Job, error) {
	list, err := s.Repo.List(ctx, Filter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, list)
}

// GetActive loads a posting visible to the public. Inactive jobs read as missing.
func (s *Service) GetActive(ctx context.Context, jobID string) (Job, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if !job.IsActive {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// GetOwned loads a posting only if ownerID created it.
func (s *Service) GetOwned(ctx context.Context, jobID, ownerID string) (Job, error) {
	job, err := s.Repo.GetByID(ctx, jobID)
	if err != nil {
		return Job{}, err
	}
	if job.CreatedBy != ownerID {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, in Input) (Job, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Job{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	job := Job{
		ID:        uuid.NewString(),
		CreatedBy: ownerID,
		IsActive:  true,
	}
	if err := apply(&job, in); err != nil {
		return Job{}, err
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	return s.Repo.GetByID(ctx, job.ID)
}

func (s *Service) Update(ctx context.Context, jobID, ownerID string, in Input) (Job, error) {
	job, err := s.GetOwned(ctx, jobID, ownerID)
	if err != nil {
		return Job{}, err
	}
	if err := apply(&job, in); err != nil {
		return Job{}, err
	}
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return s.Repo.GetByID(ctx, job.ID)
}

// Delete removes an owned posting and returns it as it was. Its applicants
// and their stored resumes go with it.
func (s *Service) Delete(ctx context.Context, jobID, ownerID string) (Job, error) {
	job, err := s.GetOwned(ctx, jobID, ownerID)
	if err != nil {
		return Job{}, err
	}
	var resumeKeys []string
	if s.Applicants != nil {
		if resumeKeys, err = s.Applicants.ResumeKeys(ctx, jobID); err != nil {
			return Job{}, fmt.Errorf("list applicant resumes: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, jobID, ownerID); err != nil {
		return Job{}, err
	}
	if s.Applicants != nil {
		s.Applicants.ReleaseJob(ctx, jobID, resumeKeys)
	}
	return job, nil
}

// Preflight loads an active posting and runs the view-only intake checks.
func (s *Service) Preflight(ctx context.Context, jobID, viewerID string) (Job, intake.Decision, error) {
	job, err := s.GetActive(ctx, jobID)
	if err != nil {
		return Job{}, intake.Decision{}, err
	}
	d := intake.Guard{}.Preflight(job.IntakeJob(""), viewerID, s.now())
	return job, d, nil
}

// IntakeJob projects the posting onto what the intake guard checks.
func (j Job) IntakeJob(ownerEmail string) intake.Job {
	return intake.Job{
		ID:         j.ID,
		OwnerID:    j.CreatedBy,
		OwnerEmail: ownerEmail,
		Deadline:   j.Deadline,
	}
}

func (s *Service) withCounts(ctx context.Context, list []Job) ([]Job, error) {
	if s.Counter == nil || len(list) == 0 {
		return list, nil
	}
	ids := make([]string, 0, len(list))
	for _, job := range list {
		ids = append(ids, job.ID)
	}
	counts, err := s.Counter.CountByJob(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count applicants: %w", err)
	}
	for i := range list {
		list[i].ApplicantCount = counts[list[i].ID]
	}
	return list, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func apply(job *Job, in Input) error {
	fields := FieldErrors{}
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	salary := strings.TrimSpace(in.SalaryRange)

	required(fields, "title", title, 200)
	required(fields, "description", in.Description, 0)
	required(fields, "location", location, 200)
	required(fields, "requirements", in.Requirements, 0)
	required(fields, "responsibilities", in.Responsibilities, 0)
	if utf8.RuneCountInString(salary) > 100 {
		fields["salaryRange"] = "Ensure this field has no more than 100 characters."
	}

	kind := in.EmploymentType
	if kind == "" {
		kind = FullTime
	}
	if !kind.Valid() {
		fields["employmentType"] = fmt.Sprintf("%q is not a valid choice.", string(kind))
	}

	var deadline time.Time
	if strings.TrimSpace(in.Deadline) == "" {
		fields["deadline"] = "This field is required."
	} else {
		d, err := time.Parse(DateLayout, strings.TrimSpace(in.Deadline))
		if err != nil {
			fields["deadline"] = "Enter a valid date."
		}
		deadline = d
	}
	if len(fields) > 0 {
		return fields
	}

	job.Title = title
	job.Description = in.Description
	job.Location = location
	job.EmploymentType = kind
	job.SalaryRange = salary
	job.Requirements = in.Requirements
	job.Responsibilities = in.Responsibilities
	job.Deadline = deadline
	if in.IsActive != nil {
		job.IsActive = *in.IsActive
	}
	return nil
}

func required(fields FieldErrors, name, value string, max int) {
	value = strings.TrimSpace(value)
	if value == "" {
		fields[name] = "This field is required."
		return
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		fields[name] = fmt.Sprintf("Ensure this field has no more than %d characters.", max)
	}
}
