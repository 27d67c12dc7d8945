// Package seed loads the sample recruiter, postings and applicants used for
// local development and demos. Loading is idempotent.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Mareenraj/ATS/internal/applicants"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/storage/object"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
	"github.com/Mareenraj/ATS/internal/users"
)

//go:embed sample_data.yaml
var sampleData []byte

type Data struct {
	Recruiter    RecruiterSeed   `yaml:"recruiter"`
	DeadlineDays int             `yaml:"deadlineDays"`
	Jobs         []JobSeed       `yaml:"jobs"`
	Applicants   []ApplicantSeed `yaml:"applicants"`
}

type RecruiterSeed struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

type JobSeed struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	Location         string `yaml:"location"`
	EmploymentType   string `yaml:"employmentType"`
	SalaryRange      string `yaml:"salaryRange"`
	Requirements     string `yaml:"requirements"`
	Responsibilities string `yaml:"responsibilities"`
}

type ApplicantSeed struct {
	FirstName string   `yaml:"firstName"`
	LastName  string   `yaml:"lastName"`
	Email     string   `yaml:"email"`
	Phone     string   `yaml:"phone"`
	LinkedIn  string   `yaml:"linkedin"`
	Status    string   `yaml:"status"`
	Resume    []string `yaml:"resume"`
}

// Sample returns the embedded sample data set.
func Sample() (Data, error) {
	return Parse(sampleData)
}

// Parse decodes a seed document, rejecting unknown keys.
func Parse(raw []byte) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode seed data: %w", err)
	}
	if d.DeadlineDays <= 0 {
		d.DeadlineDays = 60
	}
	return d, nil
}

type AccountEnsurer interface {
	EnsureAccount(ctx context.Context, in users.RegisterInput) (users.User, bool, error)
}

type JobCreator interface {
	ListByOwner(ctx context.Context, ownerID string) ([]jobs.Job, error)
	Create(ctx context.Context, ownerID string, in jobs.Input) (jobs.Job, error)
}

type Loader struct {
	Users      AccountEnsurer
	Jobs       JobCreator
	Applicants applicants.Repo
	Store      object.ObjectStore
	Now        func() time.Time
}

// Report counts what a Load call created.
type Report struct {
	RecruiterCreated  bool
	JobsCreated       int
	ApplicantsCreated int
}

// Load creates whatever part of d is missing. Jobs are matched by title for
// the recruiter and applicants by email for their job.
func (l *Loader) Load(ctx context.Context, d Data) (Report, error) {
	var rep Report
	recruiter, created, err := l.Users.EnsureAccount(ctx, users.RegisterInput{
		Username:  d.Recruiter.Username,
		Email:     d.Recruiter.Email,
		Password:  d.Recruiter.Password,
		FirstName: d.Recruiter.FirstName,
		LastName:  d.Recruiter.LastName,
	})
	if err != nil {
		return rep, fmt.Errorf("ensure recruiter: %w", err)
	}
	rep.RecruiterCreated = created
	if created {
		telemetry.Info("seed.recruiter_created", map[string]any{"username": recruiter.Username})
	}

	existing, err := l.Jobs.ListByOwner(ctx, recruiter.ID)
	if err != nil {
		return rep, fmt.Errorf("list jobs: %w", err)
	}
	byTitle := make(map[string]jobs.Job, len(existing))
	for _, job := range existing {
		byTitle[job.Title] = job
	}

	deadline := l.now().AddDate(0, 0, d.DeadlineDays).Format(jobs.DateLayout)
	posted := make([]jobs.Job, 0, len(d.Jobs))
	for _, js := range d.Jobs {
		if job, ok := byTitle[js.Title]; ok {
			posted = append(posted, job)
			continue
		}
		job, err := l.Jobs.Create(ctx, recruiter.ID, jobs.Input{
			Title:            js.Title,
			Description:      js.Description,
			Location:         js.Location,
			EmploymentType:   jobs.EmploymentType(js.EmploymentType),
			SalaryRange:      js.SalaryRange,
			Requirements:     js.Requirements,
			Responsibilities: js.Responsibilities,
			Deadline:         deadline,
		})
		if err != nil {
			return rep, fmt.Errorf("create job %q: %w", js.Title, err)
		}
		rep.JobsCreated++
		telemetry.Info("seed.job_created", map[string]any{"job_id": job.ID, "title": job.Title})
		posted = append(posted, job)
	}
	if len(posted) == 0 {
		return rep, nil
	}

	for i, as := range d.Applicants {
		job := posted[i%len(posted)]
		found, err := l.Applicants.ExistsByEmail(ctx, job.ID, as.Email)
		if err != nil {
			return rep, fmt.Errorf("check applicant %s: %w", as.Email, err)
		}
		if found {
			continue
		}
		key, _, _, err := l.Store.Save(ctx, "job:"+job.ID, "resume.pdf", bytes.NewReader(renderResume(as.Resume)))
		if err != nil {
			return rep, fmt.Errorf("store resume for %s: %w", as.Email, err)
		}
		a := applicants.Applicant{
			ID:          uuid.NewString(),
			JobID:       job.ID,
			FirstName:   as.FirstName,
			LastName:    as.LastName,
			Email:       as.Email,
			Phone:       as.Phone,
			LinkedIn:    as.LinkedIn,
			ResumeKey:   key,
			CoverLetter: fmt.Sprintf("I am very interested in the %s position...", job.Title),
			Status:      applicants.Status(as.Status),
		}
		if err := l.Applicants.Create(ctx, a); err != nil {
			return rep, fmt.Errorf("create applicant %s: %w", as.Email, err)
		}
		rep.ApplicantsCreated++
		telemetry.Info("seed.applicant_created", map[string]any{"applicant_id": a.ID, "job_id": job.ID})
	}
	return rep, nil
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
