package applicants

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Mareenraj/ATS/internal/extract"
	"github.com/Mareenraj/ATS/internal/fit"
	"github.com/Mareenraj/ATS/internal/intake"
	"github.com/Mareenraj/ATS/internal/jobs"
	"github.com/Mareenraj/ATS/internal/shared/session"
	"github.com/Mareenraj/ATS/internal/shared/storage/object"
	"github.com/Mareenraj/ATS/internal/shared/telemetry"
	"github.com/Mareenraj/ATS/internal/users"
)

// JobSource resolves postings for intake and recruiter scoping.
type JobSource interface {
	GetActive(ctx context.Context, jobID string) (jobs.Job, error)
	GetOwned(ctx context.Context, jobID, ownerID string) (jobs.Job, error)
	ListByOwner(ctx context.Context, ownerID string) ([]jobs.Job, error)
}

// UserLookup resolves a posting owner's account.
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (users.User, error)
}

// ResumeReader turns a stored resume into text.
type ResumeReader interface {
	Extract(ctx context.Context, key string) extract.Result
}

// FitAnalyzer scores a resume against a posting.
type FitAnalyzer interface {
	Analyze(ctx context.Context, req fit.Request) fit.Result
}

type Service struct {
	Repo     Repo
	Jobs     JobSource
	Users    UserLookup
	Guard    intake.Guard
	Store    object.ObjectStore
	Sessions session.Store
	Resumes  ResumeReader
	Analyzer FitAnalyzer
	Now      func() time.Time
}

func NewService(repo Repo, jobSource JobSource, userLookup UserLookup, store object.ObjectStore, sessions session.Store, analyzer FitAnalyzer) *Service {
	return &Service{
		Repo:     repo,
		Jobs:     jobSource,
		Users:    userLookup,
		Guard:    intake.Guard{Applicants: repo},
		Store:    store,
		Sessions: sessions,
		Resumes:  extract.Extractor{Store: store},
		Analyzer: analyzer,
		Now:      time.Now,
	}
}

// Form is the candidate-supplied part of an application.
type Form struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	LinkedIn    string
	CoverLetter string
}

// Submission is one apply attempt. UserID is empty for anonymous visitors.
type Submission struct {
	JobID      string
	SessionID  string
	UserID     string
	Form       Form
	ResumeName string
	Resume     io.Reader
}

// Validate checks field presence and shape. It never consults storage.
func (f Form) Validate() FieldErrors {
	fields := FieldErrors{}
	requiredField(fields, "firstName", f.FirstName, 100)
	requiredField(fields, "lastName", f.LastName, 100)
	requiredField(fields, "phone", f.Phone, 20)

	email := strings.TrimSpace(f.Email)
	if email == "" {
		fields["email"] = "This field is required."
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		fields["email"] = "Enter a valid email address."
	}

	if link := strings.TrimSpace(f.LinkedIn); link != "" {
		u, err := url.ParseRequestURI(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fields["linkedin"] = "Enter a valid URL."
		}
	}
	return fields
}

func (f Form) normalized() Form {
	return Form{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       strings.TrimSpace(f.Email),
		Phone:       strings.TrimSpace(f.Phone),
		LinkedIn:    strings.TrimSpace(f.LinkedIn),
		CoverLetter: f.CoverLetter,
	}
}

// Apply runs an application through the intake guard and form validation,
// stores the resume, persists the applicant and then records the submission
// time in the caller's session. Ownership, expiry and the session cooldown
// are checked before the form is validated; the recruiter-email and duplicate
// checks need the form and run after it. A refused attempt returns a
// non-admitted Decision and a nil error.
func (s *Service) Apply(ctx context.Context, sub Submission) (Applicant, intake.Decision, error) {
	job, err := s.Jobs.GetActive(ctx, sub.JobID)
	if err != nil {
		return Applicant{}, intake.Decision{}, err
	}

	owner, err := s.Users.GetByID(ctx, job.CreatedBy)
	if err != nil {
		return Applicant{}, intake.Decision{}, fmt.Errorf("load job owner: %w", err)
	}
	intakeJob := job.IntakeJob(owner.Email)

	state, err := s.loadState(ctx, sub.SessionID)
	if err != nil {
		return Applicant{}, intake.Decision{}, err
	}

	now := s.now()
	if d := s.Guard.Screen(state, intakeJob, sub.UserID, now); !d.Admitted {
		logRejection(job.ID, sub.SessionID, d)
		return Applicant{}, d, nil
	}

	form := sub.Form.normalized()
	fields := form.Validate()
	if sub.Resume == nil || strings.TrimSpace(sub.ResumeName) == "" {
		fields["resume"] = "This field is required."
	}
	if len(fields) > 0 {
		return Applicant{}, intake.Decision{}, fields
	}

	decision, err := s.Guard.Admit(ctx, state, intakeJob, intake.Candidate{
		UserID: sub.UserID,
		Email:  form.Email,
		Phone:  form.Phone,
	}, now)
	if err != nil {
		return Applicant{}, intake.Decision{}, err
	}
	if !decision.Admitted {
		logRejection(job.ID, sub.SessionID, decision)
		return Applicant{}, decision, nil
	}

	key, _, _, err := s.Store.Save(ctx, "job:"+job.ID, sub.ResumeName, sub.Resume)
	if err != nil {
		return Applicant{}, intake.Decision{}, fmt.Errorf("store resume: %w", err)
	}

	a := Applicant{
		ID:          uuid.NewString(),
		JobID:       job.ID,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Phone:       form.Phone,
		LinkedIn:    form.LinkedIn,
		ResumeKey:   key,
		CoverLetter: form.CoverLetter,
		Status:      StatusApplied,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		s.discardResume(ctx, key)
		if d, ok := duplicateDecision(err, form); ok {
			return Applicant{}, d, nil
		}
		return Applicant{}, intake.Decision{}, err
	}

	if sub.SessionID != "" && s.Sessions != nil {
		if err := s.Sessions.Save(ctx, sub.SessionID, session.State{LastAppliedAt: now}); err != nil {
			telemetry.Warn("intake.session_save_failed", map[string]any{
				"session_id": sub.SessionID,
				"error":      err.Error(),
			})
		}
	}

	telemetry.Info("applicant.created", map[string]any{
		"applicant_id": a.ID,
		"job_id":       job.ID,
		"session_id":   sub.SessionID,
	})
	created, err := s.Repo.GetByID(ctx, a.ID)
	if err != nil {
		return Applicant{}, intake.Decision{}, err
	}
	created.JobTitle = job.Title
	return created, decision, nil
}

// ListFilter is the recruiter-facing listing query.
type ListFilter struct {
	JobID  string
	Status Status
	Limit  int
}

// List returns applicants to the recruiter's postings, newest first.
func (s *Service) List(ctx context.Context, recruiterID string, filter ListFilter) ([]Applicant, error) {
	owned, err := s.Jobs.ListByOwner(ctx, recruiterID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(owned))
	ids := make([]string, 0, len(owned))
	for _, job := range owned {
		titles[job.ID] = job.Title
		if filter.JobID == "" || filter.JobID == job.ID {
			ids = append(ids, job.ID)
		}
	}
	if len(ids) == 0 {
		return []Applicant{}, nil
	}
	list, err := s.Repo.List(ctx, Filter{JobIDs: ids, Status: filter.Status, Limit: filter.Limit})
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].JobTitle = titles[list[i].JobID]
	}
	return list, nil
}

// Get loads an applicant only if it applied to one of the recruiter's jobs.
func (s *Service) Get(ctx context.Context, recruiterID, applicantID string) (Applicant, jobs.Job, error) {
	a, err := s.Repo.GetByID(ctx, applicantID)
	if err != nil {
		return Applicant{}, jobs.Job{}, err
	}
	job, err := s.Jobs.GetOwned(ctx, a.JobID, recruiterID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return Applicant{}, jobs.Job{}, ErrNotFound
		}
		return Applicant{}, jobs.Job{}, err
	}
	a.JobTitle = job.Title
	return a, job, nil
}

func (s *Service) UpdateStatus(ctx context.Context, recruiterID, applicantID string, status Status) (Applicant, error) {
	if !status.Valid() {
		return Applicant{}, FieldErrors{"status": fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", status)}
	}
	if _, _, err := s.Get(ctx, recruiterID, applicantID); err != nil {
		return Applicant{}, err
	}
	if err := s.Repo.UpdateStatus(ctx, applicantID, status); err != nil {
		return Applicant{}, err
	}
	a, _, err := s.Get(ctx, recruiterID, applicantID)
	return a, err
}

func (s *Service) AddNote(ctx context.Context, recruiterID, applicantID, body string) (Note, error) {
	if strings.TrimSpace(body) == "" {
		return Note{}, FieldErrors{"note": "This field is required."}
	}
	if _, _, err := s.Get(ctx, recruiterID, applicantID); err != nil {
		return Note{}, err
	}
	note := Note{
		ID:          uuid.NewString(),
		ApplicantID: applicantID,
		Body:        body,
		CreatedBy:   recruiterID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.AddNote(ctx, note); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Delete removes an applicant and, best effort, its stored resume.
func (s *Service) Delete(ctx context.Context, recruiterID, applicantID string) (Applicant, error) {
	a, _, err := s.Get(ctx, recruiterID, applicantID)
	if err != nil {
		return Applicant{}, err
	}
	if err := s.Repo.Delete(ctx, applicantID); err != nil {
		return Applicant{}, err
	}
	s.discardResume(ctx, a.ResumeKey)
	return a, nil
}

// OpenResume streams the stored resume of a scoped applicant.
func (s *Service) OpenResume(ctx context.Context, recruiterID, applicantID string) (Applicant, io.ReadCloser, error) {
	a, _, err := s.Get(ctx, recruiterID, applicantID)
	if err != nil {
		return Applicant{}, nil, err
	}
	rc, err := s.Store.Open(ctx, a.ResumeKey)
	if err != nil {
		return Applicant{}, nil, err
	}
	return a, rc, nil
}

// ResumeKeys lists the stored resumes of a job's applicants. Collect them
// before the job is deleted; the rows go with it.
func (s *Service) ResumeKeys(ctx context.Context, jobID string) ([]string, error) {
	list, err := s.Repo.List(ctx, Filter{JobIDs: []string{jobID}})
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(list))
	for _, a := range list {
		if a.ResumeKey != "" {
			keys = append(keys, a.ResumeKey)
		}
	}
	return keys, nil
}

// ReleaseJob drops whatever applicant rows a deleted job left behind and
// deletes their resumes.
func (s *Service) ReleaseJob(ctx context.Context, jobID string, resumeKeys []string) {
	if _, err := s.Repo.DeleteByJob(ctx, jobID); err != nil {
		telemetry.Warn("applicant.job_release_failed", map[string]any{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
	for _, key := range resumeKeys {
		s.discardResume(ctx, key)
	}
}

// CountByJob satisfies jobs.ApplicantCounter.
func (s *Service) CountByJob(ctx context.Context, jobIDs []string) (map[string]int, error) {
	return s.Repo.CountByJob(ctx, jobIDs)
}

func (s *Service) loadState(ctx context.Context, sessionID string) (session.State, error) {
	if sessionID == "" || s.Sessions == nil {
		return session.State{}, nil
	}
	state, err := s.Sessions.Load(ctx, sessionID)
	if err != nil {
		return session.State{}, fmt.Errorf("load session: %w", err)
	}
	return state, nil
}

func (s *Service) discardResume(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("applicant.resume_delete_failed", map[string]any{
			"resume_key": key,
			"error":      err.Error(),
		})
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func logRejection(jobID, sessionID string, d intake.Decision) {
	telemetry.Info("intake.rejected", map[string]any{
		"job_id":     jobID,
		"session_id": sessionID,
		"code":       string(d.Code()),
	})
}

// duplicateDecision turns a storage uniqueness failure that raced the guard
// into the same rejection the guard would have produced.
func duplicateDecision(err error, form Form) (intake.Decision, bool) {
	var msg string
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		msg = fmt.Sprintf("You have already applied for this position with email %s.", form.Email)
	case errors.Is(err, ErrDuplicatePhone):
		msg = fmt.Sprintf("You have already applied for this position with phone number %s.", form.Phone)
	default:
		return intake.Decision{}, false
	}
	return intake.Decision{Rejections: []intake.Rejection{{Code: intake.CodeDuplicate, Message: msg}}}, true
}

func requiredField(fields FieldErrors, name, value string, max int) {
	value = strings.TrimSpace(value)
	if value == "" {
		fields[name] = "This field is required."
		return
	}
	if utf8.RuneCountInString(value) > max {
		fields[name] = fmt.Sprintf("Ensure this field has no more than %d characters.", max)
	}
}
