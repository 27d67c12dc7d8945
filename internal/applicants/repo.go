package applicants

import "context"

// Repo persists applicants and their notes. Listings are newest first.
// Create enforces one application per (job, email) and per (job, phone),
// returning ErrDuplicateEmail or ErrDuplicatePhone.
type Repo interface {
	Create(ctx context.Context, a Applicant) error
	GetByID(ctx context.Context, id string) (Applicant, error)
	List(ctx context.Context, filter Filter) ([]Applicant, error)
	ExistsByEmail(ctx context.Context, jobID, email string) (bool, error)
	ExistsByPhone(ctx context.Context, jobID, phone string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
	// DeleteByJob removes every applicant of a job and reports how many went.
	DeleteByJob(ctx context.Context, jobID string) (int, error)
	CountByJob(ctx context.Context, jobIDs []string) (map[string]int, error)

	AddNote(ctx context.Context, note Note) error
	ListNotes(ctx context.Context, applicantID string) ([]Note, error)
}
