package jobs

import "context"

// Repo persists postings. Listings are ordered newest first.
type Repo interface {
	Create(ctx context.Context, job Job) error
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, jobID, ownerID string) error
	GetByID(ctx context.Context, jobID string) (Job, error)
	List(ctx context.Context, filter Filter) ([]Job, error)
}
