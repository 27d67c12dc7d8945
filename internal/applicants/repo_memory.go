package applicants

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu         sync.RWMutex
	applicants map[string]Applicant
	notes      map[string][]Note
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		applicants: make(map[string]Applicant),
		notes:      make(map[string][]Note),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, a Applicant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applicants {
		if existing.JobID != a.JobID {
			continue
		}
		if existing.Email == a.Email {
			return ErrDuplicateEmail
		}
		if existing.Phone == a.Phone {
			return ErrDuplicatePhone
		}
	}
	now := time.Now().UTC()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now
	}
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = StatusApplied
	}
	r.applicants[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Applicant, error) {
	if err := ctx.Err(); err != nil {
		return Applicant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.applicants[id]
	if !ok {
		return Applicant{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) List(ctx context.Context, filter Filter) ([]Applicant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	jobs := make(map[string]struct{}, len(filter.JobIDs))
	for _, id := range filter.JobIDs {
		jobs[id] = struct{}{}
	}
	r.mu.RLock()
	out := make([]Applicant, 0)
	for _, a := range r.applicants {
		if _, ok := jobs[a.JobID]; !ok && !filter.AllJobs {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, a)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) ExistsByEmail(ctx context.Context, jobID, email string) (bool, error) {
	return r.exists(ctx, func(a Applicant) bool { return a.JobID == jobID && a.Email == email })
}

func (r *MemoryRepo) ExistsByPhone(ctx context.Context, jobID, phone string) (bool, error) {
	return r.exists(ctx, func(a Applicant) bool { return a.JobID == jobID && a.Phone == phone })
}

func (r *MemoryRepo) exists(ctx context.Context, match func(Applicant) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.applicants {
		if match(a) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applicants[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	r.applicants[id] = a
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applicants[id]; !ok {
		return ErrNotFound
	}
	delete(r.applicants, id)
	delete(r.notes, id)
	return nil
}

func (r *MemoryRepo) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, a := range r.applicants {
		if a.JobID != jobID {
			continue
		}
		delete(r.applicants, id)
		delete(r.notes, id)
		n++
	}
	return n, nil
}

func (r *MemoryRepo) CountByJob(ctx context.Context, jobIDs []string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(jobIDs))
	for _, id := range jobIDs {
		out[id] = 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.applicants {
		if _, ok := out[a.JobID]; ok {
			out[a.JobID]++
		}
	}
	return out, nil
}

func (r *MemoryRepo) AddNote(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.applicants[note.ApplicantID]; !ok {
		return ErrNotFound
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	r.notes[note.ApplicantID] = append(r.notes[note.ApplicantID], note)
	return nil
}

func (r *MemoryRepo) ListNotes(ctx context.Context, applicantID string) ([]Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := append([]Note(nil), r.notes[applicantID]...)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
