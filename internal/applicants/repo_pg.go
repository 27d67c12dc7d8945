package applicants

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Mareenraj/ATS/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const (
	constraintJobEmail = "applicants_job_email_key"
	constraintJobPhone = "applicants_job_phone_key"
)

const selectApplicant = `
SELECT id, job_id, first_name, last_name, email, phone, linkedin, resume_key,
       cover_letter, status, applied_at, updated_at
FROM applicants`

func (r *PGRepo) Create(ctx context.Context, a Applicant) error {
	const query = `
INSERT INTO applicants (id, job_id, first_name, last_name, email, phone, linkedin, resume_key,
                        cover_letter, status, applied_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	status := a.Status
	if status == "" {
		status = StatusApplied
	}
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.JobID,
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		nullableString(a.LinkedIn),
		a.ResumeKey,
		a.CoverLetter,
		string(status),
	)
	if err == nil {
		return nil
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case constraintJobEmail:
			return ErrDuplicateEmail
		case constraintJobPhone:
			return ErrDuplicatePhone
		}
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Applicant, error) {
	row := r.DB.QueryRowContext(ctx, selectApplicant+"\nWHERE id = $1\nLIMIT 1", id)
	a, err := scanApplicant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Applicant{}, ErrNotFound
		}
		return Applicant{}, err
	}
	return a, nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Applicant, error) {
	if !filter.AllJobs && len(filter.JobIDs) == 0 {
		return nil, nil
	}
	var where []string
	var args []any
	if !filter.AllJobs {
		var in string
		in, args = placeholders(args, filter.JobIDs)
		where = append(where, "job_id IN ("+in+")")
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	query := selectApplicant
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY applied_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += "\nLIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) ExistsByEmail(ctx context.Context, jobID, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM applicants WHERE job_id = $1 AND email = $2)`, jobID, email)
}

func (r *PGRepo) ExistsByPhone(ctx context.Context, jobID, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM applicants WHERE job_id = $1 AND phone = $2)`, jobID, phone)
}

func (r *PGRepo) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found bool
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE applicants SET status = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// DeleteByJob usually finds nothing once the job row is gone, since
// applicants cascade with their job.
func (r *PGRepo) DeleteByJob(ctx context.Context, jobID string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM applicants WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *PGRepo) CountByJob(ctx context.Context, jobIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	in, args := placeholders(nil, jobIDs)
	query := `SELECT job_id, count(*) FROM applicants WHERE job_id IN (` + in + `) GROUP BY job_id`
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var jobID string
		var n int
		if err := rows.Scan(&jobID, &n); err != nil {
			return nil, err
		}
		out[jobID] = n
	}
	return out, rows.Err()
}

func (r *PGRepo) AddNote(ctx context.Context, note Note) error {
	const query = `
INSERT INTO applicant_notes (id, applicant_id, note, created_by, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.DB.ExecContext(ctx, query, note.ID, note.ApplicantID, note.Body, note.CreatedBy)
	return err
}

func (r *PGRepo) ListNotes(ctx context.Context, applicantID string) ([]Note, error) {
	const query = `
SELECT id, applicant_id, note, created_by, created_at
FROM applicant_notes
WHERE applicant_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.ApplicantID, &n.Body, &n.CreatedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplicant(row rowScanner) (Applicant, error) {
	var a Applicant
	var linkedIn sql.NullString
	var status string
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&linkedIn,
		&a.ResumeKey,
		&a.CoverLetter,
		&status,
		&a.AppliedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Applicant{}, err
	}
	a.LinkedIn = linkedIn.String
	a.Status = Status(status)
	return a, nil
}

func placeholders(args []any, values []string) (string, []any) {
	marks := make([]string, 0, len(values))
	for _, v := range values {
		args = append(args, v)
		marks = append(marks, "$"+strconv.Itoa(len(args)))
	}
	return strings.Join(marks, ", "), args
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
