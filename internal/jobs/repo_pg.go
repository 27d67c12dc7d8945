package jobs

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

type PGRepo struct {
	DB *sql.DB
}

const selectJob = `
SELECT id, title, description, location, employment_type, salary_range, requirements,
       responsibilities, deadline, is_active, created_by, created_at, updated_at
FROM jobs`

func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, description, location, employment_type, salary_range, requirements,
                  responsibilities, deadline, is_active, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		job.Location,
		string(job.EmploymentType),
		job.SalaryRange,
		job.Requirements,
		job.Responsibilities,
		job.Deadline,
		job.IsActive,
		job.CreatedBy,
	)
	return err
}

func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
  title = $3,
  description = $4,
  location = $5,
  employment_type = $6,
  salary_range = $7,
  requirements = $8,
  responsibilities = $9,
  deadline = $10,
  is_active = $11,
  updated_at = now()
WHERE id = $1 AND created_by = $2`
	res, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.CreatedBy,
		job.Title,
		job.Description,
		job.Location,
		string(job.EmploymentType),
		job.SalaryRange,
		job.Requirements,
		job.Responsibilities,
		job.Deadline,
		job.IsActive,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, jobID, ownerID string) error {
	const query = `DELETE FROM jobs WHERE id = $1 AND created_by = $2`
	res, err := r.DB.ExecContext(ctx, query, jobID, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	row := r.DB.QueryRowContext(ctx, selectJob+"\nWHERE id = $1\nLIMIT 1", jobID)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return job, nil
}

func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Job, error) {
	var where []string
	var args []any
	if filter.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if filter.OwnerID != "" {
		args = append(args, filter.OwnerID)
		where = append(where, "created_by = $"+strconv.Itoa(len(args)))
	}
	query := selectJob
	if len(where) > 0 {
		query += "\nWHERE " + strings.Join(where, " AND ")
	}
	query += "\nORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var employmentType string
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Location,
		&employmentType,
		&job.SalaryRange,
		&job.Requirements,
		&job.Responsibilities,
		&job.Deadline,
		&job.IsActive,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return Job{}, err
	}
	job.EmploymentType = EmploymentType(employmentType)
	job.Deadline = job.Deadline.UTC()
	return job, nil
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
