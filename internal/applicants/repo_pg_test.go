package applicants

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPGRepoCreateMapsConstraints(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{constraintJobEmail, ErrDuplicateEmail},
		{constraintJobPhone, ErrDuplicatePhone},
	}
	for _, tc := range cases {
		t.Run(tc.constraint, func(t *testing.T) {
			sqlDB, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer sqlDB.Close()

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applicants")).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			repo := &PGRepo{DB: sqlDB}
			err = repo.Create(context.Background(), Applicant{ID: "a-1", JobID: "j-1", Email: "alice@example.com", Phone: "555-0101"})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPGRepoListBuildsFilter(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	now := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "job_id", "first_name", "last_name", "email", "phone", "linkedin", "resume_key", "cover_letter", "status", "applied_at", "updated_at"}).
		AddRow("a-1", "j-2", "Bob", "Williams", "bob@example.com", "555-0102", nil, "h/x_bob.pdf", "", "interview", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE job_id IN ($1, $2) AND status = $3\nORDER BY applied_at DESC\nLIMIT $4")).
		WithArgs("j-1", "j-2", "interview", 10).
		WillReturnRows(rows)

	repo := &PGRepo{DB: sqlDB}
	list, err := repo.List(context.Background(), Filter{JobIDs: []string{"j-1", "j-2"}, Status: StatusInterview, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Status != StatusInterview || list[0].LinkedIn != "" {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListWithoutJobsSkipsQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	repo := &PGRepo{DB: sqlDB}
	list, err := repo.List(context.Background(), Filter{})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", list, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoCountByJob(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE job_id IN ($1, $2) GROUP BY job_id")).
		WithArgs("j-1", "j-2").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "count"}).AddRow("j-1", 3))

	repo := &PGRepo{DB: sqlDB}
	counts, err := repo.CountByJob(context.Background(), []string{"j-1", "j-2"})
	if err != nil {
		t.Fatalf("CountByJob: %v", err)
	}
	if counts["j-1"] != 3 || counts["j-2"] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestPGRepoExistsByPhone(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE job_id = $1 AND phone = $2")).
		WithArgs("j-1", "555-0101").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := &PGRepo{DB: sqlDB}
	found, err := repo.ExistsByPhone(context.Background(), "j-1", "555-0101")
	if err != nil || !found {
		t.Fatalf("expected found, got %v err=%v", found, err)
	}
}

func TestPGRepoDeleteByJob(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM applicants WHERE job_id = $1")).
		WithArgs("j-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: sqlDB}
	n, err := repo.DeleteByJob(context.Background(), "j-1")
	if err != nil || n != 0 {
		t.Fatalf("DeleteByJob = %d, %v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
