package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Mareenraj/ATS/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const selectUser = `
SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
FROM users`

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, first_name, last_name, password_hash, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		nullableString(user.FirstName),
		nullableString(user.LastName),
		nullableString(user.PasswordHash),
	)
	if _, ok := db.UniqueViolation(err); ok {
		return ErrConflict
	}
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE id = $1\nLIMIT 1", userID)
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE username = $1\nLIMIT 1", username)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, selectUser+"\nWHERE lower(email) = lower($1)\nLIMIT 1", email)
}

func (r *PGRepo) getOne(ctx context.Context, query string, arg string) (User, error) {
	var user User
	var firstName sql.NullString
	var lastName sql.NullString
	var passwordHash sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&firstName,
		&lastName,
		&passwordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.PasswordHash = passwordHash.String
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
