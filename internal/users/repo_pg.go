package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_staff, created_at, updated_at`

// Create inserts a new account. A username collision maps to ErrExists.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, email, first_name, last_name, password_hash, is_staff, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		nullableString(user.FirstName),
		nullableString(user.LastName),
		user.PasswordHash,
		user.IsStaff,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrExists
		}
		return err
	}
	return nil
}

// GetByID returns an account by id.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByUsername returns an account by username.
func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, username))
}

// Update rewrites mutable profile fields and refreshes updated_at.
func (r *PGRepo) Update(ctx context.Context, user User) (User, error) {
	const query = `
UPDATE users
SET email = $2, first_name = $3, last_name = $4, updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FirstName),
		nullableString(user.LastName),
	))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var firstName sql.NullString
	var lastName sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&firstName,
		&lastName,
		&user.PasswordHash,
		&user.IsStaff,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if firstName.Valid {
		user.FirstName = firstName.String
	}
	if lastName.Valid {
		user.LastName = lastName.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
