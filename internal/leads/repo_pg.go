package leads

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const leadColumns = `id, first_name, last_name, email, resume_key, resume_name, resume_size, resume_mime, status, created_at, updated_at`

// Create inserts a new lead and returns it with its assigned id.
func (r *PGRepo) Create(ctx context.Context, lead Lead) (Lead, error) {
	const query = `
INSERT INTO leads (first_name, last_name, email, resume_key, resume_name, resume_size, resume_mime, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
RETURNING ` + leadColumns

	row := r.DB.QueryRowContext(ctx, query,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.ResumeKey,
		lead.ResumeName,
		lead.ResumeSize,
		nullableString(lead.ResumeMime),
		lead.Status,
		lead.CreatedAt,
	)
	return scanLead(row)
}

// GetByID returns a single lead by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Lead, error) {
	const query = `
SELECT ` + leadColumns + `
FROM leads
WHERE id = $1
LIMIT 1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

// List returns all leads ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Lead, error) {
	const query = `
SELECT ` + leadColumns + `
FROM leads
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status and refreshes updated_at.
func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status string) (Lead, error) {
	const query = `
UPDATE leads
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + leadColumns

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	var resumeMime sql.NullString
	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.ResumeKey,
		&lead.ResumeName,
		&lead.ResumeSize,
		&resumeMime,
		&lead.Status,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return Lead{}, err
	}
	if resumeMime.Valid {
		lead.ResumeMime = resumeMime.String
	}
	return lead, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
