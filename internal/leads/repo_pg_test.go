package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func leadRows(lead Lead) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email",
		"resume_key", "resume_name", "resume_size", "resume_mime",
		"status", "created_at", "updated_at",
	}).AddRow(
		lead.ID, lead.FirstName, lead.LastName, lead.Email,
		lead.ResumeKey, lead.ResumeName, lead.ResumeSize, lead.ResumeMime,
		lead.Status, lead.CreatedAt, lead.UpdatedAt,
	)
}

func TestPGRepoCreateReturnsAssignedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC().Truncate(time.Microsecond)
	lead := Lead{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		ResumeKey:  "resumes/abc123_resume.pdf",
		ResumeName: "resume.pdf",
		ResumeSize: 1024,
		ResumeMime: "application/pdf",
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	stored := lead
	stored.ID = 7

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(
			lead.FirstName,
			lead.LastName,
			lead.Email,
			lead.ResumeKey,
			lead.ResumeName,
			lead.ResumeSize,
			lead.ResumeMime,
			lead.Status,
			lead.CreatedAt,
		).
		WillReturnRows(leadRows(stored))

	created, err := repo.Create(context.Background(), lead)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected id 7, got %d", created.ID)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected status %s, got %s", StatusPending, created.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListOrdersNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	rows := leadRows(Lead{ID: 2, Status: StatusPending, CreatedAt: now, UpdatedAt: now}).
		AddRow(int64(1), "", "", "", "", "", int64(0), "", StatusReachedOut, now.Add(-time.Hour), now)

	mock.ExpectQuery("ORDER BY created_at DESC, id DESC").WillReturnRows(rows)

	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != 2 || listed[1].ID != 1 {
		t.Fatalf("unexpected result: %+v", listed)
	}
}

func TestPGRepoUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	mock.ExpectQuery("UPDATE leads").
		WithArgs(int64(3), StatusReachedOut).
		WillReturnRows(leadRows(Lead{ID: 3, Status: StatusReachedOut, CreatedAt: now.Add(-time.Hour), UpdatedAt: now}))

	updated, err := repo.UpdateStatus(context.Background(), 3, StatusReachedOut)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusReachedOut {
		t.Fatalf("expected status %s, got %s", StatusReachedOut, updated.Status)
	}

	mock.ExpectQuery("UPDATE leads").
		WithArgs(int64(99), StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.UpdateStatus(context.Background(), 99, StatusPending); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
