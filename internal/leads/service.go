package leads

import (
	"context"
	"io"
	"time"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/metrics"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/storage/object"
)

const resumeNamespace = "resumes"

// Notifier receives persisted leads for best-effort notification. It must
// never fail the caller; delivery outcomes stay inside the implementation.
type Notifier interface {
	LeadCreated(ctx context.Context, lead Lead)
}

// Service contains business logic for leads.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	Notifier Notifier
}

// CreateInput carries validated submission fields.
type CreateInput struct {
	FirstName string
	LastName  string
	Email     string
}

// Create stores the resume, persists the lead, then fires notifications.
// The lead is durable before any notification attempt; notification
// outcomes never affect the returned lead or error.
func (s *Service) Create(ctx context.Context, in CreateInput, resumeName string, resume io.Reader) (Lead, error) {
	storageKey, size, mimeType, err := s.Store.Save(ctx, resumeNamespace, resumeName, resume)
	if err != nil {
		return Lead{}, err
	}

	now := time.Now().UTC()
	lead := Lead{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		ResumeKey:  storageKey,
		ResumeName: resumeName,
		ResumeSize: size,
		ResumeMime: mimeType,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.Repo.Create(ctx, lead)
	if err != nil {
		return Lead{}, err
	}
	metrics.IncLeadCreated()

	if s.Notifier != nil {
		s.Notifier.LeadCreated(ctx, created)
	}

	return created, nil
}

// Get returns one lead by id.
func (s *Service) Get(ctx context.Context, id int64) (Lead, error) {
	return s.Repo.GetByID(ctx, id)
}

// List returns all leads newest-first.
func (s *Service) List(ctx context.Context) ([]Lead, error) {
	return s.Repo.List(ctx)
}

// UpdateStatus persists a new status and returns the refreshed lead.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Lead, error) {
	lead, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return Lead{}, err
	}
	metrics.IncLeadStatusUpdate()
	return lead, nil
}
