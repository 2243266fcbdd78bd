package leads

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoAssignsSequentialIDs(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, Lead{FirstName: "Jane", Status: StatusPending})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := repo.Create(ctx, Lead{FirstName: "John", Status: StatusPending})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, offset := range []time.Duration{-2 * time.Hour, 0, -time.Hour} {
		_, err := repo.Create(ctx, Lead{
			Email:     []string{"a@example.com", "b@example.com", "c@example.com"}[i],
			Status:    StatusPending,
			CreatedAt: base.Add(offset),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	listed, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := []string{listed[0].Email, listed[1].Email, listed[2].Email}
	want := []string{"b@example.com", "c@example.com", "a@example.com"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func TestMemoryRepoUpdateStatus(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, Lead{Status: StatusPending, CreatedAt: time.Now().UTC().Add(-time.Minute)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.UpdateStatus(ctx, created.ID, StatusReachedOut)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusReachedOut {
		t.Fatalf("expected status %s, got %s", StatusReachedOut, updated.Status)
	}
	if !updated.UpdatedAt.After(created.CreatedAt) {
		t.Fatalf("expected updated_at to move forward")
	}

	if _, err := repo.UpdateStatus(ctx, 99, StatusPending); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
