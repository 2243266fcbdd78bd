package leads

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in dev and tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	leads  map[int64]Lead
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{leads: make(map[int64]Lead)}
}

func (r *MemoryRepo) Create(ctx context.Context, lead Lead) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	lead.ID = r.nextID
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	lead.UpdatedAt = lead.CreatedAt
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.leads[id]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return lead, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id int64, status string) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return Lead{}, ErrNotFound
	}
	lead.Status = status
	lead.UpdatedAt = time.Now().UTC()
	r.leads[id] = lead
	return lead, nil
}
