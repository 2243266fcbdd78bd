package leads

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "lead not found" }

// Repo is the persistence contract for leads. List returns newest-first.
type Repo interface {
	Create(ctx context.Context, lead Lead) (Lead, error)
	GetByID(ctx context.Context, id int64) (Lead, error)
	List(ctx context.Context) ([]Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (Lead, error)
}
