package users

import "context"

var (
	ErrNotFound = errNotFound{}
	ErrExists   = errExists{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type errExists struct{}

func (errExists) Error() string { return "username already taken" }

// Repo is the persistence contract for accounts.
type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, user User) (User, error)
}
