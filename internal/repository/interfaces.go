package repository

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = domain.ErrNotFound

// ClientRepo is the clients collection of the document store.
type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Client, error)
	// ListByOwner returns the owner's clients in creation order. It never
	// returns nil; no matches yield an empty slice.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Client, error)
}

// SessionRepo is the sessions collection of the document store.
type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	// ListByOwner returns the owner's sessions ordered by date, then
	// creation. It never returns nil.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Session, error)
	ListProjectsByClient(ctx context.Context, ownerID, clientID string) ([]string, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AuthSessionRepo persists which user is signed in on this machine.
type AuthSessionRepo interface {
	Get(ctx context.Context) (userID string, err error)
	Put(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}
