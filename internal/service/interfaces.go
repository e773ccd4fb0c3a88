package service

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/hours"
)

// ClientInput is the raw new-client form. Hour and rate fields arrive as
// typed text; absent or unparseable values default to 0.
type ClientInput struct {
	Name           string
	AvailableHours string
	Info           string
	Category       string
	HasFee         bool
	HourlyRate     string
}

type ClientService interface {
	// Create validates and stores a client, then refreshes the owner's
	// cached client list from the store.
	Create(ctx context.Context, ownerID string, in ClientInput) (*domain.Client, error)
	// List returns the owner's clients in creation order.
	List(ctx context.Context, ownerID string) ([]*domain.Client, error)
	// Cached returns the list from the most recent refresh, or nil if the
	// owner's clients have not been loaded yet.
	Cached(ownerID string) []*domain.Client
	GetByID(ctx context.Context, ownerID, id string) (*domain.Client, error)
	FindByName(ctx context.Context, ownerID, name string) (*domain.Client, error)
}

type SessionService interface {
	// Log resolves the session's client reference against the owner's
	// registry and stores the session.
	Log(ctx context.Context, s *domain.Session) error
	List(ctx context.Context, ownerID string) ([]*domain.Session, error)
	// ListProjects returns project names previously logged for a client,
	// most recent first.
	ListProjects(ctx context.Context, ownerID, clientID string) ([]string, error)
}

type SummaryService interface {
	Summary(ctx context.Context, ownerID string) ([]hours.ClientSummary, error)
}
