package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type clientService struct {
	clients  repository.ClientRepo
	uow      db.UnitOfWork
	observer UseCaseObserver

	mu    sync.RWMutex
	cache map[string][]*domain.Client
}

func NewClientService(clients repository.ClientRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ClientService {
	return &clientService{
		clients:  clients,
		uow:      uow,
		observer: combineObservers(observers),
		cache:    make(map[string][]*domain.Client),
	}
}

func (s *clientService) Create(ctx context.Context, ownerID string, in ClientInput) (c *domain.Client, err error) {
	var fields map[string]any
	done := track(ctx, s.observer, "client.create")
	defer func() { done(err, fields) }()

	c = &domain.Client{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(in.Name),
		AvailableHours: parseOrZero(in.AvailableHours),
		Info:           strings.TrimSpace(in.Info),
		Category:       strings.TrimSpace(in.Category),
		HasFee:         in.HasFee,
		HourlyRate:     parseOrZero(in.HourlyRate),
		CreatedAt:      time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteClientRepo(tx).Create(ctx, c)
	})
	if err != nil {
		return nil, domain.WrapStore("create client", err)
	}

	// The client is stored either way; a failed refresh leaves the cache
	// stale until the next List.
	if _, rerr := s.refresh(ctx, ownerID); rerr != nil {
		fields = map[string]any{"refresh_failed": true, "refresh_error": rerr.Error()}
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	return s.refresh(ctx, ownerID)
}

func (s *clientService) Cached(ownerID string) []*domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[ownerID]
}

func (s *clientService) GetByID(ctx context.Context, ownerID, id string) (*domain.Client, error) {
	c, err := s.clients.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, domain.WrapStore("get client", err)
	}
	return c, nil
}

// FindByName matches case-insensitively after trimming. When names collide
// the earliest-created client wins.
func (s *clientService) FindByName(ctx context.Context, ownerID, name string) (*domain.Client, error) {
	clients, err := s.refresh(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for _, c := range clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("client %q: %w", name, repository.ErrNotFound)
}

func (s *clientService) refresh(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	clients, err := s.clients.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.WrapStore("list clients", err)
	}
	s.mu.Lock()
	s.cache[ownerID] = clients
	s.mu.Unlock()
	return clients, nil
}

func parseOrZero(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
