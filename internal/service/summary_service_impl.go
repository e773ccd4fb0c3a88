package service

import (
	"context"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/hours"
	"github.com/alexanderramin/tempo/internal/repository"
)

type summaryService struct {
	clients  repository.ClientRepo
	sessions repository.SessionRepo
	observer UseCaseObserver
}

func NewSummaryService(clients repository.ClientRepo, sessions repository.SessionRepo, observers ...UseCaseObserver) SummaryService {
	return &summaryService{clients: clients, sessions: sessions, observer: combineObservers(observers)}
}

// Summary recomputes every client's consumed and remaining hours from the
// full session list. Nothing is cached between calls.
func (s *summaryService) Summary(ctx context.Context, ownerID string) (rows []hours.ClientSummary, err error) {
	done := track(ctx, s.observer, "summary.load")
	defer func() { done(err, map[string]any{"clients": len(rows), "low": hours.LowCount(rows)}) }()

	clients, err := s.clients.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.WrapStore("list clients", err)
	}
	sessions, err := s.sessions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.WrapStore("list sessions", err)
	}
	return hours.Summarize(clients, sessions), nil
}
