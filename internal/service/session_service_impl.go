package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SessionService {
	return &sessionService{sessions: sessions, uow: uow, observer: combineObservers(observers)}
}

func (s *sessionService) Log(ctx context.Context, session *domain.Session) (err error) {
	done := track(ctx, s.observer, "session.log")
	defer func() {
		var fields map[string]any
		if session != nil {
			fields = map[string]any{"source": string(session.Source), "hours": session.Hours}
		}
		done(err, fields)
	}()

	if session == nil {
		return domain.NewValidationError("session", "is required")
	}
	if session.Source == "" {
		session.Source = domain.SourceManual
	}
	if err := session.Validate(); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txClients := repository.NewSQLiteClientRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		c, err := resolveClient(ctx, txClients, session)
		if err != nil {
			return err
		}
		session.ClientID = c.ID
		session.ClientName = c.Name

		if session.ID == "" {
			session.ID = uuid.New().String()
		}
		session.CreatedAt = time.Now().UTC()
		return txSessions.Create(ctx, session)
	})
	return domain.WrapStore("log session", err)
}

// resolveClient finds the session's client within the owner's registry. An
// id is authoritative: one that does not resolve is rejected rather than
// retried as a name. Without an id the display name is matched
// case-insensitively, earliest client first.
func resolveClient(ctx context.Context, clients repository.ClientRepo, session *domain.Session) (*domain.Client, error) {
	if id := strings.TrimSpace(session.ClientID); id != "" {
		c, err := clients.GetByID(ctx, session.OwnerID, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewValidationError("client", fmt.Sprintf("id %q is not registered", id))
		}
		return c, err
	}

	name := strings.TrimSpace(session.ClientName)
	all, err := clients.ListByOwner(ctx, session.OwnerID)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, domain.NewValidationError("client", fmt.Sprintf("%q is not registered", name))
}

func (s *sessionService) List(ctx context.Context, ownerID string) ([]*domain.Session, error) {
	sessions, err := s.sessions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.WrapStore("list sessions", err)
	}
	return sessions, nil
}

func (s *sessionService) ListProjects(ctx context.Context, ownerID, clientID string) ([]string, error) {
	projects, err := s.sessions.ListProjectsByClient(ctx, ownerID, clientID)
	if err != nil {
		return nil, domain.WrapStore("list projects", err)
	}
	return projects, nil
}
