package cli

import (
	"context"
	"errors"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
)

// resolveClient resolves a --client value which can be:
//   - A client id (matched exactly)
//   - A client name (matched case-insensitively, earliest wins)
func resolveClient(ctx context.Context, app *App, ownerID, input string) (*domain.Client, error) {
	if input == "" {
		return nil, domain.NewValidationError("client", "is required")
	}
	c, err := app.Clients.GetByID(ctx, ownerID, input)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return app.Clients.FindByName(ctx, ownerID, input)
}
