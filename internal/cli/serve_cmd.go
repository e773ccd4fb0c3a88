package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/tempo/internal/api"
	"github.com/alexanderramin/tempo/internal/auth"
	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Serve the dashboard as JSON on localhost, with /metrics",
		Annotations: map[string]string{skipAuthAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.ListenAddr
			}
			srv := api.NewServer(api.Deps{
				Auth:     app.Auth,
				Clients:  app.Clients,
				Sessions: app.Sessions,
				Summary:  app.Summary,
				Metrics:  app.Metrics,
			})
			httpSrv := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			unsubscribe := logSessionChanges(ctx, app.Auth, logger)
			defer unsubscribe()

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpSrv.ListenAndServe()
			}()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Serving on http://"+addr))

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// logSessionChanges logs the current sign-in state and every later change
// until the returned func is called.
func logSessionChanges(ctx context.Context, provider auth.Provider, logger *slog.Logger) (unsubscribe func()) {
	return provider.ObserveSession(ctx, func(id *domain.Identity) {
		if id == nil {
			logger.InfoContext(ctx, "auth_session", slog.Bool("signed_in", false))
			return
		}
		logger.InfoContext(ctx, "auth_session",
			slog.Bool("signed_in", true),
			slog.String("user_id", id.UserID),
			slog.String("email", id.Email),
		)
	})
}
