package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/auth"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/timer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ErrNotSignedIn is returned by commands that need an identity when nobody
// is signed in on this machine.
var ErrNotSignedIn = errors.New("not signed in; run 'tempo auth signin' first")

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth     auth.Provider
	Clients  service.ClientService
	Sessions service.SessionService
	Summary  service.SummaryService

	Clock        timer.Clock
	TickInterval time.Duration
	ListenAddr   string
	// Metrics is exposed on /metrics by 'tempo serve'. Nil disables it.
	Metrics prometheus.Gatherer

	// Interactive reports whether stdin is a terminal; forms and the timer
	// TUI are only offered when it is true.
	Interactive bool
}

// skipAuthAnnotation marks commands that run without a signed-in identity.
const skipAuthAnnotation = "tempo/skip-auth"

type identityKey struct{}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Track billable hours against client budgets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAuthAnnotation] == "true" || !cmd.Runnable() {
				return nil
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			id, err := app.Auth.Current(ctx)
			if err != nil {
				return err
			}
			if id == nil {
				return ErrNotSignedIn
			}
			cmd.SetContext(context.WithValue(ctx, identityKey{}, id))
			return nil
		},
	}

	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.AddCommand(
		newAuthCmd(app),
		newClientCmd(app),
		newSessionCmd(app),
		newTimerCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
	)

	return root
}

// normalizeFlagName makes flag names case-insensitive and treats '_' as '-'.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(strings.ToLower(name), "_", "-"))
}

// identityFrom returns the identity attached by the root pre-run hook.
func identityFrom(cmd *cobra.Command) *domain.Identity {
	id, _ := cmd.Context().Value(identityKey{}).(*domain.Identity)
	return id
}

func (a *App) clock() timer.Clock {
	if a.Clock == nil {
		return timer.SystemClock{}
	}
	return a.Clock
}

func (a *App) tickInterval() time.Duration {
	if a.TickInterval <= 0 {
		return time.Second
	}
	return a.TickInterval
}
