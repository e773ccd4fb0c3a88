package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/dashboard"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errTimerNeedsTerminal = errors.New("the timer needs an interactive terminal; use 'tempo session log' instead")

func newTimerCmd(app *App) *cobra.Command {
	var clientName, projectName string

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Time a session live and log it on finish",
		Long:  "Starts a live timer for a client and project. Keys: s start, p pause, f finish and log, q quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return errTimerNeedsTerminal
			}
			ctx := cmd.Context()
			owner := identityFrom(cmd).UserID

			clients, err := app.Clients.List(ctx, owner)
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				return domain.NewValidationError("client", "none registered; add one with 'tempo client add'")
			}
			if clientName == "" || projectName == "" {
				if err := wizardTimerTarget(clients, knownProjects(ctx, app, owner, clients), &clientName, &projectName).Run(); err != nil {
					return err
				}
			}
			c, err := resolveClient(ctx, app, owner, clientName)
			if err != nil {
				return err
			}

			coord := dashboard.NewCoordinator(owner, app.Clients, app.Sessions, app.clock())
			defer coord.Close()
			if err := coord.Load(ctx); err != nil {
				return err
			}
			msg, err := coord.Dispatch(ctx, dashboard.Command{Kind: dashboard.SelectTarget, ClientRef: c.ID, ProjectName: projectName})
			if err != nil {
				return err
			}
			if msg.Failure {
				return errors.New(msg.Text)
			}

			model := newTimerModel(ctx, coord, app.tickInterval(), c.ID, c.Name, projectName)
			if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
				return err
			}

			if snap := coord.Snapshot(); snap.TimerState == timer.Running || snap.TimerState == timer.Paused {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Discarded %s of unfinished time.", formatter.FormatClock(snap.Elapsed))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientName, "client", "", "Client name or id")
	cmd.Flags().StringVar(&projectName, "project", "", "Project name")

	return cmd
}
