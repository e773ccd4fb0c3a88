package cli

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show consumed and remaining hours per client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := identityFrom(cmd)

			coord := dashboard.NewCoordinator(id.UserID, app.Clients, app.Sessions, app.clock())
			defer coord.Close()

			stop := func() {}
			if app.Interactive {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading clients and sessions")
			}
			err := coord.Load(ctx)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Dashboard")+"  "+formatter.Dim(id.Email))
			fmt.Fprint(out, formatter.FormatDashboard(coord.Snapshot().Summary))
			return nil
		},
	}
}
