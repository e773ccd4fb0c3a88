package cli

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var in service.ClientInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Name == "" && app.Interactive {
				if err := wizardNewClient(&in).Run(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("rate") {
				in.HasFee = true
			}

			id := identityFrom(cmd)
			if app.Interactive {
				if existing, err := app.Clients.FindByName(cmd.Context(), id.UserID, in.Name); err == nil {
					if !confirm(cmd, fmt.Sprintf("A client named %s already exists. Add another?", existing.Name)) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
				}
			}
			c, err := app.Clients.Create(cmd.Context(), id.UserID, in)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Client %s added (%s budget) %s",
				c.Name, formatter.FormatHours(c.AvailableHours), formatter.TruncID(c.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Client name")
	cmd.Flags().StringVar(&in.AvailableHours, "hours", "", "Available hours budget")
	cmd.Flags().StringVar(&in.Info, "info", "", "Free-form notes")
	cmd.Flags().StringVar(&in.Category, "category", "", "Grouping label, e.g. retainer")
	cmd.Flags().BoolVar(&in.HasFee, "fee", false, "Client is billed")
	cmd.Flags().StringVar(&in.HourlyRate, "rate", "", "Hourly rate (implies --fee)")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients in the order they were added",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(cmd.Context(), identityFrom(cmd).UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClientList(clients))
			return nil
		},
	}
}
