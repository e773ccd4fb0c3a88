package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/record"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "Log and list work sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionProjectsCmd(app),
	)

	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var in record.ManualInput

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log hours manually",
		Long:  "Log hours for a client and project. Missing fields are prompted for when running in a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := identityFrom(cmd).UserID

			if (in.ClientName == "" || in.ProjectName == "" || in.Hours == "") && app.Interactive {
				clients, err := app.Clients.List(ctx, owner)
				if err != nil {
					return err
				}
				if len(clients) == 0 {
					return domain.NewValidationError("client", "none registered; add one with 'tempo client add'")
				}
				if err := wizardLogSession(clients, knownProjects(ctx, app, owner, clients), &in, app.clock().Now()).Run(); err != nil {
					return err
				}
			}
			if in.Date == "" {
				in.Date = app.clock().Now().Format(domain.DateLayout)
			}

			s, err := record.FromManual(in, owner)
			if err != nil {
				return err
			}
			if err := app.Sessions.Log(ctx, s); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Logged %s for %s / %s on %s",
				formatter.FormatHours(s.Hours), s.ClientName, s.ProjectName, s.DateString())))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ClientName, "client", "", "Client name")
	cmd.Flags().StringVar(&in.ProjectName, "project", "", "Project name")
	cmd.Flags().StringVar(&in.Date, "date", "", "Date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&in.Hours, "hours", "", "Hours worked, e.g. 1.5")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List logged sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.List(cmd.Context(), identityFrom(cmd).UserID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(sessions, app.clock().Now()))
			return nil
		},
	}
}

func newSessionProjectsCmd(app *App) *cobra.Command {
	var clientName string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects previously logged for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner := identityFrom(cmd).UserID
			c, err := resolveClient(ctx, app, owner, clientName)
			if err != nil {
				return err
			}
			projects, err := app.Sessions.ListProjects(ctx, owner, c.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, formatter.Dim("No projects logged for "+c.Name+"."))
				return nil
			}
			for _, p := range projects {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientName, "client", "", "Client name or id")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

// knownProjects collects prior project names across clients for form
// suggestions. Lookup failures only cost suggestions.
func knownProjects(ctx context.Context, app *App, owner string, clients []*domain.Client) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range clients {
		projects, err := app.Sessions.ListProjects(ctx, owner, c.ID)
		if err != nil {
			continue
		}
		for _, p := range projects {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
