package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, sign in and out",
	}

	cmd.AddCommand(
		newAuthSignUpCmd(app),
		newAuthSignInCmd(app),
		newAuthSignOutCmd(app),
		newAuthWhoAmICmd(app),
	)

	return cmd
}

type credentialFunc func(ctx context.Context, email, password string) (string, error)

func newCredentialCmd(app *App, use, short, formTitle, done string, run credentialFunc) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Annotations: map[string]string{skipAuthAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if (email == "" || password == "") && app.Interactive {
				if err := wizardCredentials(formTitle, &email, &password).Run(); err != nil {
					return err
				}
			}
			if _, err := run(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(done, email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when interactive)")

	return cmd
}

func newAuthSignUpCmd(app *App) *cobra.Command {
	return newCredentialCmd(app, "signup", "Create an account and sign in", "Create account",
		"Account created; signed in as %s",
		func(ctx context.Context, email, password string) (string, error) {
			return app.Auth.SignUp(ctx, email, password)
		})
}

func newAuthSignInCmd(app *App) *cobra.Command {
	return newCredentialCmd(app, "signin", "Sign in to an existing account", "Sign in",
		"Signed in as %s",
		func(ctx context.Context, email, password string) (string, error) {
			return app.Auth.SignIn(ctx, email, password)
		})
}

func newAuthSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "signout",
		Short:       "Sign out on this machine",
		Annotations: map[string]string{skipAuthAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Signed out"))
			return nil
		},
	}
}

func newAuthWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in account",
		Annotations: map[string]string{skipAuthAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			if id == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Not signed in."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", id.Email, formatter.TruncID(id.UserID))
			return nil
		},
	}
}
