package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := getSimpleText(app.reader, "Enter name", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			email, err := getSimpleText(app.reader, "Enter email", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			password, err := getPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			sess, err := app.auth.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and signed in as %s\n", sess.Name)
			return nil
		},
	}
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := getSimpleText(app.reader, "Enter email", cmd.OutOrStdout())
			if err != nil {
				return err
			}
			password, err := getPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			sess, err := app.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", sess.Name)
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and revoke the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			if err := app.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.restoreSession(cmd.Context()); err != nil {
				return fmt.Errorf("not signed in")
			}
			user, err := app.auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show connectivity and session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := "offline"
			if err := app.syncer.Ping(cmd.Context()); err == nil {
				mode = "online"
			}

			signedIn := "not signed in"
			if app.auth.LoggedIn(cmd.Context()) {
				signedIn = "signed in"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s, %s\n", mode, signedIn)
			return nil
		},
	}
}
