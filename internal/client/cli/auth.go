package cli

import (
	"fmt"

	"github.com/dmitrijs2005/taskio/internal/client/session"
	"github.com/dmitrijs2005/taskio/internal/common"
	"github.com/spf13/cobra"
)

// getPassword is swapped in tests.
var getPassword = GetPassword

func (a *App) signupCommand() *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := a.valueOrPrompt(username, "Username")
			if err != nil {
				return err
			}
			addr, err := a.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			id, err := a.client.Signup(ctx, name, addr, string(password))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s Registered %s (%s). Now run `taskio login`.\n", okMark, name, id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := getPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			resp, err := a.client.Login(ctx, addr, string(password))
			if err != nil {
				return err
			}

			sess := &session.Session{
				UserID:       resp.UserID,
				Email:        addr,
				AccessToken:  resp.AccessToken,
				RefreshToken: resp.RefreshToken,
			}
			if err := a.store.Save(sess); err != nil {
				return fmt.Errorf("save session: %w", err)
			}
			a.session = sess
			fmt.Fprintf(a.out, "%s Logged in as %s\n", okMark, addr)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.session = nil
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			p, err := a.client.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s <%s>\n%s\n", p.Username, p.Email, dimStyle.Render(p.UserID))
			return nil
		},
	}
}
