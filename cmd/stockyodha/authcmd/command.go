// Package authcmd implements the session commands: login, logout, whoami and
// register.
package authcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockyodha/terminal/internal/api"
	"github.com/stockyodha/terminal/internal/business"
	"github.com/stockyodha/terminal/internal/cmdutils"
	"github.com/stockyodha/terminal/internal/config"
)

type sessionResult struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// readPassword reads one line from the command's stdin, prompting on stderr
// so that the prompt never pollutes rendered output.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return "", errors.New("no password given")
	}

	return strings.TrimSpace(scanner.Text()), nil
}

func LoginCmd(buildInfo string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in to the platform",
		Long:  "Log in exchanges the credentials for a token pair and persists it in the vault.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, false, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				pw := password
				if pw == "" {
					var err error

					pw, err = readPassword(cmd, "Password: ")
					if err != nil {
						return err
					}
				}

				if err := rt.Client.Login(ctx, args[0], pw); err != nil {
					return err
				}

				rt.Store.WaitProfile()

				result := sessionResult{Authenticated: rt.Store.IsAuthenticated()}
				if user := rt.Store.User(); user != nil {
					result.Username = user.Username
				}

				return cmdutils.Render(cmd, result)
			})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

func LogoutCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Long:  "Logout invalidates the refresh token server-side (best effort) and always clears the local session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, false, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				rt.Store.Logout(ctx)

				return cmdutils.Render(cmd, sessionResult{Authenticated: false})
			})
		},
	}
}

func WhoamiCmd(buildInfo string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, true, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				rt.Store.WaitProfile()

				user := rt.Store.User()
				if user == nil {
					if err := rt.Store.FetchUser(ctx); err != nil {
						return err
					}

					user = rt.Store.User()
				}

				return cmdutils.Render(cmd, user)
			})
		},
	}
}

func RegisterCmd(buildInfo string) *cobra.Command {
	var (
		email     string
		password  string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new platform account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutils.RunTerminal(cmd, buildInfo, false, func(ctx context.Context, rt *business.Runtime, _ *config.Config) error {
				pw := password
				if pw == "" {
					var err error

					pw, err = readPassword(cmd, "Password: ")
					if err != nil {
						return err
					}
				}

				create := api.UserCreate{
					Username: args[0],
					Email:    email,
					Password: pw,
				}
				if firstName != "" {
					create.FirstName = &firstName
				}
				if lastName != "" {
					create.LastName = &lastName
				}

				user, err := rt.Client.Register(ctx, create)
				if err != nil {
					return err
				}

				return cmdutils.Render(cmd, user)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
