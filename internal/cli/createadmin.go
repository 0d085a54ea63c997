package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quizhall/quizhall/internal/config"
	"github.com/quizhall/quizhall/internal/model"
)

func newCreateAdminCmd() *cobra.Command {
	var (
		username  string
		email     string
		password  string
		staffNote string
	)

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an admin account",
		Long: `create-admin creates an admin-capable account in the configured
storage backend. The account also receives a player profile, so it can
take the quiz as well as manage questions.

If --password is not given, it is read from the terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath())
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			return createAdmin(cmd, cfg, username, email, password, staffNote)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().StringVar(&staffNote, "note", "", "Free-text staff note")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func createAdmin(cmd *cobra.Command, cfg *config.Config, username, email, password, staffNote string) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	identity, err := app.AuthService.ProvisionAdmin(cmd.Context(), username, email, password, staffNote)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (id %s)\n", identity.Username, identity.ID)
	return nil
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
