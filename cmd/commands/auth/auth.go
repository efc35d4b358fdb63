package auth

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/pbsync/internal/config"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the CardDAV password",
		Long: `Manage the CardDAV password.

The password (usually a Nextcloud app password) is kept in the OS keychain
under the configured user name, never in the config file.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

// resolveUsername returns the --username flag or the stored username.
func resolveUsername(cmd *cobra.Command) (string, error) {
	username, _ := cmd.Flags().GetString("username")
	if username = strings.TrimSpace(username); username != "" {
		return username, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if username = strings.TrimSpace(cfg.Username); username == "" {
		return "", errors.New("username is required: pass --username or run 'pbsync config set username <name>'")
	}
	return username, nil
}
