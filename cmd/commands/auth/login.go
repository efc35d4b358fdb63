package auth

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/config"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the CardDAV password in the keychain",
		Long: `Store the CardDAV password for the configured user in the local keychain.

If --username is given and no user name is configured yet, it is saved to
the config as well.

Examples:
  pbsync auth login
  pbsync auth login --username alice
  echo "$APP_PASSWORD" | pbsync auth login`,
		Args:         cobra.NoArgs,
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("username", "", "CardDAV user name (defaults to the configured one)")
	cmd.Flags().StringP("password", "p", "", "Password (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(cmd)
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	password = strings.TrimSpace(password)
	if password == "" {
		password, err = readPassword(cmd)
		if err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	store := cmdutil.StoreFactory()
	if err := store.SetPassword(username, password); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	if err := rememberUsername(username); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved password for %s\n", username)
	return nil
}

// readPassword prompts without echo on a terminal and reads one line from
// stdin otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	if cmdutil.IsTerminal(os.Stdin) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter password: ")
		bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(bytes)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

func rememberUsername(username string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Username != "" {
		return nil
	}
	cfg.Username = username
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
