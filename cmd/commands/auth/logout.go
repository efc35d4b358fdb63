package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored CardDAV password",
		Long: `Remove the CardDAV password of the configured user from the keychain.

Example:
  pbsync auth logout`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := resolveUsername(cmd)
			if err != nil {
				return err
			}

			err = cmdutil.StoreFactory().DeletePassword(username)
			if errors.Is(err, auth.ErrPasswordNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No password stored for %s\n", username)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to remove password: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed password for %s\n", username)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("username", "", "CardDAV user name (defaults to the configured one)")

	return cmd
}
