package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether a password is stored",
		Long: `Show whether a CardDAV password is stored for the configured user.

Example:
  pbsync auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := resolveUsername(cmd)
			if err != nil {
				return err
			}

			_, err = cmdutil.StoreFactory().GetPassword(username)
			switch {
			case err == nil:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", username)
			case errors.Is(err, auth.ErrPasswordNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", username)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", username, err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("username", "", "CardDAV user name (defaults to the configured one)")

	return cmd
}
