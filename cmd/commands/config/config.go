package config

import (
	"nathanbeddoewebdev/pbsync/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pbsync configuration",
		Long: "View and modify persistent pbsync settings.\n\n" +
			"Configuration is stored at ~/.config/pbsync/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
