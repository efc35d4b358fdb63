package cmd

import (
	"os"

	"nathanbeddoewebdev/pbsync/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/pbsync/cmd/commands/config"
	"nathanbeddoewebdev/pbsync/cmd/commands/contacts"
	"nathanbeddoewebdev/pbsync/cmd/commands/export"
	"nathanbeddoewebdev/pbsync/cmd/commands/history"
	"nathanbeddoewebdev/pbsync/internal/contacts/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "pbsync",
		Short: "Export CardDAV contacts as a 3CX phonebook CSV",
		Long: `pbsync reads the contacts of a CardDAV address book (Nextcloud and
compatible servers) or a local .vcf export and writes them as a CSV file
ready for the 3CX phonebook import.

Quick start:
  pbsync config set carddav-url https://cloud.example.com/remote.php/dav/addressbooks/users/me/contacts/
  pbsync config set username me
  pbsync auth login                # Store your app password
  pbsync contacts list             # Preview what will be exported
  pbsync export                    # Write 3cx_contacts.csv`,
	}

	cmd.PersistentFlags().String("log-level", "", "Log verbosity: debug, info, warn or error (overrides config)")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(contacts.NewCommand())
	cmd.AddCommand(export.NewCommand())
	cmd.AddCommand(history.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterAll()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
