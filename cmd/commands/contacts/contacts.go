package contacts

import "github.com/spf13/cobra"

// NewCommand returns the "contacts" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Inspect contacts at the configured source",
		Long: "Fetch and parse contacts without writing a phonebook file.\n\n" +
			"Useful for checking what an export will contain.",
	}

	cmd.AddCommand(ListCommand())

	return cmd
}
