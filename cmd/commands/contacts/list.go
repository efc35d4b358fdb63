package contacts

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/contacts/services"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the contacts that would be exported",
		Long: `Fetch and parse every vCard at the source and list the contacts
that would be exported. Cards without any name are skipped.

Examples:
  pbsync contacts list
  pbsync contacts list --source file --vcf-path ./export.vcf
  pbsync contacts list -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmdutil.AddSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// contactView is the JSON shape of a listed contact.
type contactView struct {
	DisplayName string `json:"display_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneWork   string `json:"phone_work,omitempty"`
	PhoneMobile string `json:"phone_mobile,omitempty"`
	PhoneHome   string `json:"phone_home,omitempty"`
	Company     string `json:"company,omitempty"`
	Title       string `json:"title,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

func newContactView(c domain.Contact) contactView {
	return contactView{
		DisplayName: c.DisplayName(),
		FirstName:   c.FirstName(),
		LastName:    c.LastName(),
		Email:       c.Email(),
		PhoneWork:   c.PhoneWork(),
		PhoneMobile: c.PhoneMobile(),
		PhoneHome:   c.PhoneHome(),
		Company:     c.Company(),
		Title:       c.Title(),
		Notes:       c.Notes(),
	}
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	settings, log, err := cmdutil.Setup(cmdutil.Overrides(cmd))
	if err != nil {
		return err
	}
	defer log.SafeSync()

	exporter, err := services.NewFromSettings(settings, cmdutil.StoreFactory(), log)
	if err != nil {
		return cmdutil.Explain(err)
	}

	var res *services.Result
	var collectErr error
	spinErr := cmdutil.WithSpinner(cmd, "Fetching contacts...", func() {
		res, collectErr = exporter.Collect(cmd.Context())
	})
	if spinErr != nil {
		return spinErr
	}
	if collectErr != nil {
		return cmdutil.Explain(collectErr)
	}

	if output == "json" {
		views := make([]contactView, len(res.Contacts))
		for i, c := range res.Contacts {
			views[i] = newContactView(c)
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(views)
	}

	printTable(cmd.OutOrStdout(), res.Contacts)
	if res.Discarded > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d card(s) without a name were skipped.\n", res.Discarded)
	}
	return nil
}

func printTable(out io.Writer, contacts []domain.Contact) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPHONE\tEMAIL\tCOMPANY")
	fmt.Fprintln(w, "-\t----\t-----\t-----\t-------")
	for i, c := range contacts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			dash(name(c)),
			dash(c.MainPhone()),
			dash(c.Email()),
			dash(c.Company()),
		)
	}
	w.Flush()
}

func name(c domain.Contact) string {
	if c.DisplayName() != "" {
		return c.DisplayName()
	}
	return strings.TrimSpace(c.FirstName() + " " + c.LastName())
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
