package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/phonebook"
	"nathanbeddoewebdev/pbsync/internal/contacts/services"
	"nathanbeddoewebdev/pbsync/internal/logger"
	"nathanbeddoewebdev/pbsync/internal/runlog"
	"nathanbeddoewebdev/pbsync/internal/tui/styles"

	"github.com/spf13/cobra"
)

// NewCommand returns the "export" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the contacts as a 3CX phonebook CSV",
		Long: `Fetch every vCard from the configured source, convert the contacts
and write them as a 3CX phonebook import file.

Cards without any name are skipped. Nothing is written when the source is
empty or no card has a name. Each run is recorded in the local history
(see 'pbsync history list').

Examples:
  pbsync export
  pbsync export --output /srv/3cx/phonebook.csv
  pbsync export --source file --vcf-path ./contacts/
  pbsync export --dry-run`,
		Args:         cobra.NoArgs,
		RunE:         runExport,
		SilenceUsage: true,
	}

	cmdutil.AddSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "CSV file to write (overrides config, default "+config.DefaultOutput+")")
	cmd.Flags().Bool("dry-run", false, "Fetch and convert but do not write the file")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	start := time.Now()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	overrides := cmdutil.Overrides(cmd)
	overrides.Output, _ = cmd.Flags().GetString("output")

	settings, log, err := cmdutil.Setup(overrides)
	if err != nil {
		return err
	}
	defer log.SafeSync()

	exporter, err := services.NewFromSettings(settings, cmdutil.StoreFactory(), log)
	if err != nil {
		return cmdutil.Explain(err)
	}

	var sink phonebook.Sink
	if !dryRun {
		sink = phonebook.FileSink{Path: settings.Output}
	}

	var res *services.Result
	var exportErr error
	spinErr := cmdutil.WithSpinner(cmd, "Exporting contacts...", func() {
		res, exportErr = exporter.Export(cmd.Context(), sink)
	})
	if spinErr != nil {
		return spinErr
	}

	record(log, newRun(settings, res, exportErr, dryRun, time.Since(start)))

	if exportErr != nil {
		return cmdutil.Explain(exportErr)
	}

	printSummary(cmd.OutOrStdout(), settings, res, dryRun)
	return nil
}

func newRun(settings config.Settings, res *services.Result, err error, dryRun bool, elapsed time.Duration) *runlog.Run {
	run := &runlog.Run{
		Args:       strings.Join(runlog.SanitizeArgs(os.Args[1:]), " "),
		Source:     settings.Source,
		Output:     settings.Output,
		Outcome:    runlog.OutcomeSuccess,
		DurationMs: elapsed.Milliseconds(),
	}
	if dryRun {
		run.Outcome = runlog.OutcomeDryRun
		run.Output = ""
	}
	if res != nil {
		run.Fetched = res.Fetched
		run.Exported = res.Exported()
		run.Discarded = res.Discarded
	}
	if err != nil {
		run.Outcome = runlog.OutcomeError
		run.Detail = err.Error()
		run.Exported = 0
	}
	return run
}

// record saves the run to the local history. Failures are logged and do
// not fail the export.
func record(log *logger.Logger, run *runlog.Run) {
	repo, err := runlog.Open()
	if err != nil {
		log.Warnw("run history unavailable", "error", err)
		return
	}
	defer repo.Close()

	if err := repo.Save(run); err != nil {
		log.Warnw("failed to record run", "error", err)
	}
}

func printSummary(out io.Writer, settings config.Settings, res *services.Result, dryRun bool) {
	const width = 9

	var title string
	if dryRun {
		title = styles.WarningText.Render("Dry run: nothing written")
	} else {
		title = styles.SuccessText.Render(fmt.Sprintf("Exported %d contact(s)", res.Exported()))
	}

	lines := []string{
		title,
		"",
		styles.Field("Fetched", width, fmt.Sprint(res.Fetched)),
		styles.Field("Exported", width, fmt.Sprint(res.Exported())),
		styles.Field("Skipped", width, fmt.Sprint(res.Blank+res.Discarded)),
	}
	if !dryRun {
		lines = append(lines, styles.Label.Render(fmt.Sprintf("%-*s", width, "Output"))+"  "+styles.AccentText.Render(settings.Output))
	}

	fmt.Fprintln(out, styles.Card.Render(strings.Join(lines, "\n")))
}
