// Package cmdutil holds flag and setup helpers shared by the commands that
// read from a contact source.
package cmdutil

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/logger"
	"nathanbeddoewebdev/pbsync/internal/services/auth"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// StoreFactory returns the credential store used by commands. Tests replace
// it with an in-memory store.
var StoreFactory = auth.DefaultStore

// AddSourceFlags registers the flags that override where contacts are read from.
func AddSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "Contact source: carddav or file (overrides config)")
	cmd.Flags().String("url", "", "CardDAV address book URL (overrides config)")
	cmd.Flags().String("username", "", "CardDAV user name (overrides config)")
	cmd.Flags().String("vcf-path", "", "A .vcf file or directory for the file source (overrides config)")
	cmd.Flags().Int("workers", 0, "Number of vCards parsed in parallel (overrides config)")
}

// Overrides collects the flag values registered by AddSourceFlags. Flags
// that are not defined on cmd are ignored.
func Overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	o.Source, _ = cmd.Flags().GetString("source")
	o.CardDAVURL, _ = cmd.Flags().GetString("url")
	o.Username, _ = cmd.Flags().GetString("username")
	o.VCFPath, _ = cmd.Flags().GetString("vcf-path")
	o.Workers, _ = cmd.Flags().GetInt("workers")
	o.LogLevel, _ = cmd.Flags().GetString("log-level")
	return o
}

// Setup resolves and validates the settings and builds its logger.
func Setup(o config.Overrides) (config.Settings, *logger.Logger, error) {
	settings, err := config.LoadSettings(o)
	if err != nil {
		return settings, nil, err
	}
	log, err := logger.New(settings.LogLevel)
	if err != nil {
		return settings, nil, err
	}
	return settings, log, nil
}

// Explain adds a next step to errors the user can act on.
func Explain(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return fmt.Errorf("%w (check the user name and run 'pbsync auth login')", err)
	case errors.Is(err, auth.ErrPasswordNotFound):
		return fmt.Errorf("%w (run 'pbsync auth login')", err)
	case errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("%w (check the carddav-url or vcf-path setting)", err)
	}
	return err
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// WithSpinner runs action behind a spinner when stderr is a terminal and
// directly otherwise.
func WithSpinner(cmd *cobra.Command, title string, action func()) error {
	if !IsTerminal(os.Stderr) {
		action()
		return nil
	}
	return spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(cmd.ErrOrStderr()).
		Action(action).
		Run()
}
