package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/providers"
	"nathanbeddoewebdev/pbsync/internal/logger"
	"nathanbeddoewebdev/pbsync/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  pbsync config set carddav-url https://cloud.example.com/remote.php/dav/addressbooks/users/me/contacts/\n" +
			"  pbsync config set source file\n" +
			"  pbsync config set workers 8",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

// validators maps key names to optional pre-save validation functions.
// Keys not present in this map have no extra validation.
var validators = map[string]func(value string) error{
	"source":      validateSource,
	"carddav-url": validateURL,
	"log-level":   validateLogLevel,
	"workers":     validateWorkers,
}

// normalized lists keys whose values are case-insensitive names.
var normalized = map[string]bool{
	"source":    true,
	"log-level": true,
}

func runSet(cmd *cobra.Command, args []string) {
	key := util.NormalizeKey(args[0])
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(key)
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	if normalized[spec.Name] {
		value = util.NormalizeKey(value)
	}

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
}

// validateSource checks that the given name is a registered source.
func validateSource(name string) error {
	known := providers.List()
	for _, p := range known {
		if p == name {
			return nil
		}
	}
	return fmt.Errorf("unknown source %q (registered sources: %s)", name, strings.Join(known, ", "))
}

func validateURL(value string) error {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid carddav-url %q: must be an http(s) URL", value)
	}
	return nil
}

func validateLogLevel(value string) error {
	_, err := logger.ParseLevel(value)
	return err
}

func validateWorkers(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 64 {
		return fmt.Errorf("invalid workers %q: must be a number between 1 and 64", value)
	}
	return nil
}
