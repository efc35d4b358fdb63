package config

import (
	"fmt"
	"strconv"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-provider").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "source",
		Description: "Where contacts are read from: carddav or file",
		Get:         func(cfg *Config) string { return cfg.Source },
		Set:         func(cfg *Config, v string) { cfg.Source = v },
	},
	{
		Name:        "carddav-url",
		Description: "WebDAV URL of the address book collection",
		Get:         func(cfg *Config) string { return cfg.CardDAVURL },
		Set:         func(cfg *Config, v string) { cfg.CardDAVURL = v },
	},
	{
		Name:        "username",
		Description: "CardDAV user name (password is kept in the keychain)",
		Get:         func(cfg *Config) string { return cfg.Username },
		Set:         func(cfg *Config, v string) { cfg.Username = v },
	},
	{
		Name:        "vcf-path",
		Description: "A .vcf file or directory of .vcf files for the file source",
		Get:         func(cfg *Config) string { return cfg.VCFPath },
		Set:         func(cfg *Config, v string) { cfg.VCFPath = v },
	},
	{
		Name:        "output",
		Description: "Path of the CSV file written by export",
		Get:         func(cfg *Config) string { return cfg.Output },
		Set:         func(cfg *Config, v string) { cfg.Output = v },
	},
	{
		Name:        "log-level",
		Description: "Log verbosity: debug, info, warn or error",
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set:         func(cfg *Config, v string) { cfg.LogLevel = v },
	},
	{
		Name:        "workers",
		Description: "Number of vCards parsed in parallel",
		Get: func(cfg *Config) string {
			if cfg.Workers == 0 {
				return ""
			}
			return strconv.Itoa(cfg.Workers)
		},
		Set: func(cfg *Config, v string) {
			n, err := strconv.Atoi(v)
			if err != nil {
				n = 0
			}
			cfg.Workers = n
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
