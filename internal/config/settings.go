package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by Resolve when neither the config file nor a flag sets
// a value.
const (
	DefaultSource  = "carddav"
	DefaultOutput  = "3cx_contacts.csv"
	DefaultWorkers = 4
)

// Settings is the effective configuration for one run: the stored Config
// with command-line overrides and defaults applied.
type Settings struct {
	Source     string `validate:"oneof=carddav file"`
	CardDAVURL string `validate:"required_if=Source carddav,omitempty,url"`
	Username   string `validate:"required_if=Source carddav"`
	VCFPath    string `validate:"required_if=Source file"`
	Output     string `validate:"required"`
	LogLevel   string `validate:"omitempty,oneof=debug info warn warning error"`
	Workers    int    `validate:"min=1,max=64"`
}

// Overrides holds values supplied on the command line. Empty fields leave
// the stored value untouched.
type Overrides struct {
	Source     string
	CardDAVURL string
	Username   string
	VCFPath    string
	Output     string
	LogLevel   string
	Workers    int
}

// Resolve merges cfg, overrides and defaults into Settings. It does not
// validate; call Settings.Validate for that.
func Resolve(cfg *Config, o Overrides) Settings {
	if cfg == nil {
		cfg = &Config{}
	}
	s := Settings{
		Source:     strings.ToLower(pick(o.Source, cfg.Source, DefaultSource)),
		CardDAVURL: pick(o.CardDAVURL, cfg.CardDAVURL),
		Username:   pick(o.Username, cfg.Username),
		VCFPath:    pick(o.VCFPath, cfg.VCFPath),
		Output:     pick(o.Output, cfg.Output, DefaultOutput),
		LogLevel:   strings.ToLower(pick(o.LogLevel, cfg.LogLevel)),
		Workers:    cfg.Workers,
	}
	if o.Workers != 0 {
		s.Workers = o.Workers
	}
	if s.Workers == 0 {
		s.Workers = DefaultWorkers
	}
	return s
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the settings are complete for the selected source.
// The returned error names every offending setting by its config key.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: invalid settings: %s", strings.Join(msgs, "; "))
}

// keyNames maps Settings fields onto their CLI-facing key names.
var keyNames = map[string]string{
	"Source":     "source",
	"CardDAVURL": "carddav-url",
	"Username":   "username",
	"VCFPath":    "vcf-path",
	"Output":     "output",
	"LogLevel":   "log-level",
	"Workers":    "workers",
}

func describe(fe validator.FieldError) string {
	key := keyNames[fe.Field()]
	if key == "" {
		key = fe.Field()
	}

	switch fe.Tag() {
	case "required", "required_if":
		return key + " is required"
	case "url":
		return fmt.Sprintf("%s %q is not a valid URL", key, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s must be between 1 and 64", key)
	}
	return fmt.Sprintf("%s failed %q validation", key, fe.Tag())
}

func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// LoadSettings reads the stored config, applies overrides and validates the
// result.
func LoadSettings(o Overrides) (Settings, error) {
	cfg, err := Load()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	s := Resolve(cfg, o)
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
