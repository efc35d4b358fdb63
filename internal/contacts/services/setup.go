package services

import (
	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/providers"
	"nathanbeddoewebdev/pbsync/internal/logger"
	"nathanbeddoewebdev/pbsync/internal/services/auth"
)

// NewFromSettings builds the configured source and an Exporter reading from it.
func NewFromSettings(settings config.Settings, store auth.Store, log *logger.Logger) (*Exporter, error) {
	source, err := providers.Get(settings, store)
	if err != nil {
		return nil, err
	}
	return New(source, WithLogger(log), WithWorkers(settings.Workers)), nil
}
