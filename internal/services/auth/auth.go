// Package auth stores CardDAV passwords outside the config file.
package auth

import (
	"errors"

	"nathanbeddoewebdev/pbsync/internal/util"
)

const ServiceName = "pbsync"

var ErrPasswordNotFound = errors.New("password not found")

// Store keeps one secret per CardDAV account.
type Store interface {
	SetPassword(account string, password string) error
	GetPassword(account string) (string, error)
	DeletePassword(account string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeAccount normalizes an account name for consistent key lookup.
func NormalizeAccount(account string) string {
	return util.NormalizeKey(account)
}
