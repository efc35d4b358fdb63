package domain

import "errors"

// Sentinel errors returned by sources and the export service.
var (
	// ErrNotFound indicates the address book does not exist.
	ErrNotFound = errors.New("address book not found")

	// ErrUnauthorized indicates the source rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoCards indicates the source returned no usable vCards.
	ErrNoCards = errors.New("no contacts found at source")

	// ErrNoContacts indicates every fetched vCard was discarded because it
	// had no name.
	ErrNoContacts = errors.New("no contacts with a name to export")
)
