package domain

import "context"

// Card is one raw vCard as delivered by a Source.
type Card struct {
	// Href identifies the card at its source (a CardDAV href or a file path).
	Href string `json:"href"`

	// Data is the raw vCard text.
	Data string `json:"-"`
}

// Source retrieves raw vCards from an address book.
type Source interface {
	// GetDisplayName returns a human-readable name for the source.
	GetDisplayName() string

	// FetchCards returns every card in the address book, in source order.
	FetchCards(ctx context.Context) ([]Card, error)
}
