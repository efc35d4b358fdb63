// Package services provides the contact export service layer.
//
// The Exporter wraps a domain.Source and turns its raw vCards into numbered
// phonebook rows. CLI commands construct an Exporter from a resolved source
// and call Collect or Export rather than driving the parser and mapper
// directly.
package services

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/contacts/phonebook"
	"nathanbeddoewebdev/pbsync/internal/contacts/vcard"
	"nathanbeddoewebdev/pbsync/internal/logger"

	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Exporter runs the fetch, parse and map steps of an export.
type Exporter struct {
	source  domain.Source
	log     *logger.Logger
	workers int
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for progress and discard messages.
func WithLogger(l *logger.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithWorkers sets how many vCards are parsed concurrently.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.workers = n
		}
	}
}

// New returns an Exporter reading from source.
func New(source domain.Source, opts ...Option) *Exporter {
	e := &Exporter{source: source, log: logger.Nop(), workers: defaultWorkers}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result summarises one export.
type Result struct {
	// Fetched is the number of cards the source returned.
	Fetched int `json:"fetched"`

	// Blank is the number of fetched cards with no text.
	Blank int `json:"blank"`

	// Discarded is the number of parsed cards dropped for lack of a name.
	Discarded int `json:"discarded"`

	// Contacts are the valid contacts in source order.
	Contacts []domain.Contact `json:"-"`

	// Rows are the mapped phonebook rows; set by Export only.
	Rows []phonebook.Row `json:"-"`
}

// Exported returns the number of valid contacts.
func (r Result) Exported() int {
	return len(r.Contacts)
}

// Collect fetches and parses every card. It fails with domain.ErrNoCards
// when the source has nothing to parse and with domain.ErrNoContacts when
// every card was discarded.
func (e *Exporter) Collect(ctx context.Context) (*Result, error) {
	cards, err := e.source.FetchCards(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Fetched: len(cards)}
	cards = nonBlank(cards)
	res.Blank = res.Fetched - len(cards)
	e.log.Infow("fetched contacts", "source", e.source.GetDisplayName(), "cards", res.Fetched, "blank", res.Blank)

	if len(cards) == 0 {
		return res, domain.ErrNoCards
	}

	parsed, err := e.parseAll(ctx, cards)
	if err != nil {
		return res, err
	}

	for i, c := range parsed {
		if !c.Valid() {
			res.Discarded++
			e.log.Debugw("discarding contact without name", "href", cards[i].Href)
			continue
		}
		res.Contacts = append(res.Contacts, c)
	}
	e.log.Infow("parsed contacts", "valid", len(res.Contacts), "discarded", res.Discarded)

	if len(res.Contacts) == 0 {
		return res, domain.ErrNoContacts
	}
	return res, nil
}

// Export collects the contacts, numbers them from 1 in source order and
// hands the rows to sink. The sink is not called when Collect fails.
func (e *Exporter) Export(ctx context.Context, sink phonebook.Sink) (*Result, error) {
	res, err := e.Collect(ctx)
	if err != nil {
		return res, err
	}

	res.Rows = phonebook.MapAll(res.Contacts)
	if sink == nil {
		return res, nil
	}
	if err := sink.WriteRows(res.Rows); err != nil {
		return res, fmt.Errorf("failed to write phonebook: %w", err)
	}
	e.log.Infow("wrote phonebook", "rows", len(res.Rows))
	return res, nil
}

// parseAll parses cards on a bounded pool. Results keep the input order.
func (e *Exporter) parseAll(ctx context.Context, cards []domain.Card) ([]domain.Contact, error) {
	out := make([]domain.Contact, len(cards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, card := range cards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = vcard.Parse(card.Data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonBlank(cards []domain.Card) []domain.Card {
	kept := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if strings.TrimSpace(c.Data) != "" {
			kept = append(kept, c)
		}
	}
	return kept
}
