package providers

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/services/auth"
)

const (
	carddavTimeout = 30 * time.Second

	// maxResponseBytes bounds the PROPFIND body read into memory.
	maxResponseBytes = 64 << 20
)

// addressDataQuery asks for the etag and the full vCard of every member of
// the collection.
const addressDataQuery = `<?xml version="1.0" encoding="UTF-8"?>
<d:propfind xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:prop>
    <d:getetag/>
    <card:address-data/>
  </d:prop>
</d:propfind>`

// Compile-time check that CardDAVSource satisfies domain.Source.
var _ domain.Source = (*CardDAVSource)(nil)

// CardDAVSource reads vCards from a CardDAV address book collection with a
// single depth-1 PROPFIND.
type CardDAVSource struct {
	url      string
	username string
	password string
	client   *http.Client
}

// NewCardDAVSource creates a CardDAVSource for the collection at url.
func NewCardDAVSource(url, username, password string) *CardDAVSource {
	return &CardDAVSource{
		url:      strings.TrimRight(url, "/") + "/",
		username: username,
		password: password,
		client:   &http.Client{Timeout: carddavTimeout},
	}
}

// RegisterCardDAV registers the CardDAV source factory. The password is read
// from the keychain entry of the configured user name.
func RegisterCardDAV() {
	Register("carddav", func(settings config.Settings, store auth.Store) (domain.Source, error) {
		password, err := store.GetPassword(settings.Username)
		if err != nil {
			return nil, fmt.Errorf("carddav auth: failed to read password for %q: %w", settings.Username, err)
		}
		return NewCardDAVSource(settings.CardDAVURL, settings.Username, password), nil
	})
}

// GetDisplayName returns the human-readable source name.
func (s *CardDAVSource) GetDisplayName() string {
	return "CardDAV"
}

// --- WebDAV multistatus response ---

type multistatus struct {
	XMLName   xml.Name      `xml:"DAV: multistatus"`
	Responses []davResponse `xml:"DAV: response"`
}

type davResponse struct {
	Href     string        `xml:"DAV: href"`
	Propstat []davPropstat `xml:"DAV: propstat"`
}

type davPropstat struct {
	Status string  `xml:"DAV: status"`
	Prop   davProp `xml:"DAV: prop"`
}

// davProp holds the requested properties. address-data lives in the
// carddav namespace inside the DAV: prop element.
type davProp struct {
	AddressData string `xml:"urn:ietf:params:xml:ns:carddav address-data"`
}

// FetchCards lists the collection and returns every member that carries
// address data. Members with blank address data (the collection itself,
// deleted cards) are skipped.
func (s *CardDAVSource) FetchCards(ctx context.Context) ([]domain.Card, error) {
	body, err := s.propfind(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list address book: %w", err)
	}

	var ms multistatus
	if err := xml.Unmarshal(body, &ms); err != nil {
		return nil, fmt.Errorf("carddav: failed to decode response: %w", err)
	}

	cards := make([]domain.Card, 0, len(ms.Responses))
	for _, r := range ms.Responses {
		data := r.addressData()
		if strings.TrimSpace(data) == "" {
			continue
		}
		cards = append(cards, domain.Card{Href: strings.TrimSpace(r.Href), Data: data})
	}
	return cards, nil
}

// addressData returns the first non-blank address-data of the response.
func (r davResponse) addressData() string {
	for _, ps := range r.Propstat {
		if strings.TrimSpace(ps.Prop.AddressData) != "" {
			return ps.Prop.AddressData
		}
	}
	return ""
}

func (s *CardDAVSource) propfind(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "PROPFIND", s.url, strings.NewReader(addressDataQuery))
	if err != nil {
		return nil, fmt.Errorf("carddav: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	req.Header.Set("Depth", "1")
	req.SetBasicAuth(s.username, s.password)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carddav: request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("carddav: failed to read response: %w", err)
	}
	return body, nil
}

// statusError converts non-success HTTP statuses to domain sentinels where
// recognisable.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: carddav: %s", domain.ErrUnauthorized, resp.Status)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: carddav: %s", domain.ErrNotFound, resp.Status)
	}
	return errors.New("carddav: unexpected status " + resp.Status)
}
