// Package vcard turns raw vCard text into domain contacts.
//
// The parser is line based: each physical line is one property. Folded
// (continuation) lines are not joined back together, so a value that the
// server wrapped across lines is cut at the first line break. Values are
// taken verbatim; no unescaping or charset decoding is applied.
package vcard

import (
	"strings"
	"unicode"

	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
)

// Parse reads a single vCard and returns the contact it describes.
// Lines that cannot be interpreted are skipped; Parse never fails.
func Parse(raw string) domain.Contact {
	var b domain.Builder

	for line := range strings.SplitSeq(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		propPart, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		segments := strings.Split(propPart, ";")
		switch strings.ToUpper(segments[0]) {
		case "FN":
			b.SetDisplayName(value)
		case "N":
			// Family;Given;Additional;Prefix;Suffix
			parts := strings.Split(value, ";")
			if len(parts) >= 2 {
				b.SetName(parts[0], parts[1])
			}
		case "EMAIL":
			b.AddEmail(value)
		case "TEL":
			b.AddPhone(ClassifyTel(segments), CleanPhone(value))
		case "ORG":
			b.SetCompany(value)
		case "TITLE":
			b.SetTitle(value)
		case "NOTE":
			b.SetNotes(value)
		}
	}

	return b.Build()
}

// ClassifyTel picks the phone slot for a TEL property from its name and
// parameter segments. WORK wins over CELL/MOBILE, which win over HOME.
// Untyped numbers are treated as work numbers.
func ClassifyTel(segments []string) domain.PhoneKind {
	params := strings.ToUpper(strings.Join(segments, ";"))

	switch {
	case strings.Contains(params, "WORK"):
		return domain.PhoneWork
	case strings.Contains(params, "CELL"), strings.Contains(params, "MOBILE"):
		return domain.PhoneMobile
	case strings.Contains(params, "HOME"):
		return domain.PhoneHome
	default:
		return domain.PhoneWork
	}
}

// CleanPhone strips everything but digits, '+', '-', parentheses and
// whitespace from a phone number, then trims surrounding whitespace.
func CleanPhone(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if isDialRune(r) {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(cleaned)
}

func isDialRune(r rune) bool {
	switch {
	case unicode.IsDigit(r), unicode.IsSpace(r):
		return true
	case r == '+', r == '-', r == '(', r == ')':
		return true
	}
	return false
}
