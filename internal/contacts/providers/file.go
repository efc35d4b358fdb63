package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/services/auth"
)

// Compile-time check that FileSource satisfies domain.Source.
var _ domain.Source = (*FileSource)(nil)

// FileSource reads vCards from a .vcf file or from every .vcf file in a
// directory. A file may hold any number of BEGIN:VCARD/END:VCARD blocks.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource rooted at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// RegisterFile registers the file source factory.
func RegisterFile() {
	Register("file", func(settings config.Settings, _ auth.Store) (domain.Source, error) {
		return NewFileSource(settings.VCFPath), nil
	})
}

// GetDisplayName returns the human-readable source name.
func (s *FileSource) GetDisplayName() string {
	return "vCard file"
}

// FetchCards reads every card below the configured path. Directory entries
// are read in name order.
func (s *FileSource) FetchCards(ctx context.Context) ([]domain.Card, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	var cards []domain.Card
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("vcf: failed to read %s: %w", file, err)
		}
		for i, block := range SplitCards(string(data)) {
			cards = append(cards, domain.Card{
				Href: fmt.Sprintf("%s#%d", file, i+1),
				Data: block,
			})
		}
	}
	return cards, nil
}

func (s *FileSource) files() ([]string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vcf: %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("vcf: %w", err)
	}
	if !info.IsDir() {
		return []string{s.path}, nil
	}

	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, fmt.Errorf("vcf: failed to list %s: %w", s.path, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".vcf") {
			continue
		}
		files = append(files, filepath.Join(s.path, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// SplitCards splits the text of a .vcf file into single vCards. Text
// outside BEGIN:VCARD/END:VCARD blocks is dropped. A file without any
// BEGIN line is returned whole.
func SplitCards(data string) []string {
	var (
		cards   []string
		current []string
		inCard  bool
		sawCard bool
	)
	for line := range strings.SplitSeq(data, "\n") {
		trimmed := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case trimmed == "BEGIN:VCARD":
			inCard, sawCard = true, true
			current = []string{line}
		case trimmed == "END:VCARD" && inCard:
			current = append(current, line)
			cards = append(cards, strings.Join(current, "\n"))
			inCard, current = false, nil
		case inCard:
			current = append(current, line)
		}
	}
	if inCard && len(current) > 0 {
		cards = append(cards, strings.Join(current, "\n"))
	}
	if !sawCard && strings.TrimSpace(data) != "" {
		return []string{data}
	}
	return cards
}
