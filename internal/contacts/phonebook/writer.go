package phonebook

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink receives the rows of one export.
type Sink interface {
	WriteRows(rows []Row) error
}

// Writer writes rows as CSV with a header line.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRows writes the header followed by one line per row.
func (w *Writer) WriteRows(rows []Row) error {
	cw := csv.NewWriter(w.w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("phonebook: failed to write header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(Columns) {
			return fmt.Errorf("phonebook: row %d has %d fields, want %d", i+1, len(row), len(Columns))
		}
		if err := cw.Write(row.Values()); err != nil {
			return fmt.Errorf("phonebook: failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("phonebook: failed to flush: %w", err)
	}
	return nil
}

// FileSink writes rows to a CSV file. The file is replaced atomically so a
// failed export never leaves a partial file behind.
type FileSink struct {
	Path string
}

// WriteRows writes rows to a temporary file next to Path and renames it
// into place.
func (s FileSink) WriteRows(rows []Row) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("phonebook: failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".pbsync-*.csv")
	if err != nil {
		return fmt.Errorf("phonebook: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := NewWriter(tmp).WriteRows(rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("phonebook: failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("phonebook: failed to set permissions on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("phonebook: failed to write %s: %w", s.Path, err)
	}
	return nil
}
