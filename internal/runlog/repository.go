// Package runlog keeps a local SQLite history of export runs.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/pbsync/internal/database"
)

// Repository defines the persistence interface for export runs.
type Repository interface {
	Save(run *Run) error
	List(limit int) ([]Run, error)
	ListBySource(source string, limit int) ([]Run, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the run history at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("runlog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("runlog: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS export_runs (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            args        TEXT    NOT NULL DEFAULT '',
            source      TEXT    NOT NULL DEFAULT '',
            output      TEXT    NOT NULL DEFAULT '',
            fetched     INTEGER NOT NULL DEFAULT 0,
            exported    INTEGER NOT NULL DEFAULT 0,
            discarded   INTEGER NOT NULL DEFAULT 0,
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_export_runs_timestamp ON export_runs(timestamp);
        CREATE INDEX IF NOT EXISTS idx_export_runs_source ON export_runs(source);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("runlog: migration failed: %w", err)
	}
	return nil
}

const selectColumns = `id, timestamp, args, source, output, fetched, exported, discarded, outcome, detail, duration_ms`

// Save inserts a new run.
func (r *SQLiteRepository) Save(run *Run) error {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO export_runs (timestamp, args, source, output, fetched, exported, discarded, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Timestamp.UTC().Format(time.RFC3339Nano), run.Args, run.Source, run.Output,
		run.Fetched, run.Exported, run.Discarded, run.Outcome, run.Detail, run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("runlog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("runlog: failed to get last insert ID: %w", err)
	}
	run.ID = id
	return nil
}

// List returns the most recent n runs.
func (r *SQLiteRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(`SELECT `+selectColumns+`
        FROM export_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListBySource returns the most recent n runs against one source kind.
func (r *SQLiteRepository) ListBySource(source string, limit int) ([]Run, error) {
	rows, err := r.db.Query(`SELECT `+selectColumns+`
        FROM export_runs WHERE source = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, source, limit)
	if err != nil {
		return nil, fmt.Errorf("runlog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes runs older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM export_runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("runlog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var timestampStr string
		err := rows.Scan(
			&run.ID, &timestampStr, &run.Args, &run.Source, &run.Output,
			&run.Fetched, &run.Exported, &run.Discarded,
			&run.Outcome, &run.Detail, &run.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("runlog: scan failed: %w", err)
		}
		run.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
