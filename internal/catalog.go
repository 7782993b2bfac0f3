package internal

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Catalog is a small SQLite index of processed sessions kept next to the
// output files. It is an advisory cache: every number in it is recomputable
// from the .dat files, and deleting catalog.db loses nothing.
type Catalog struct {
	db *sql.DB
}

const catalogSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	archive_path TEXT NOT NULL,
	processed_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sensor_files (
	session_id              TEXT NOT NULL,
	kind                    TEXT NOT NULL,
	path                    TEXT NOT NULL,
	sample_count            INTEGER NOT NULL,
	nan_count               INTEGER NOT NULL,
	inf_count               INTEGER NOT NULL,
	monotonicity_violations INTEGER NOT NULL,
	skipped_records         INTEGER NOT NULL,
	first_timestamp         REAL NOT NULL,
	last_timestamp          REAL NOT NULL,
	PRIMARY KEY (session_id, kind)
);`

// OpenCatalog opens (creating if needed) the catalog database under dir.
func OpenCatalog(dir string) (*Catalog, error) {
	path := filepath.Join(dir, "catalog.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// RecordSession upserts one pipeline run. Re-processing a session replaces
// its rows, matching the pipeline's full-rewrite output policy.
func (c *Catalog) RecordSession(sessionID, archivePath string, results map[Kind]*SensorResult) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions (session_id, archive_path, processed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET archive_path=excluded.archive_path, processed_at=excluded.processed_at`,
		sessionID, archivePath, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM sensor_files WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear previous sensor rows: %w", err)
	}
	for _, kind := range AllKinds {
		res, ok := results[kind]
		if !ok {
			continue
		}
		r := res.Report
		_, err := tx.Exec(`INSERT INTO sensor_files
			(session_id, kind, path, sample_count, nan_count, inf_count,
			 monotonicity_violations, skipped_records, first_timestamp, last_timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID, kind.String(), res.Path, r.SampleCount, r.NaNCount, r.InfCount,
			r.MonotonicityViolations, r.SkippedRecords, r.FirstTimestamp, r.LastTimestamp)
		if err != nil {
			return fmt.Errorf("failed to record %s file: %w", kind, err)
		}
	}
	return tx.Commit()
}

// SessionEntry is one catalog row for the sessions listing.
type SessionEntry struct {
	SessionID   string
	ArchivePath string
	ProcessedAt string
	SensorCount int
}

// Sessions lists processed sessions, most recent first.
func (c *Catalog) Sessions() ([]SessionEntry, error) {
	rows, err := c.db.Query(`SELECT s.session_id, s.archive_path, s.processed_at,
		(SELECT COUNT(*) FROM sensor_files f WHERE f.session_id = s.session_id)
		FROM sessions s ORDER BY s.processed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		if err := rows.Scan(&e.SessionID, &e.ArchivePath, &e.ProcessedAt, &e.SensorCount); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reports returns the stored quality reports for one session, keyed by kind.
func (c *Catalog) Reports(sessionID string) (map[Kind]*QualityReport, error) {
	rows, err := c.db.Query(`SELECT kind, sample_count, nan_count, inf_count,
		monotonicity_violations, skipped_records, first_timestamp, last_timestamp
		FROM sensor_files WHERE session_id = ?`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sensor files: %w", err)
	}
	defer rows.Close()

	reports := make(map[Kind]*QualityReport)
	for rows.Next() {
		var r QualityReport
		if err := rows.Scan(&r.Kind, &r.SampleCount, &r.NaNCount, &r.InfCount,
			&r.MonotonicityViolations, &r.SkippedRecords, &r.FirstTimestamp, &r.LastTimestamp); err != nil {
			return nil, fmt.Errorf("failed to scan sensor row: %w", err)
		}
		kind, err := ParseKind(r.Kind)
		if err != nil {
			continue
		}
		reports[kind] = &r
	}
	return reports, rows.Err()
}
