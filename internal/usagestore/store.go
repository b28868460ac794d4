// Package usagestore persists per-skill usage snapshots in SQLite so
// usage trends survive restarts.
//
// The store is an independent subsystem: aggregation itself is pure and
// recomputed per request, and the server runs fine without a store. When
// opening the database fails, callers log a warning and continue.
package usagestore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/botdeskhq/botdesk/internal/skills"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Store is the snapshot store backed by SQLite.
type Store struct {
	db *sql.DB
}

// Snapshot is one persisted per-skill measurement.
type Snapshot struct {
	RunAt       string `json:"run_at"`
	Skill       string `json:"skill"`
	Invocations int    `json:"invocations"`
	Mentions    int    `json:"mentions"`
}

// Open creates the parent directory if needed, opens the database in WAL
// mode and runs migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("usagestore: create data dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("usagestore: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("usagestore: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("usagestore: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS usage_snapshots (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at      TEXT    NOT NULL,
			skill       TEXT    NOT NULL,
			invocations INTEGER NOT NULL DEFAULT 0,
			mentions    INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_snapshots_run ON usage_snapshots(run_at DESC);
		CREATE INDEX IF NOT EXISTS idx_snapshots_skill ON usage_snapshots(skill);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun persists one aggregation run. All rows share the same run_at
// stamp and are written in a single transaction.
func (s *Store) SaveRun(runAt string, usage map[string]skills.Usage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("usagestore: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO usage_snapshots (run_at, skill, invocations, mentions) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("usagestore: prepare: %w", err)
	}
	defer stmt.Close()

	for skill, u := range usage {
		if _, err := stmt.Exec(runAt, skill, u.Invocations, u.Mentions); err != nil {
			return fmt.Errorf("usagestore: insert %s: %w", skill, err)
		}
	}
	return tx.Commit()
}

// LastRun returns the most recent run's stamp and per-skill counts. A
// store with no runs yet returns an empty stamp and nil map.
func (s *Store) LastRun() (string, map[string]skills.Usage, error) {
	var runAt string
	err := s.db.QueryRow("SELECT run_at FROM usage_snapshots ORDER BY run_at DESC LIMIT 1").Scan(&runAt)
	if err == sql.ErrNoRows {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("usagestore: last run: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT skill, invocations, mentions FROM usage_snapshots WHERE run_at = ?", runAt,
	)
	if err != nil {
		return "", nil, fmt.Errorf("usagestore: load run: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]skills.Usage)
	for rows.Next() {
		var skill string
		var u skills.Usage
		if err := rows.Scan(&skill, &u.Invocations, &u.Mentions); err != nil {
			return "", nil, fmt.Errorf("usagestore: scan: %w", err)
		}
		usage[skill] = u
	}
	return runAt, usage, rows.Err()
}

// History returns the snapshots for one skill, newest first, up to limit
// (0 means no limit).
func (s *Store) History(skill string, limit int) ([]Snapshot, error) {
	q := "SELECT run_at, skill, invocations, mentions FROM usage_snapshots WHERE skill = ? ORDER BY run_at DESC"
	args := []any{skill}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("usagestore: history: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.RunAt, &snap.Skill, &snap.Invocations, &snap.Mentions); err != nil {
			return nil, fmt.Errorf("usagestore: scan: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
