// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger persists per-note conversion outcomes in SQLite so repeated
// runs into the same destination only rewrite notes that changed.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notes2md/pkg/types"
)

const (
	// DirName is the hidden directory under the destination holding the ledger.
	DirName = ".notes2md"
	dbFile  = "ledger.db"
)

// DefaultPath returns the ledger location for a destination directory.
func DefaultPath(destDir string) string {
	return filepath.Join(destDir, DirName, dbFile)
}

// Store manages the ledger database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the ledger at path, creating its directory and
// schema when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			note_id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			title TEXT,
			filename TEXT,
			created TEXT,
			modified TEXT,
			trashed INTEGER NOT NULL DEFAULT 0,
			digest TEXT,
			status TEXT NOT NULL,
			reason TEXT,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_status ON notes(status)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			source_path TEXT,
			active INTEGER NOT NULL,
			trashed INTEGER NOT NULL,
			written INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return s.addDigestColumn()
}

// addDigestColumn upgrades ledgers created before notes carried a digest.
// Their rows keep a NULL digest, so the next run rewrites each note once.
func (s *Store) addDigestColumn() error {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('notes') WHERE name = 'digest'`).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspecting notes table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.Exec(`ALTER TABLE notes ADD COLUMN digest TEXT`); err != nil {
		return fmt.Errorf("adding digest column: %w", err)
	}
	return nil
}

// Lookup returns the last recorded outcome for noteID.
func (s *Store) Lookup(ctx context.Context, noteID string) (types.LedgerRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, selectNotes+` WHERE note_id = ?`, noteID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.LedgerRecord{}, false, nil
	}
	if err != nil {
		return types.LedgerRecord{}, false, fmt.Errorf("looking up %s: %w", noteID, err)
	}
	return rec, true, nil
}

// Record inserts or replaces the outcome for rec.NoteID.
func (s *Store) Record(ctx context.Context, rec types.LedgerRecord) error {
	if rec.NoteID == "" {
		return fmt.Errorf("ledger record has no note id")
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (note_id, source, title, filename, created, modified, trashed, digest, status, reason, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(note_id) DO UPDATE SET
			source = excluded.source,
			title = excluded.title,
			filename = excluded.filename,
			created = excluded.created,
			modified = excluded.modified,
			trashed = excluded.trashed,
			digest = excluded.digest,
			status = excluded.status,
			reason = excluded.reason,
			updated_at = excluded.updated_at`,
		rec.NoteID, rec.Source, rec.Title, rec.Filename, rec.Created, rec.Modified,
		rec.Trashed, rec.Digest, string(rec.Status), rec.Reason, rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.NoteID, err)
	}
	return nil
}

// RecordRun stores the summary of one conversion run.
func (s *Store) RecordRun(ctx context.Context, run types.RunSummary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (source, source_path, active, trashed, written, skipped, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.SourcePath, run.Active, run.Trashed, run.Written, run.Skipped, run.Failed,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]types.RunSummary, error) {
	query := `SELECT source, source_path, active, trashed, written, skipped, failed, started_at, finished_at
		FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var r types.RunSummary
		var sourcePath sql.NullString
		var started, finished string
		if err := rows.Scan(&r.Source, &sourcePath, &r.Active, &r.Trashed, &r.Written, &r.Skipped, &r.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.SourcePath = sourcePath.String
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Filter narrows List and the exports.
type Filter struct {
	Status types.NoteStatus
	Source string
}

// List returns recorded notes matching f, ordered by note id.
func (s *Store) List(ctx context.Context, f Filter) ([]types.LedgerRecord, error) {
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}

	query := selectNotes
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY note_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var out []types.LedgerRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const selectNotes = `SELECT note_id, source, title, filename, created, modified, trashed, digest, status, reason, updated_at FROM notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.LedgerRecord, error) {
	var rec types.LedgerRecord
	var title, filename, created, modified, digest, reason sql.NullString
	var status, updated string
	if err := sc.Scan(&rec.NoteID, &rec.Source, &title, &filename, &created, &modified, &rec.Trashed, &digest, &status, &reason, &updated); err != nil {
		return types.LedgerRecord{}, err
	}
	rec.Title = title.String
	rec.Filename = filename.String
	rec.Created = created.String
	rec.Modified = modified.String
	rec.Digest = digest.String
	rec.Reason = reason.String
	rec.Status = types.NoteStatus(status)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return rec, nil
}
