// Package journal keeps a history of runs in a SQLite database in the state
// directory.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mydehq/mediafilename/internal/types"
)

// FileName is the database file inside the state directory.
const FileName = "history.db"

// timeLayout has a fixed width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	OffsetCode string // as typed, e.g. UTC+5:30
	Offset     string // canonical, e.g. +0530
	Target     string
	Script     string
	Resolved   int
	Skipped    int
}

// Store is the run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database in dir.
func Open(ctx context.Context, dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	dbPath := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path of the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a run with its renames and skips in one transaction. A run
// without an ID is assigned one. Resolved and Skipped are taken from the
// slices. It returns the stored run.
func (s *Store) Record(ctx context.Context, run Run, results []types.RenameResult, skips []types.Skip) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.Resolved = len(results)
	run.Skipped = len(skips)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, offset_code, utc_offset, target, script, resolved, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.OffsetCode, run.Offset,
		run.Target, run.Script, run.Resolved, run.Skipped,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for i, r := range results {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO renames (run_id, position, original_path, new_filename, pass) VALUES (?, ?, ?, ?, ?)",
			run.ID, i, r.OriginalPath, r.NewFilename, int(r.Pass),
		); err != nil {
			return Run{}, fmt.Errorf("insert rename %s: %w", r.OriginalPath, err)
		}
	}

	for i, sk := range skips {
		msg := ""
		if sk.Err != nil {
			msg = sk.Err.Error()
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO skips (run_id, position, path, reason, error) VALUES (?, ?, ?, ?, ?)",
			run.ID, i, sk.Path, string(sk.Reason), msg,
		); err != nil {
			return Run{}, fmt.Errorf("insert skip %s: %w", sk.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, offset_code, utc_offset, target, script, resolved, skipped
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			started string
		)
		if err := rows.Scan(&r.ID, &started, &r.OffsetCode, &r.Offset, &r.Target, &r.Script, &r.Resolved, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at for %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	var (
		r       Run
		started string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, offset_code, utc_offset, target, script, resolved, skipped
		 FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &started, &r.OffsetCode, &r.Offset, &r.Target, &r.Script, &r.Resolved, &r.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at for %s: %w", r.ID, err)
	}
	return r, nil
}

// Renames returns the renames recorded for runID in their original order.
func (s *Store) Renames(ctx context.Context, runID string) ([]types.RenameResult, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT original_path, new_filename, pass FROM renames WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("query renames: %w", err)
	}
	defer rows.Close()

	var out []types.RenameResult
	for rows.Next() {
		var (
			r    types.RenameResult
			pass int
		)
		if err := rows.Scan(&r.OriginalPath, &r.NewFilename, &pass); err != nil {
			return nil, fmt.Errorf("scan rename: %w", err)
		}
		r.Pass = types.Pass(pass)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Skips returns the skips recorded for runID in their original order.
func (s *Store) Skips(ctx context.Context, runID string) ([]types.Skip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT path, reason, error FROM skips WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("query skips: %w", err)
	}
	defer rows.Close()

	var out []types.Skip
	for rows.Next() {
		var (
			sk     types.Skip
			reason string
			msg    string
		)
		if err := rows.Scan(&sk.Path, &reason, &msg); err != nil {
			return nil, fmt.Errorf("scan skip: %w", err)
		}
		sk.Reason = types.SkipReason(reason)
		if msg != "" {
			sk.Err = recordedError(msg)
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

// recordedError is an error read back from the journal.
type recordedError string

func (e recordedError) Error() string { return string(e) }
