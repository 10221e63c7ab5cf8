package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"scrub/internal/config"
)

// Run records one remediation attempt against an input file: what was
// planned, whether the tool invocation succeeded, and how the failure was
// classified when it did not.
type Run struct {
	ID           string
	InputPath    string
	OutputPath   string
	Status       string
	ErrorKind    string
	Diagnostics  string
	VideoActions int
	AudioActions int
	SecondsCut   float64
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Run statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Store persists run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at the configured
// path and bootstraps the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.HistoryDB
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    input_path TEXT NOT NULL,
    output_path TEXT NOT NULL,
    status TEXT NOT NULL,
    error_kind TEXT NOT NULL DEFAULT '',
    diagnostics TEXT NOT NULL DEFAULT '',
    video_actions INTEGER NOT NULL DEFAULT 0,
    audio_actions INTEGER NOT NULL DEFAULT 0,
    seconds_cut REAL NOT NULL DEFAULT 0,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Record inserts a finished run.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("record run: empty id")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, input_path, output_path, status, error_kind, diagnostics,
            video_actions, audio_actions, seconds_cut, started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.InputPath,
		run.OutputPath,
		run.Status,
		run.ErrorKind,
		run.Diagnostics,
		run.VideoActions,
		run.AudioActions,
		run.SecondsCut,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first, capped at limit.
// A non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, input_path, output_path, status, error_kind, diagnostics,
        video_actions, audio_actions, seconds_cut, started_at, finished_at
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  string
			finishedAt string
		)
		if err := rows.Scan(
			&run.ID,
			&run.InputPath,
			&run.OutputPath,
			&run.Status,
			&run.ErrorKind,
			&run.Diagnostics,
			&run.VideoActions,
			&run.AudioActions,
			&run.SecondsCut,
			&startedAt,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTimestamp(startedAt)
		run.FinishedAt = parseTimestamp(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return parsed
}
