package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"pdfxtract/constants"
)

// Run is one recorded extraction, as stored in the history database.
type Run struct {
	ID          string
	InputPath   string
	OutputPath  string
	Template    string
	Model       string
	Format      string
	Status      constants.RunStatus
	Extractions int
	TextMethod  string
	Error       string
	StartedAt   time.Time
	Duration    time.Duration
}

// Store keeps a local ledger of extraction runs in SQLite. Everything here
// is best-effort from the caller's point of view: history must never break
// an extraction.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens or creates the history database at path and ensures the schema
// exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db, path: path, logger: logger}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run. Failures are logged and swallowed.
func (s *Store) Record(ctx context.Context, run Run) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, input_path, output_path, template, model, format,
			status, extractions, text_method, error, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputPath, run.OutputPath, run.Template, run.Model, run.Format,
		string(run.Status), run.Extractions, run.TextMethod, run.Error,
		run.StartedAt.UTC().Format(time.RFC3339), run.Duration.Milliseconds(),
	)
	if err != nil {
		s.logger.Warn("history.record.failed", "run_id", run.ID, "error", err)
		return
	}
	s.logger.Debug("history.record.ok", "run_id", run.ID, "status", string(run.Status))
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, input_path, output_path, template, model, format,
			status, extractions, text_method, error, started_at, duration_ms
		FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var status, startedAt string
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.InputPath, &r.OutputPath, &r.Template, &r.Model,
			&r.Format, &status, &r.Extractions, &r.TextMethod, &r.Error,
			&startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Status = constants.RunStatus(status)
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountByStatus returns the number of recorded runs per status.
func (s *Store) CountByStatus(ctx context.Context) (map[constants.RunStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[constants.RunStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[constants.RunStatus(status)] = n
	}
	return counts, rows.Err()
}
