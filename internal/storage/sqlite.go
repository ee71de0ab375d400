// Package storage provides SQLite-based persistence for analysis runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/reclaim/internal/config"
	"github.com/vovakirdan/reclaim/internal/reclaim"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one recorded analysis.
type Run struct {
	ID       int64
	RunID    string // UUID, assigned by SaveRun when empty
	Source   string // File path, level ID, "stdin" or "ssh:<user>"
	Rows     int
	Cols     int
	Baseline int
	BestGain int
	Result   int
	BestRow  int // 0 when no removal helps
	BestCol  int
	Duration time.Duration

	CreatedAt time.Time
}

// NewRun builds a Run from an analysis.
func NewRun(source string, g *reclaim.Grid, a reclaim.Analysis, took time.Duration) Run {
	r := Run{
		Source:   source,
		Rows:     g.Rows(),
		Cols:     g.Cols(),
		Baseline: a.Baseline,
		BestGain: a.Best,
		Result:   a.Result(),
		Duration: took,
	}
	if a.HasBest {
		r.BestRow = a.BestAt.Row
		r.BestCol = a.BestAt.Col
	}
	return r
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			source TEXT NOT NULL,
			grid_rows INTEGER NOT NULL,
			grid_cols INTEGER NOT NULL,
			baseline INTEGER NOT NULL,
			best_gain INTEGER NOT NULL,
			result INTEGER NOT NULL,
			best_row INTEGER NOT NULL DEFAULT 0,
			best_col INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(source, result DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run. A missing RunID is filled with a new UUID.
// Returns the row ID and the run ID.
func (s *Store) SaveRun(r Run) (int64, string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, source, grid_rows, grid_cols, baseline, best_gain, result, best_row, best_col, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.Rows, r.Cols, r.Baseline, r.BestGain, r.Result,
		r.BestRow, r.BestCol, r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, "", fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, r.RunID, nil
}

const runColumns = `id, run_id, source, grid_rows, grid_cols, baseline, best_gain, result,
		        best_row, best_col, duration_us, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var durationUS int64
	var createdAt any
	if err := sc.Scan(
		&r.ID, &r.RunID, &r.Source, &r.Rows, &r.Cols, &r.Baseline, &r.BestGain,
		&r.Result, &r.BestRow, &r.BestCol, &durationUS, &createdAt,
	); err != nil {
		return Run{}, err
	}
	r.Duration = time.Duration(durationUS) * time.Microsecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RecentRuns retrieves the most recent runs across all sources.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsBySource retrieves the top runs for a source, ordered by result descending.
func (s *Store) RunsBySource(source string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE source = ?
		 ORDER BY result DESC, id ASC
		 LIMIT ?`,
		source, limit,
	)
}

// RunByID retrieves a run by its UUID. Returns nil, nil if not found.
func (s *Store) RunByID(runID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// BestResult returns the highest result recorded for a source.
// Returns 0 if no runs exist.
func (s *Store) BestResult(source string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(result) FROM runs WHERE source = ?",
		source,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best result: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearRuns deletes all runs for the given source. An empty source deletes
// every run.
func (s *Store) ClearRuns(source string) error {
	query, args := "DELETE FROM runs WHERE source = ?", []any{source}
	if source == "" {
		query, args = "DELETE FROM runs", nil
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SourceStats contains aggregated statistics for one source.
type SourceStats struct {
	Source     string
	Runs       int
	BestResult int
	AvgResult  float64
	TotalCells int64
	LastRun    time.Time
}

// Stats retrieves statistics for every source that has runs, ordered by source.
func (s *Store) Stats() ([]SourceStats, error) {
	rows, err := s.db.Query(
		`SELECT source, COUNT(*), MAX(result), AVG(result), SUM(grid_rows * grid_cols), MAX(created_at)
		 FROM runs
		 GROUP BY source
		 ORDER BY source`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var st SourceStats
		var lastRun any
		if err := rows.Scan(&st.Source, &st.Runs, &st.BestResult, &st.AvgResult, &st.TotalCells, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Sources lists every source with at least one run, sorted.
func (s *Store) Sources() ([]string, error) {
	stats, err := s.Stats()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(stats))
	for i, st := range stats {
		out[i] = st.Source
	}
	return out, nil
}
