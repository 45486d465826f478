// Package storage provides SQLite-based persistence for finished runs and
// stage clear times.
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
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished game: from the first stage played until game over or
// victory.
type Run struct {
	ID        int64
	RunID     string // uuid shared with the run's stage clears
	Player    string // local user name or SSH user
	Score     int
	Stage     int // last stage reached
	Victory   bool
	Duration  time.Duration
	CreatedAt time.Time
}

// StageClear is the time a run needed to clear one stage.
type StageClear struct {
	RunID     string
	Stage     int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
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
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			stage INTEGER NOT NULL,
			victory INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS stage_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			stage INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_stage_clears_stage ON stage_clears(stage, elapsed_ms);
		CREATE INDEX IF NOT EXISTS idx_stage_clears_run ON stage_clears(run_id);
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

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// SaveRun records a finished run. An empty RunID is filled in.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		r.RunID = NewRunID()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return 0, fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (run_id, player, score, stage, victory, duration_ms) VALUES (?, ?, ?, ?, ?, ?)",
		r.RunID, r.Player, r.Score, r.Stage, boolInt(r.Victory), r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveStageClear records how long a run took to clear a stage.
func (s *Store) SaveStageClear(runID string, stage int, elapsed time.Duration) error {
	_, err := s.db.Exec(
		"INSERT INTO stage_clears (run_id, stage, elapsed_ms) VALUES (?, ?, ?)",
		runID, stage, elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stage clear: %w", err)
	}
	return nil
}

// TopRuns retrieves the best runs, ordered by score then stage reached.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, score, stage, victory, duration_ms, created_at
		 FROM runs
		 ORDER BY score DESC, stage DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMs, victory int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Player, &r.Score, &r.Stage, &victory, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Victory = victory != 0
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// StageClears lists the clears recorded for one run in stage order.
func (s *Store) StageClears(runID string) ([]StageClear, error) {
	rows, err := s.db.Query(
		`SELECT run_id, stage, elapsed_ms, created_at
		 FROM stage_clears
		 WHERE run_id = ?
		 ORDER BY stage ASC, id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stage clears: %w", err)
	}
	defer rows.Close()

	var clears []StageClear
	for rows.Next() {
		var c StageClear
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(&c.RunID, &c.Stage, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		clears = append(clears, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return clears, nil
}

// BestClear returns the fastest recorded clear of a stage. ok is false when
// the stage was never cleared.
func (s *Store) BestClear(stage int) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(elapsed_ms) FROM stage_clears WHERE stage = ?",
		stage,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best clear: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// HighScore returns the highest run score, 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes every run and stage clear.
func (s *Store) ClearRuns() error {
	for _, table := range []string{"stage_clears", "runs"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	RunsCount  int
	HighScore  int
	AvgScore   float64
	BestStage  int
	Victories  int
	LastPlayed time.Time
}

// GetStats aggregates every recorded run.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(stage), 0), COALESCE(SUM(victory), 0)
		 FROM runs`,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.BestStage, &stats.Victories)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		"SELECT created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1",
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
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
