// Package storage provides SQLite-based persistence for run history and
// meta progression. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/overtime-games/overtime/internal/meta"
	"github.com/overtime-games/overtime/internal/sim"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one persisted run record.
type RunEntry struct {
	ID           int64
	RunID        string
	DurationMS   float64
	EndReason    string
	VP           int
	TotalAP      float64
	PeakOP       float64
	Clicks       int
	AvgKPM       float64
	PeakWorkload float64
	MinEnergy    float64
	Events       []string
	CreatedAt    time.Time
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
			run_id TEXT NOT NULL,
			duration_ms REAL NOT NULL,
			end_reason TEXT NOT NULL,
			vp INTEGER NOT NULL,
			total_ap REAL NOT NULL DEFAULT 0,
			peak_op REAL NOT NULL DEFAULT 0,
			clicks INTEGER NOT NULL DEFAULT 0,
			avg_kpm REAL NOT NULL DEFAULT 0,
			peak_workload REAL NOT NULL DEFAULT 0,
			min_energy REAL NOT NULL DEFAULT 0,
			events TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_vp ON runs(vp DESC);

		CREATE TABLE IF NOT EXISTS meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			rank INTEGER NOT NULL DEFAULT 1,
			rank_title TEXT NOT NULL DEFAULT 'Intern',
			total_vp INTEGER NOT NULL DEFAULT 0,
			available_vp INTEGER NOT NULL DEFAULT 0,
			upgrades TEXT NOT NULL DEFAULT ''
		);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(stats sim.RunStats) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, duration_ms, end_reason, vp, total_ap, peak_op, clicks,
		  avg_kpm, peak_workload, min_energy, events)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.RunID, stats.DurationMS, string(stats.EndReason), stats.VP,
		stats.TotalAP, stats.PeakOP, stats.Clicks, stats.AvgKPM,
		stats.PeakWorkload, stats.MinEnergy, strings.Join(stats.Events, ","),
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

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, duration_ms, end_reason, vp, total_ap, peak_op,
		        clicks, avg_kpm, peak_workload, min_energy, events, created_at
		 FROM runs
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

func scanRun(rows *sql.Rows) (RunEntry, error) {
	var e RunEntry
	var events string
	var createdAt any
	if err := rows.Scan(&e.ID, &e.RunID, &e.DurationMS, &e.EndReason, &e.VP,
		&e.TotalAP, &e.PeakOP, &e.Clicks, &e.AvgKPM, &e.PeakWorkload,
		&e.MinEnergy, &events, &createdAt); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	if events != "" {
		e.Events = strings.Split(events, ",")
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}

	return e, nil
}

// BestVP returns the highest single-run VP payout.
// Returns 0 if no runs exist.
func (s *Store) BestVP() (int, error) {
	var vp sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(vp) FROM runs").Scan(&vp)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best VP: %w", err)
	}

	if !vp.Valid {
		return 0, nil
	}

	return int(vp.Int64), nil
}

// TotalVP returns the sum of VP paid out across all recorded runs.
func (s *Store) TotalVP() (int, error) {
	var vp sql.NullInt64
	err := s.db.QueryRow("SELECT SUM(vp) FROM runs").Scan(&vp)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query total VP: %w", err)
	}

	if !vp.Valid {
		return 0, nil
	}

	return int(vp.Int64), nil
}

// RunCount returns the number of recorded runs.
func (s *Store) RunCount() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// LoadMeta loads the meta-progression state, returning a fresh state if
// none has been saved yet.
func (s *Store) LoadMeta() (meta.State, error) {
	var st meta.State
	var upgrades string

	err := s.db.QueryRow(
		"SELECT rank, rank_title, total_vp, available_vp, upgrades FROM meta WHERE id = 1",
	).Scan(&st.Rank, &st.RankTitle, &st.TotalVP, &st.AvailableVP, &upgrades)

	if err == sql.ErrNoRows {
		return meta.NewState(), nil
	}
	if err != nil {
		return st, fmt.Errorf("storage: cannot load meta state: %w", err)
	}

	if upgrades != "" {
		st.Upgrades = strings.Split(upgrades, ",")
	}

	return st, nil
}

// SaveMeta persists the meta-progression state.
func (s *Store) SaveMeta(st meta.State) error {
	_, err := s.db.Exec(
		`INSERT INTO meta (id, rank, rank_title, total_vp, available_vp, upgrades)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   rank = excluded.rank,
		   rank_title = excluded.rank_title,
		   total_vp = excluded.total_vp,
		   available_vp = excluded.available_vp,
		   upgrades = excluded.upgrades`,
		st.Rank, st.RankTitle, st.TotalVP, st.AvailableVP,
		strings.Join(st.Upgrades, ","),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save meta state: %w", err)
	}
	return nil
}
