// Package records keeps a history of finished runs in SQLite.
package records

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrEmptyRun = errors.New("records: run has no level times")

// Run is one completed playthrough.
type Run struct {
	ID         int64
	FinishedAt time.Time
	Total      float64
	Deaths     int
	LevelTimes []float64
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path. A leading ~ expands to the
// home directory and missing parent directories are created.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("records: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("records: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("records: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("records: connect %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("records: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			finished_at INTEGER NOT NULL,
			total REAL NOT NULL,
			deaths INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_total ON runs(total);

		CREATE TABLE IF NOT EXISTS run_levels (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			level INTEGER NOT NULL,
			seconds REAL NOT NULL,
			PRIMARY KEY (run_id, level)
		);
	`)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores r and returns its new ID. A zero FinishedAt is set to now.
func (s *Store) Save(r Run) (int64, error) {
	if len(r.LevelTimes) == 0 {
		return 0, ErrEmptyRun
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("records: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO runs (finished_at, total, deaths) VALUES (?, ?, ?)",
		r.FinishedAt.UnixMilli(), r.Total, r.Deaths)
	if err != nil {
		return 0, fmt.Errorf("records: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("records: run id: %w", err)
	}
	for i, secs := range r.LevelTimes {
		if _, err := tx.Exec("INSERT INTO run_levels (run_id, level, seconds) VALUES (?, ?, ?)", id, i+1, secs); err != nil {
			return 0, fmt.Errorf("records: save level %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("records: commit: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]Run, error) {
	return s.query("ORDER BY finished_at DESC, id DESC", limit)
}

// Best returns up to limit runs, fastest first. limit <= 0 means all.
func (s *Store) Best(limit int) ([]Run, error) {
	return s.query("ORDER BY total ASC, id ASC", limit)
}

func (s *Store) query(order string, limit int) ([]Run, error) {
	q := "SELECT id, finished_at, total, deaths FROM runs " + order
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("records: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		if err := rows.Scan(&r.ID, &ms, &r.Total, &r.Deaths); err != nil {
			return nil, fmt.Errorf("records: scan run: %w", err)
		}
		r.FinishedAt = time.UnixMilli(ms)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("records: read runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		if runs[i].LevelTimes, err = s.levelTimes(runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) levelTimes(id int64) ([]float64, error) {
	rows, err := s.db.Query("SELECT seconds FROM run_levels WHERE run_id = ? ORDER BY level", id)
	if err != nil {
		return nil, fmt.Errorf("records: query levels of run %d: %w", id, err)
	}
	defer rows.Close()
	var out []float64
	for rows.Next() {
		var secs float64
		if err := rows.Scan(&secs); err != nil {
			return nil, fmt.Errorf("records: scan level: %w", err)
		}
		out = append(out, secs)
	}
	return out, rows.Err()
}
