package scores

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/Garsondee/Stealth-Sense/internal/logger"
)

// SQLiteStore keeps the best table plus a history of every finished run.
type SQLiteStore struct {
	db  *sql.DB
	log *logrus.Entry
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create score directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}
	return &SQLiteStore{db: db, log: logger.Component("scores").WithField("path", path)}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			difficulty TEXT PRIMARY KEY,
			best INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL,
			total INTEGER NOT NULL,
			levels INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);`,
	}
	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Best reads the table. Query failures are logged and read as zeros.
func (s *SQLiteStore) Best() (Table, error) {
	rows, err := s.db.Query(`SELECT difficulty, best FROM high_scores`)
	if err != nil {
		s.log.WithError(err).Warn("high scores unreadable, starting from zero")
		return ZeroTable(), nil
	}
	defer rows.Close()

	t := Table{}
	for rows.Next() {
		var name string
		var best int
		if err := rows.Scan(&name, &best); err != nil {
			s.log.WithError(err).Warn("high score row corrupt, skipping")
			continue
		}
		t[name] = best
	}
	if err := rows.Err(); err != nil {
		s.log.WithError(err).Warn("high scores incomplete")
	}
	return t.fill(), nil
}

// Submit stores rec in the history and raises the best when beaten.
func (s *SQLiteStore) Submit(rec RunRecord) (bool, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		`INSERT INTO runs (run_id, difficulty, total, levels, finished_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Difficulty, rec.Total, rec.Levels, rec.FinishedAt,
	); err != nil {
		return false, fmt.Errorf("insert run: %w", err)
	}

	var best int
	err = tx.QueryRow(`SELECT best FROM high_scores WHERE difficulty = ?`, rec.Difficulty).Scan(&best)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("read best: %w", err)
	}
	improved := rec.Total > best
	if improved {
		if _, err := tx.Exec(
			`INSERT INTO high_scores (difficulty, best) VALUES (?, ?)
			 ON CONFLICT(difficulty) DO UPDATE SET best = excluded.best`,
			rec.Difficulty, rec.Total,
		); err != nil {
			return false, fmt.Errorf("update best: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit submit: %w", err)
	}
	if improved {
		s.log.WithFields(logrus.Fields{
			"difficulty": rec.Difficulty,
			"total":      rec.Total,
			"run":        rec.ID.String(),
		}).Info("new high score")
	}
	return improved, nil
}

// History returns the most recent runs, newest first.
func (s *SQLiteStore) History(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, difficulty, total, levels, finished_at FROM runs
		 ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var id string
		if err := rows.Scan(&id, &rec.Difficulty, &rec.Total, &rec.Levels, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("run id %q: %w", id, err)
		}
		rec.ID = parsed
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
