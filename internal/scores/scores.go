// Package scores persists the best run total per difficulty.
package scores

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

// Table maps difficulty name to best run total.
type Table map[string]int

// ZeroTable returns a table with every known difficulty at 0.
func ZeroTable() Table {
	t := make(Table, len(game.DifficultyNames()))
	for _, name := range game.DifficultyNames() {
		t[name] = 0
	}
	return t
}

// fill adds missing difficulties and clamps negatives.
func (t Table) fill() Table {
	out := ZeroTable()
	for k, v := range t {
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}

// RunRecord describes one finished run.
type RunRecord struct {
	ID         uuid.UUID
	Difficulty string
	Total      int
	Levels     int
	FinishedAt time.Time
}

// NewRunRecord stamps a finished run with a fresh ID and the current time.
func NewRunRecord(difficulty string, total, levels int) RunRecord {
	return RunRecord{
		ID:         uuid.New(),
		Difficulty: difficulty,
		Total:      total,
		Levels:     levels,
		FinishedAt: time.Now().UTC(),
	}
}

// Store is a high-score backend.
type Store interface {
	// Best returns the table. Missing or unreadable data reads as zeros.
	Best() (Table, error)
	// Submit records a finished run and reports whether it beat the stored
	// best for its difficulty.
	Submit(rec RunRecord) (bool, error)
	Close() error
}

// Open returns the backend named by kind ("yaml" or "sqlite") at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "yaml", "":
		return NewFileStore(path), nil
	case "sqlite":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown score backend %q", kind)
	}
}
