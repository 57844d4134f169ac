package scores

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Stealth-Sense/internal/logger"
)

// FileStore keeps the table in a small YAML file.
type FileStore struct {
	path string
	log  *logrus.Entry
}

// NewFileStore returns a store backed by path. Nothing is read until Best.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, log: logger.Component("scores").WithField("path", path)}
}

// Best reads the file. A missing file is silent; a corrupt one is logged
// and also reads as zeros.
func (s *FileStore) Best() (Table, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.WithError(err).Warn("high scores unreadable, starting from zero")
		}
		return ZeroTable(), nil
	}
	var t Table
	if err := yaml.Unmarshal(b, &t); err != nil {
		s.log.WithError(err).Warn("high scores corrupt, starting from zero")
		return ZeroTable(), nil
	}
	return t.fill(), nil
}

// Submit rewrites the file only when rec beats the stored best.
func (s *FileStore) Submit(rec RunRecord) (bool, error) {
	t, err := s.Best()
	if err != nil {
		return false, err
	}
	if rec.Total <= t[rec.Difficulty] {
		return false, nil
	}
	t[rec.Difficulty] = rec.Total
	if err := s.write(t); err != nil {
		return false, err
	}
	s.log.WithFields(logrus.Fields{
		"difficulty": rec.Difficulty,
		"total":      rec.Total,
	}).Info("new high score")
	return true, nil
}

func (s *FileStore) write(t Table) error {
	out, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create score directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, out, 0o644); err != nil {
		return fmt.Errorf("write high scores %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
