package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

// ErrNoLevels is returned when a levels file holds no levels.
var ErrNoLevels = errors.New("levels file is empty")

// levelFile is the YAML layout of a custom campaign:
//
//	levels:
//	  - name: Vault
//	    grid:
//	      - "#####"
//	      - "#P.E#"
//	      - "#####"
type levelFile struct {
	Levels []struct {
		Name string   `yaml:"name"`
		Grid []string `yaml:"grid"`
	} `yaml:"levels"`
}

// Levels returns the campaign: the built-in levels, or the ones in
// LevelsFile when it is set.
func (c Config) Levels() ([]*game.Level, error) {
	if c.LevelsFile == "" {
		return game.BuiltinLevels(), nil
	}
	return LoadLevels(c.LevelsFile)
}

// LoadLevels parses a custom campaign file.
func LoadLevels(path string) ([]*game.Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	var lf levelFile
	if err := yaml.Unmarshal(b, &lf); err != nil {
		return nil, fmt.Errorf("parse levels %s: %w", path, err)
	}
	if len(lf.Levels) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoLevels)
	}
	out := make([]*game.Level, 0, len(lf.Levels))
	for i, l := range lf.Levels {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		out = append(out, game.ParseLevel(name, l.Grid))
	}
	return out, nil
}
