package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

// ErrInvalid is wrapped by Validate and Load for out-of-range values.
var ErrInvalid = errors.New("invalid config")

// Score backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config is the on-disk settings file. Zero-valued fields in the file keep
// their defaults.
type Config struct {
	TickRate      int     `yaml:"tick_rate"`
	BaseTimeLimit float64 `yaml:"base_time_limit"`
	SightStep     float64 `yaml:"sight_step"`
	PatrolRange   float64 `yaml:"patrol_range"`

	EMPDuration          float64 `yaml:"emp_duration"`
	SpeedBoostMul        float64 `yaml:"speed_boost_mul"`
	SpeedBoostDuration   float64 `yaml:"speed_boost_duration"`
	InvisibilityDuration float64 `yaml:"invisibility_duration"`

	Difficulty   string `yaml:"difficulty"`
	ScoreBackend string `yaml:"score_backend"`
	ScorePath    string `yaml:"score_path"`
	LevelsFile   string `yaml:"levels_file,omitempty"`
	Audio        bool   `yaml:"audio"`
}

// Default returns the settings the game ships with.
func Default() Config {
	t := game.DefaultTuning()
	return Config{
		TickRate:             t.TickRate,
		BaseTimeLimit:        t.BaseTimeLimit,
		SightStep:            t.SightStep,
		PatrolRange:          t.PatrolRange,
		EMPDuration:          t.EMPDuration,
		SpeedBoostMul:        t.SpeedBoostMul,
		SpeedBoostDuration:   t.SpeedBoostDuration,
		InvisibilityDuration: t.InvisibilityDuration,
		Difficulty:           game.DefaultDifficulty,
		ScoreBackend:         BackendYAML,
		ScorePath:            "highscores.yaml",
		Audio:                true,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be > 0", ErrInvalid)
	case c.BaseTimeLimit <= 0:
		return fmt.Errorf("%w: base_time_limit must be > 0", ErrInvalid)
	case c.SightStep <= 0:
		return fmt.Errorf("%w: sight_step must be > 0", ErrInvalid)
	case c.PatrolRange < 0:
		return fmt.Errorf("%w: patrol_range must be >= 0", ErrInvalid)
	case c.ScoreBackend != BackendYAML && c.ScoreBackend != BackendSQLite:
		return fmt.Errorf("%w: unknown score_backend %q", ErrInvalid, c.ScoreBackend)
	}
	if _, err := game.DifficultyByName(c.Difficulty); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Tuning converts the simulation fields for game.NewRun.
func (c Config) Tuning() game.Tuning {
	return game.Tuning{
		TickRate:             c.TickRate,
		BaseTimeLimit:        c.BaseTimeLimit,
		SightStep:            c.SightStep,
		PatrolRange:          c.PatrolRange,
		EMPDuration:          c.EMPDuration,
		SpeedBoostMul:        c.SpeedBoostMul,
		SpeedBoostDuration:   c.SpeedBoostDuration,
		InvisibilityDuration: c.InvisibilityDuration,
	}
}
