package game

import (
	"errors"
	"fmt"
)

// ErrUnknownDifficulty is returned when a difficulty name is not in the table.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty is one row of the fixed difficulty table. Guards and the run
// controller share it read-only for the whole run.
type Difficulty struct {
	Name            string
	VisionRadius    float64 // pixels
	DetectThreshold float64 // meter units; the meter fills at 1.8/s upright, 0.8/s crouched
	GuardSpeed      float64 // pixels per tick
	EMPAvailable    bool
	TimeMult        float64 // scales the base time limit
}

var difficultyTable = [...]Difficulty{
	{Name: "Easy", VisionRadius: 220, DetectThreshold: 1.6, GuardSpeed: 1.7, EMPAvailable: true, TimeMult: 1.5},
	{Name: "Medium", VisionRadius: 260, DetectThreshold: 1.1, GuardSpeed: 2.2, EMPAvailable: true, TimeMult: 1.0},
	{Name: "Hard", VisionRadius: 300, DetectThreshold: 0.85, GuardSpeed: 2.7, EMPAvailable: true, TimeMult: 0.8},
	{Name: "Extreme", VisionRadius: 330, DetectThreshold: 0.6, GuardSpeed: 3.1, EMPAvailable: false, TimeMult: 0.6},
	{Name: "Nightmare", VisionRadius: 360, DetectThreshold: 0.4, GuardSpeed: 3.5, EMPAvailable: false, TimeMult: 0.4},
}

// DefaultDifficulty is selected when nothing else has been chosen.
const DefaultDifficulty = "Medium"

// Difficulties returns the table in menu order. The slice is a copy.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyTable))
	copy(out, difficultyTable[:])
	return out
}

// DifficultyNames returns every known difficulty name in menu order.
func DifficultyNames() []string {
	names := make([]string, len(difficultyTable))
	for i, d := range difficultyTable {
		names[i] = d.Name
	}
	return names
}

// DifficultyByName looks up a profile by its exact name.
func DifficultyByName(name string) (Difficulty, error) {
	for _, d := range difficultyTable {
		if d.Name == name {
			return d, nil
		}
	}
	return Difficulty{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
}
