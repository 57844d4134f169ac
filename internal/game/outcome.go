package game

import "errors"

// ErrInvalidTransition is returned when a command does not apply to the
// run's current state.
var ErrInvalidTransition = errors.New("invalid run transition")

// RunState is the controller-level state machine.
type RunState int

const (
	StateDifficultySelect RunState = iota
	StateBriefing
	StatePlaying
	StateCaught
	StateTimedOut
	StateLevelComplete
	StateRunComplete
)

func (s RunState) String() string {
	switch s {
	case StateDifficultySelect:
		return "difficulty_select"
	case StateBriefing:
		return "briefing"
	case StatePlaying:
		return "playing"
	case StateCaught:
		return "caught"
	case StateTimedOut:
		return "timed_out"
	case StateLevelComplete:
		return "level_complete"
	case StateRunComplete:
		return "run_complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level attempt has ended.
func (s RunState) Terminal() bool {
	switch s {
	case StateCaught, StateTimedOut, StateLevelComplete, StateRunComplete:
		return true
	default:
		return false
	}
}

// Retryable reports whether the current level can be replayed from s.
func (s RunState) Retryable() bool {
	return s == StateCaught || s == StateTimedOut
}

// LevelScore is the award for finishing a level with remaining seconds left
// on the clock and the meter at detection. Never negative.
func LevelScore(remaining, detection float64) int {
	if remaining < 0 {
		remaining = 0
	}
	return max(0, int(1000+remaining*5-detection*50))
}
