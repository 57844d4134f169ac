package game

// Tuning holds the knobs that are not part of the difficulty table. The
// zero value is not useful; start from DefaultTuning.
type Tuning struct {
	TickRate      int     // ticks per second
	BaseTimeLimit float64 // seconds, before the difficulty multiplier
	SightStep     float64 // LOS sample spacing in pixels
	PatrolRange   float64 // pixels covered by each patrol leg

	EMPDuration          float64 // seconds
	SpeedBoostMul        float64
	SpeedBoostDuration   float64 // seconds
	InvisibilityDuration float64 // seconds
}

// DefaultTuning returns the values the shipped campaign is balanced for.
func DefaultTuning() Tuning {
	return Tuning{
		TickRate:             60,
		BaseTimeLimit:        120,
		SightStep:            DefaultSightStep,
		PatrolRange:          220,
		EMPDuration:          3,
		SpeedBoostMul:        1.8,
		SpeedBoostDuration:   5,
		InvisibilityDuration: 5,
	}
}

// Dt returns the duration of one tick in seconds.
func (t Tuning) Dt() float64 {
	if t.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(t.TickRate)
}
