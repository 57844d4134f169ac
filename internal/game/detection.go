package game

const (
	exposureRateCrouched = 0.8 // meter units per second while seen crouched
	exposureRateUpright  = 1.8 // meter units per second while seen upright
	exposureDecay        = 1.0 // meter units per second while unseen
)

// DetectionMeter accumulates exposure. Value stays in [0, Threshold].
type DetectionMeter struct {
	Value     float64
	Threshold float64
}

// NewDetectionMeter returns an empty meter that trips at threshold.
func NewDetectionMeter(threshold float64) DetectionMeter {
	return DetectionMeter{Threshold: threshold}
}

// Update applies one tick of exposure (seen) or recovery (not seen) and
// reports whether the meter is now full.
func (m *DetectionMeter) Update(seen, crouched bool, dt float64) bool {
	if seen {
		rate := exposureRateUpright
		if crouched {
			rate = exposureRateCrouched
		}
		m.Value += rate * dt
		if m.Value > m.Threshold {
			m.Value = m.Threshold
		}
	} else {
		m.Value -= exposureDecay * dt
		if m.Value < 0 {
			m.Value = 0
		}
	}
	return m.Tripped()
}

// Tripped reports whether the meter has reached its threshold.
func (m *DetectionMeter) Tripped() bool {
	return m.Value >= m.Threshold
}

// Ratio returns the fill fraction in [0,1] for HUD bars.
func (m *DetectionMeter) Ratio() float64 {
	if m.Threshold <= 0 {
		return 1
	}
	return clamp(m.Value/m.Threshold, 0, 1)
}

// Reset empties the meter.
func (m *DetectionMeter) Reset() {
	m.Value = 0
}
