package game

import "testing"

func TestDetectionMeter_Rates(t *testing.T) {
	m := NewDetectionMeter(1.1)
	m.Update(true, false, 1)
	if !approx(m.Value, 1.1) {
		t.Fatalf("upright exposure for 1s should clamp to threshold, got %.4f", m.Value)
	}

	m = NewDetectionMeter(10)
	m.Update(true, false, 1)
	if !approx(m.Value, 1.8) {
		t.Fatalf("upright: expected 1.8/s, got %.4f", m.Value)
	}
	m.Update(true, true, 1)
	if !approx(m.Value, 2.6) {
		t.Fatalf("crouched: expected +0.8/s, got %.4f", m.Value)
	}
	m.Update(false, false, 1)
	if !approx(m.Value, 1.6) {
		t.Fatalf("unseen: expected -1.0/s, got %.4f", m.Value)
	}
}

func TestDetectionMeter_FloorAtZero(t *testing.T) {
	m := NewDetectionMeter(1.1)
	m.Value = 0.01
	m.Update(false, false, testDt)
	if m.Value != 0 {
		t.Fatalf("meter should floor at 0, got %.4f", m.Value)
	}
}

func TestDetectionMeter_ThresholdEdge(t *testing.T) {
	m := NewDetectionMeter(0.85)
	m.Value = 0.85 - 1e-9
	if m.Tripped() {
		t.Fatal("just below threshold must not trip")
	}
	m.Value = 0.85
	if !m.Tripped() {
		t.Fatal("exactly at threshold must trip")
	}
}

func TestDetectionMeter_StaysInRange(t *testing.T) {
	m := NewDetectionMeter(0.4)
	for i := 0; i < 600; i++ {
		seen := (i/37)%2 == 0
		m.Update(seen, i%3 == 0, testDt)
		if m.Value < 0 || m.Value > m.Threshold {
			t.Fatalf("tick %d: value %.4f outside [0, %.2f]", i, m.Value, m.Threshold)
		}
	}
}

func TestDetectionMeter_TripsWithinTick(t *testing.T) {
	m := NewDetectionMeter(1.1)
	m.Value = 1.1 - 0.01
	if !m.Update(true, false, testDt) {
		t.Fatal("crossing the threshold should trip on the same update")
	}
	if m.Ratio() != 1 {
		t.Fatalf("ratio at threshold should be 1, got %.3f", m.Ratio())
	}
}
