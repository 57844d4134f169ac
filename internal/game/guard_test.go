package game

import (
	"math"
	"testing"
)

func TestGuardAlarm_NewlyAndRefresh(t *testing.T) {
	g := NewGuard(0, Vec2{0, 0}, PatrolHorizontal, 220, 260, 2)
	if !g.Alarm(Vec2{50, 0}, TriggerSight) {
		t.Fatal("first alarm should report a new alert")
	}
	if g.AlertTimer != SightAlertTime || g.Trigger != TriggerSight {
		t.Fatalf("expected sight countdown %.1f, got %.2f (%s)", SightAlertTime, g.AlertTimer, g.Trigger)
	}
	g.AlertTimer = 0.5
	if g.Alarm(Vec2{80, 0}, TriggerBroadcast) {
		t.Fatal("alarm on an alerted guard should not report a new alert")
	}
	if g.AlertTimer != BroadcastAlertTime || g.ChaseTarget != (Vec2{80, 0}) {
		t.Fatalf("refresh should reset timer and target, got %.2f %+v", g.AlertTimer, g.ChaseTarget)
	}
}

func TestGuardChase_BoostedSpeedAndFacing(t *testing.T) {
	g := NewGuard(0, Vec2{0, 0}, PatrolVertical, 220, 260, 2)
	g.Alarm(Vec2{100, 0}, TriggerSound)
	g.Update(testDt)
	if math.Abs(g.Pos.X-3.2) > 1e-9 || g.Pos.Y != 0 {
		t.Fatalf("expected chase step to (3.2,0), got (%.3f,%.3f)", g.Pos.X, g.Pos.Y)
	}
	if g.Facing != (Vec2{1, 0}) {
		t.Fatalf("facing should follow the chase, got %+v", g.Facing)
	}
}

func TestGuardChase_StopsOnTarget(t *testing.T) {
	g := NewGuard(0, Vec2{0, 0}, PatrolHorizontal, 220, 260, 2)
	g.Alarm(Vec2{10, 0}, TriggerSight)
	for i := 0; i < 10; i++ {
		g.Update(testDt)
	}
	if g.Pos != (Vec2{10, 0}) {
		t.Fatalf("expected guard parked on target, got %+v", g.Pos)
	}
}

func TestGuardCountdown_StandsDownAfterTimer(t *testing.T) {
	g := NewGuard(0, Vec2{0, 0}, PatrolHorizontal, 220, 260, 2)
	g.Alarm(Vec2{0, 0}, TriggerSight)
	ticks := 0
	for g.Alert && ticks < 1000 {
		g.Update(testDt)
		ticks++
	}
	// 2.5 s at 60 ticks per second, give or take float rounding.
	if ticks < 149 || ticks > 151 {
		t.Fatalf("expected stand-down after ~150 ticks, got %d", ticks)
	}
	if g.Trigger != TriggerNone || g.AlertTimer != 0 {
		t.Fatalf("stand-down should clear trigger and timer, got %s %.2f", g.Trigger, g.AlertTimer)
	}
}
