package game

import "testing"

func TestFootstep_UprightOnly(t *testing.T) {
	p := NewPlayer(Vec2{10, 10})
	snd, ok := footstep(p, 1.2)
	if !ok || snd.Radius != FootstepRadius || snd.Source != SoundFootstep {
		t.Fatalf("upright movement should make a %.0f footstep, got %+v ok=%v", FootstepRadius, snd, ok)
	}
	if _, ok := footstep(p, 0.4); ok {
		t.Fatal("movement under the threshold should be silent")
	}
	p.Crouch = true
	if _, ok := footstep(p, 2); ok {
		t.Fatal("crouched movement should be silent")
	}
}

func TestPropagateSound_AlertsListenerInRange(t *testing.T) {
	g := NewGuard(0, Vec2{200, 100}, PatrolHorizontal, 220, 260, 2)
	snd := Sound{Origin: Vec2{100, 100}, Radius: FootstepRadius, Source: SoundFootstep}
	alerted := PropagateSound(snd, []*Guard{g}, nil, DefaultSightStep)
	if len(alerted) != 1 || !g.Alert {
		t.Fatal("guard 100px away should hear a 130 footstep")
	}
	if g.ChaseTarget != snd.Origin || g.AlertTimer != SoundAlertTime || g.Trigger != TriggerSound {
		t.Fatalf("expected chase to origin for %.1fs, got %+v %.2f %s",
			SoundAlertTime, g.ChaseTarget, g.AlertTimer, g.Trigger)
	}
}

func TestPropagateSound_OutOfRange(t *testing.T) {
	g := NewGuard(0, Vec2{240, 100}, PatrolHorizontal, 220, 260, 2)
	snd := Sound{Origin: Vec2{100, 100}, Radius: FootstepRadius}
	if len(PropagateSound(snd, []*Guard{g}, nil, DefaultSightStep)) != 0 || g.Alert {
		t.Fatal("guard 140px away should not hear a 130 footstep")
	}
}

func TestPropagateSound_WallOccludes(t *testing.T) {
	g := NewGuard(0, Vec2{200, 100}, PatrolHorizontal, 220, 260, 2)
	walls := []Rect{{X: 140, Y: 0, W: 20, H: 200}}
	snd := Sound{Origin: Vec2{100, 100}, Radius: FootstepRadius}
	if len(PropagateSound(snd, []*Guard{g}, walls, DefaultSightStep)) != 0 {
		t.Fatal("a wall between source and guard should block the sound")
	}
}

func TestPropagateSound_IgnoresAlertedGuards(t *testing.T) {
	g := NewGuard(0, Vec2{200, 100}, PatrolHorizontal, 220, 260, 2)
	g.Alarm(Vec2{500, 500}, TriggerBroadcast)
	snd := Sound{Origin: Vec2{100, 100}, Radius: EMPSoundRadius, Source: SoundEMP}
	if len(PropagateSound(snd, []*Guard{g}, nil, DefaultSightStep)) != 0 {
		t.Fatal("already alerted guards are not re-alerted by noise")
	}
	if g.ChaseTarget != (Vec2{500, 500}) || g.AlertTimer != BroadcastAlertTime {
		t.Fatal("noise must not refresh an alerted guard")
	}
}

func TestBroadcastAlert_TargetsBroadcasterPosition(t *testing.T) {
	a := NewGuard(0, Vec2{100, 100}, PatrolHorizontal, 220, 260, 2)
	b := NewGuard(1, Vec2{180, 100}, PatrolVertical, 220, 260, 2)
	c := NewGuard(2, Vec2{300, 100}, PatrolBox, 220, 260, 2)
	guards := []*Guard{a, b, c}

	a.Alarm(Vec2{90, 100}, TriggerSight)
	relayed := BroadcastAlert(a, guards)

	if len(relayed) != 1 || relayed[0] != b {
		t.Fatalf("expected only B relayed, got %d guards", len(relayed))
	}
	if b.ChaseTarget != (Vec2{100, 100}) {
		t.Fatalf("B should chase A's position (100,100), got %+v", b.ChaseTarget)
	}
	if b.AlertTimer != BroadcastAlertTime || b.Trigger != TriggerBroadcast {
		t.Fatalf("B should have the 3.0s broadcast countdown, got %.2f %s", b.AlertTimer, b.Trigger)
	}
	if c.Alert {
		t.Fatal("C at 200px is outside the broadcast radius")
	}
	if a.Trigger != TriggerSight {
		t.Fatal("A must not be affected by its own broadcast")
	}

	a.Pos = Vec2{0, 0}
	if b.ChaseTarget != (Vec2{100, 100}) {
		t.Fatal("B's target must be a copy, not follow A")
	}
}

func TestBroadcastAlert_RadiusIsStrict(t *testing.T) {
	a := NewGuard(0, Vec2{0, 0}, PatrolHorizontal, 220, 260, 2)
	b := NewGuard(1, Vec2{BroadcastRadius, 0}, PatrolHorizontal, 220, 260, 2)
	BroadcastAlert(a, []*Guard{a, b})
	if b.Alert {
		t.Fatal("a guard exactly at the broadcast radius is not reached")
	}
}

func TestBroadcastAlert_RetargetsAlertedGuard(t *testing.T) {
	a := NewGuard(0, Vec2{0, 0}, PatrolHorizontal, 220, 260, 2)
	b := NewGuard(1, Vec2{50, 0}, PatrolHorizontal, 220, 260, 2)
	b.Alarm(Vec2{400, 400}, TriggerSound)
	b.AlertTimer = 0.2
	if relayed := BroadcastAlert(a, []*Guard{a, b}); len(relayed) != 0 {
		t.Fatal("already alerted guards are not reported as newly relayed")
	}
	if b.ChaseTarget != (Vec2{0, 0}) || b.AlertTimer != BroadcastAlertTime {
		t.Fatalf("relay should still re-target B, got %+v %.2f", b.ChaseTarget, b.AlertTimer)
	}
}
