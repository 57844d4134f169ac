package game

import "testing"

// newLookingGuard places a guard at pos facing +X with the given vision.
func newLookingGuard(pos Vec2, vision float64) *Guard {
	return NewGuard(0, pos, PatrolHorizontal, 220, vision, 2)
}

func TestSeesPlayer_InConeAndRange(t *testing.T) {
	g := newLookingGuard(Vec2{100, 100}, 260)
	p := NewPlayer(Vec2{250, 100})
	if !g.SeesPlayer(p, Senses{}) {
		t.Fatal("player straight ahead within range should be seen")
	}
}

func TestSeesPlayer_RangeGate(t *testing.T) {
	g := newLookingGuard(Vec2{0, 0}, 260)
	p := NewPlayer(Vec2{300, 0})
	if g.SeesPlayer(p, Senses{}) {
		t.Fatal("player at 300 must not be seen with vision radius 260")
	}
	g.VisionRadius = 300
	if !g.SeesPlayer(p, Senses{}) {
		t.Fatal("player exactly at the vision radius should be seen")
	}
}

func TestSeesPlayer_OutsideFOV(t *testing.T) {
	g := newLookingGuard(Vec2{0, 0}, 260)
	// 45 degrees off the facing, beyond the 40 degree half-angle.
	p := NewPlayer(Vec2{70.71, 70.71})
	if g.SeesPlayer(p, Senses{}) {
		t.Fatal("player 45 degrees off-axis should not be seen")
	}
	// 30 degrees off the facing.
	p.Pos = Vec2{86.6, 50}
	if !g.SeesPlayer(p, Senses{}) {
		t.Fatal("player 30 degrees off-axis should be seen")
	}
}

func TestSeesPlayer_BehindGuard(t *testing.T) {
	g := newLookingGuard(Vec2{200, 100}, 260)
	p := NewPlayer(Vec2{100, 100})
	if g.SeesPlayer(p, Senses{}) {
		t.Fatal("player directly behind should not be seen")
	}
}

func TestSeesPlayer_SamePosition(t *testing.T) {
	g := newLookingGuard(Vec2{100, 100}, 260)
	p := NewPlayer(Vec2{100, 100})
	if g.SeesPlayer(p, Senses{}) {
		t.Fatal("distance 0 is never a sighting")
	}
}

func TestSeesPlayer_WallBlocks(t *testing.T) {
	g := newLookingGuard(Vec2{0, 100}, 260)
	p := NewPlayer(Vec2{200, 100})
	s := Senses{Walls: []Rect{{X: 90, Y: 0, W: 20, H: 200}}}
	if g.SeesPlayer(p, s) {
		t.Fatal("wall between guard and player should block sight")
	}
}

func TestSeesPlayer_EMPBlinds(t *testing.T) {
	g := newLookingGuard(Vec2{0, 0}, 260)
	p := NewPlayer(Vec2{100, 0})
	if g.SeesPlayer(p, Senses{EMPActive: true}) {
		t.Fatal("guards are blind while an EMP is active")
	}
}

func TestSeesPlayer_Invisibility(t *testing.T) {
	g := newLookingGuard(Vec2{0, 0}, 260)
	p := NewPlayer(Vec2{100, 0})
	p.GrantInvisibility(1, 5)
	if g.SeesPlayer(p, Senses{Now: 3}) {
		t.Fatal("invisible player should not be seen")
	}
	if !g.SeesPlayer(p, Senses{Now: 6.5}) {
		t.Fatal("invisibility should have expired at t=6.5")
	}
}

func TestInCone_ZeroDistance(t *testing.T) {
	if InCone(Vec2{1, 1}, Vec2{1, 0}, Vec2{1, 1}, 100) {
		t.Fatal("target on the origin is not in the cone")
	}
}
