package game

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPlayerMove_VelocitySmoothing(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	p.Move(MoveIntent{DX: 1}, nil, 0)
	if !approx(p.Vel.X, 1.2) || !approx(p.Pos.X, 101.2) {
		t.Fatalf("first tick: expected vel 1.2 pos 101.2, got vel %.4f pos %.4f", p.Vel.X, p.Pos.X)
	}
	p.Move(MoveIntent{DX: 1}, nil, 0)
	if !approx(p.Vel.X, 1.92) {
		t.Fatalf("second tick: expected vel 1.92, got %.4f", p.Vel.X)
	}
}

func TestPlayerMove_CrouchAndDiagonal(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	p.Crouch = true
	p.Move(MoveIntent{DX: -1}, nil, 0)
	if !approx(p.Vel.X, -0.56) {
		t.Fatalf("crouched: expected vel -0.56, got %.4f", p.Vel.X)
	}

	d := NewPlayer(Vec2{100, 100})
	d.Move(MoveIntent{DX: 1, DY: 1}, nil, 0)
	want := 0.4 * PlayerSpeed * diagonalScale
	if !approx(d.Vel.X, want) || !approx(d.Vel.Y, want) {
		t.Fatalf("diagonal: expected %.4f per axis, got %+v", want, d.Vel)
	}
}

func TestPlayerMove_SpeedBoostExpires(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	p.ApplySpeedBoost(1.8, 0, 5)
	p.Move(MoveIntent{DX: 1}, nil, 1)
	if !approx(p.Vel.X, 0.4*PlayerSpeed*1.8) {
		t.Fatalf("boosted: expected %.4f, got %.4f", 0.4*PlayerSpeed*1.8, p.Vel.X)
	}
	p.Move(MoveIntent{}, nil, 5.5)
	if p.Boosted() {
		t.Fatal("boost should have expired after its duration")
	}
}

func TestPlayerMove_AxisSeparatedCollision(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	walls := []Rect{{X: 111.5, Y: 80, W: 40, H: 40}}
	p.Move(MoveIntent{DX: 1, DY: 1}, walls, 0)
	if p.Pos.X != 100 {
		t.Fatalf("horizontal step into the wall should be dropped, x=%.4f", p.Pos.X)
	}
	if p.Pos.Y <= 100 {
		t.Fatalf("vertical step should still apply, y=%.4f", p.Pos.Y)
	}
}

func TestPlayerMove_NeverEntersWall(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	walls := []Rect{{X: 130, Y: 0, W: 40, H: 300}}
	for i := 0; i < 120; i++ {
		p.Move(MoveIntent{DX: 1}, walls, 0)
		if overlapsAny(p.Bounds(), walls) {
			t.Fatalf("tick %d: player box %+v overlaps wall", i, p.Bounds())
		}
	}
	if p.Pos.X+PlayerSize/2 > 130 {
		t.Fatalf("player should stop at the wall face, x=%.3f", p.Pos.X)
	}
}

func TestPlayerMove_ReturnsDistance(t *testing.T) {
	p := NewPlayer(Vec2{100, 100})
	if d := p.Move(MoveIntent{}, nil, 0); d != 0 {
		t.Fatalf("no input should not move, got %.4f", d)
	}
	if d := p.Move(MoveIntent{DY: -1}, nil, 0); !approx(d, 1.2) {
		t.Fatalf("expected 1.2 travelled, got %.4f", d)
	}
}
