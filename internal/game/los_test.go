package game

import "testing"

func TestLOS_SamePointIsClear(t *testing.T) {
	walls := []Rect{{X: 0, Y: 0, W: 100, H: 100}}
	p := Vec2{50, 50}
	if !LineOfSight(p, p, walls, DefaultSightStep) {
		t.Fatal("a point always sees itself, even inside a wall")
	}
}

func TestLOS_ClearLine(t *testing.T) {
	if !LineOfSight(Vec2{0, 0}, Vec2{100, 100}, nil, DefaultSightStep) {
		t.Fatal("expected clear LOS with no walls")
	}
}

func TestLOS_BlockedByWall(t *testing.T) {
	walls := []Rect{{X: 40, Y: 0, W: 20, H: 200}}
	if LineOfSight(Vec2{0, 100}, Vec2{200, 100}, walls, DefaultSightStep) {
		t.Fatal("expected LOS blocked by wall")
	}
}

func TestLOS_WallBeyondEndpoint_NotBlocked(t *testing.T) {
	walls := []Rect{{X: 300, Y: 0, W: 64, H: 64}}
	if !LineOfSight(Vec2{0, 32}, Vec2{200, 32}, walls, DefaultSightStep) {
		t.Fatal("wall beyond endpoint should not block LOS")
	}
}

func TestLOS_VerticalRay_Blocked(t *testing.T) {
	walls := []Rect{{X: 0, Y: 40, W: 200, H: 20}}
	if LineOfSight(Vec2{100, 0}, Vec2{100, 200}, walls, DefaultSightStep) {
		t.Fatal("expected vertical ray blocked by horizontal wall")
	}
}

func TestLOS_DiagonalRay_Blocked(t *testing.T) {
	walls := []Rect{{X: 80, Y: 80, W: 40, H: 40}}
	if LineOfSight(Vec2{0, 0}, Vec2{200, 200}, walls, DefaultSightStep) {
		t.Fatal("diagonal ray should be blocked by wall")
	}
}

func TestLOS_ThinWallBetweenSamples_Missed(t *testing.T) {
	// Samples land at x = 0, 10, 20, ... so a 2px wall at x=13 is skipped.
	walls := []Rect{{X: 13, Y: 0, W: 2, H: 20}}
	if !LineOfSight(Vec2{0, 10}, Vec2{100, 10}, walls, 10) {
		t.Fatal("a wall thinner than the step between samples should not block")
	}
	if LineOfSight(Vec2{0, 10}, Vec2{100, 10}, walls, 1) {
		t.Fatal("a fine step should catch the thin wall")
	}
}

func TestLOS_SegmentShorterThanStep_Clear(t *testing.T) {
	walls := []Rect{{X: 0, Y: 0, W: 10, H: 10}}
	// Zero samples are taken, so even a start inside a wall is clear.
	if !LineOfSight(Vec2{5, 5}, Vec2{8, 5}, walls, DefaultSightStep) {
		t.Fatal("segment shorter than one step should be clear")
	}
}

func TestLOS_StartInsideWall_Blocked(t *testing.T) {
	walls := []Rect{{X: 0, Y: 0, W: 10, H: 10}}
	if LineOfSight(Vec2{5, 5}, Vec2{100, 5}, walls, DefaultSightStep) {
		t.Fatal("first sample is the start point and lies in the wall")
	}
}

func TestLOS_NonPositiveStepUsesDefault(t *testing.T) {
	walls := []Rect{{X: 40, Y: 0, W: 20, H: 200}}
	if LineOfSight(Vec2{0, 100}, Vec2{200, 100}, walls, 0) {
		t.Fatal("step 0 should fall back to the default and still hit the wall")
	}
}

func TestLOS_Symmetric(t *testing.T) {
	walls := []Rect{{X: 80, Y: 0, W: 40, H: 90}}
	a := Vec2{20, 60}
	b := Vec2{220, 140}
	if LineOfSight(a, b, walls, DefaultSightStep) != LineOfSight(b, a, walls, DefaultSightStep) {
		t.Fatal("expected the same answer in both directions for a thick wall")
	}
}

func TestRayHitT_EntersAtLeftFace(t *testing.T) {
	tHit, ok := RayHitT(Vec2{0, 50}, Vec2{100, 50}, Rect{X: 40, Y: 0, W: 20, H: 100})
	if !ok {
		t.Fatal("expected a hit")
	}
	if tHit < 0.399 || tHit > 0.401 {
		t.Fatalf("expected t=0.4, got %.4f", tHit)
	}
}

func TestRayHitT_Miss(t *testing.T) {
	if _, ok := RayHitT(Vec2{0, 0}, Vec2{100, 0}, Rect{X: 40, Y: 10, W: 20, H: 20}); ok {
		t.Fatal("ray passing above the rect should miss")
	}
}

func TestClipRay_StopsShortOfWall(t *testing.T) {
	walls := []Rect{{X: 50, Y: 0, W: 10, H: 100}}
	end := ClipRay(Vec2{0, 50}, Vec2{100, 50}, walls)
	if end.X >= 50 || end.X < 48 {
		t.Fatalf("expected clip just before x=50, got %.2f", end.X)
	}
	open := ClipRay(Vec2{0, 50}, Vec2{40, 50}, walls)
	if open != (Vec2{40, 50}) {
		t.Fatalf("unobstructed ray should be unchanged, got %+v", open)
	}
}
