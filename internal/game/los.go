package game

import "math"

// DefaultSightStep is the distance in pixels between LOS samples.
const DefaultSightStep = 6.0

// LineOfSight reports whether the straight segment from start to end is
// clear of walls. The segment is sampled every step pixels starting at
// start; the first sample that lands inside a wall ends the walk. Sight and
// sound both use this, so occlusion is identical for the two senses.
func LineOfSight(start, end Vec2, walls []Rect, step float64) bool {
	if start == end {
		return true
	}
	if step <= 0 {
		step = DefaultSightStep
	}
	steps := int(start.DistanceTo(end) / step)
	if steps <= 0 {
		return true
	}
	dir := end.Sub(start).Scale(1 / float64(steps))
	p := start
	for i := 0; i < steps; i++ {
		for _, w := range walls {
			if w.Contains(p) {
				return false
			}
		}
		p = p.Add(dir)
	}
	return true
}

// RayHitT returns the first segment parameter t in [0,1] where the segment
// from o to e enters r. The bool is false when there is no hit.
// Presentation code uses it to clip vision cones against walls.
func RayHitT(o, e Vec2, r Rect) (float64, bool) {
	minX, minY := r.X, r.Y
	maxX, maxY := r.X+r.W, r.Y+r.H
	dx := e.X - o.X
	dy := e.Y - o.Y

	tMin := 0.0
	tMax := 1.0

	// X slab
	if math.Abs(dx) < 1e-12 {
		if o.X < minX || o.X > maxX {
			return 0, false
		}
	} else {
		invD := 1.0 / dx
		t1 := (minX - o.X) * invD
		t2 := (maxX - o.X) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	// Y slab
	if math.Abs(dy) < 1e-12 {
		if o.Y < minY || o.Y > maxY {
			return 0, false
		}
	} else {
		invD := 1.0 / dy
		t1 := (minY - o.Y) * invD
		t2 := (maxY - o.Y) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	if tMin < 0 {
		tMin = 0
	}
	return tMin, true
}

// ClipRay shortens the segment o→e so it stops just short of the nearest
// wall it enters.
func ClipRay(o, e Vec2, walls []Rect) Vec2 {
	bestT := 1.0
	hit := false
	for _, w := range walls {
		if t, ok := RayHitT(o, e, w); ok && t < bestT {
			bestT = t
			hit = true
		}
	}
	if !hit {
		return e
	}
	t := math.Max(0, bestT-0.01)
	return o.Add(e.Sub(o).Scale(t))
}
