package game

// PatrolKind selects one of the fixed patrol shapes.
type PatrolKind int

const (
	PatrolHorizontal PatrolKind = iota // ping-pong along x
	PatrolVertical                     // ping-pong along y
	PatrolBox                          // clockwise rectangle
)

func (k PatrolKind) String() string {
	switch k {
	case PatrolHorizontal:
		return "horizontal"
	case PatrolVertical:
		return "vertical"
	case PatrolBox:
		return "box"
	default:
		return "unknown"
	}
}

// patrolCycle is the pattern assigned to the i-th guard spawn: guard i gets
// patrolCycle[i%3].
var patrolCycle = [...]PatrolKind{PatrolHorizontal, PatrolVertical, PatrolBox}

// PatrolFor returns the pattern for the spawn at index i.
func PatrolFor(i int) PatrolKind {
	return patrolCycle[i%len(patrolCycle)]
}

// Patrol is a tagged union over the patrol shapes. Kind decides which
// bounds matter: Horizontal uses StartX/EndX with StartY == EndY as the
// patrol line, Vertical the reverse, Box all four.
type Patrol struct {
	Kind         PatrolKind
	StartX, EndX float64
	StartY, EndY float64
}

// NewPatrol centres a pattern of the given span on c.
func NewPatrol(kind PatrolKind, c Vec2, span float64) Patrol {
	half := span / 2
	pt := Patrol{Kind: kind}
	switch kind {
	case PatrolHorizontal:
		pt.StartX, pt.EndX = c.X-half, c.X+half
		pt.StartY, pt.EndY = c.Y, c.Y
	case PatrolVertical:
		pt.StartX, pt.EndX = c.X, c.X
		pt.StartY, pt.EndY = c.Y-half, c.Y+half
	default:
		pt.StartX, pt.EndX = c.X-half, c.X+half
		pt.StartY, pt.EndY = c.Y-half, c.Y+half
	}
	return pt
}

// Contains reports whether p lies within the pattern's bounds.
func (pt Patrol) Contains(p Vec2) bool {
	return p.X >= pt.StartX && p.X <= pt.EndX && p.Y >= pt.StartY && p.Y <= pt.EndY
}

// initialVelocity is the heading a freshly spawned guard starts with.
func (pt Patrol) initialVelocity(speed float64) Vec2 {
	if pt.Kind == PatrolVertical {
		return Vec2{0, speed}
	}
	return Vec2{speed, 0}
}

// step advances g one tick along the pattern. Reaching a bound snaps the
// guard onto it and turns it.
//
// Box legs are tested in the fixed order right, down, left, up and at most
// one turn happens per tick. A guard sitting exactly on a corner therefore
// takes the turn belonging to the leg it is currently travelling.
func (pt Patrol) step(g *Guard) {
	g.Pos = g.Pos.Add(g.Vel)
	s := g.Speed

	switch pt.Kind {
	case PatrolHorizontal:
		if g.Pos.X <= pt.StartX {
			g.Pos.X = pt.StartX
			g.Vel.X = s
			g.Facing = Vec2{1, 0}
		} else if g.Pos.X >= pt.EndX {
			g.Pos.X = pt.EndX
			g.Vel.X = -s
			g.Facing = Vec2{-1, 0}
		}

	case PatrolVertical:
		if g.Pos.Y <= pt.StartY {
			g.Pos.Y = pt.StartY
			g.Vel.Y = s
			g.Facing = Vec2{0, 1}
		} else if g.Pos.Y >= pt.EndY {
			g.Pos.Y = pt.EndY
			g.Vel.Y = -s
			g.Facing = Vec2{0, -1}
		}

	case PatrolBox:
		switch {
		case g.Vel.X > 0 && g.Pos.X >= pt.EndX:
			g.Pos.X = pt.EndX
			g.Vel = Vec2{0, s}
			g.Facing = Vec2{0, 1}
		case g.Vel.Y > 0 && g.Pos.Y >= pt.EndY:
			g.Pos.Y = pt.EndY
			g.Vel = Vec2{-s, 0}
			g.Facing = Vec2{-1, 0}
		case g.Vel.X < 0 && g.Pos.X <= pt.StartX:
			g.Pos.X = pt.StartX
			g.Vel = Vec2{0, -s}
			g.Facing = Vec2{0, -1}
		case g.Vel.Y < 0 && g.Pos.Y <= pt.StartY:
			g.Pos.Y = pt.StartY
			g.Vel = Vec2{s, 0}
			g.Facing = Vec2{1, 0}
		}
	}
}

// resume puts a guard that just stood down back on its pattern. The
// position is projected onto the route and the guard heads for the far end
// of the segment (or, for Box, continues clockwise along the nearest edge).
func (pt Patrol) resume(g *Guard) {
	s := g.Speed
	p := Vec2{clamp(g.Pos.X, pt.StartX, pt.EndX), clamp(g.Pos.Y, pt.StartY, pt.EndY)}

	switch pt.Kind {
	case PatrolHorizontal:
		p.Y = pt.StartY
		if p.X-pt.StartX < pt.EndX-p.X {
			g.Vel = Vec2{s, 0}
		} else {
			g.Vel = Vec2{-s, 0}
		}

	case PatrolVertical:
		p.X = pt.StartX
		if p.Y-pt.StartY < pt.EndY-p.Y {
			g.Vel = Vec2{0, s}
		} else {
			g.Vel = Vec2{0, -s}
		}

	case PatrolBox:
		top := p.Y - pt.StartY
		right := pt.EndX - p.X
		bottom := pt.EndY - p.Y
		left := p.X - pt.StartX
		switch nearest := min(top, right, bottom, left); nearest {
		case top:
			p.Y = pt.StartY
			g.Vel = Vec2{s, 0}
		case right:
			p.X = pt.EndX
			g.Vel = Vec2{0, s}
		case bottom:
			p.Y = pt.EndY
			g.Vel = Vec2{-s, 0}
		default:
			p.X = pt.StartX
			g.Vel = Vec2{0, -s}
		}
	}

	g.Pos = p
	if f := g.Vel.Normalize(); f != (Vec2{}) {
		g.Facing = f
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
