package game

import "math"

// FOVHalfAngle is half the guard's view arc (80 degrees total).
const FOVHalfAngle = 40.0 * math.Pi / 180.0

// Senses is the shared world state perception checks read from.
type Senses struct {
	Walls     []Rect
	EMPActive bool
	Now       float64 // run clock, seconds
	SightStep float64
}

// InCone reports whether target is within radius of origin and no more than
// FOVHalfAngle away from facing. A target on top of the origin is not in
// the cone.
func InCone(origin, facing, target Vec2, radius float64) bool {
	vec := target.Sub(origin)
	dist := vec.Len()
	if dist == 0 || dist > radius {
		return false
	}
	return angleBetween(facing, vec.Scale(1/dist)) <= FOVHalfAngle
}

// SeesPlayer runs the four sight gates in order: EMP and invisibility,
// range, field of view, then line of sight. All must pass.
func (g *Guard) SeesPlayer(p *Player, s Senses) bool {
	if s.EMPActive || p.Invisible(s.Now) {
		return false
	}
	if !InCone(g.Pos, g.Facing, p.Pos, g.VisionRadius) {
		return false
	}
	return LineOfSight(g.Pos, p.Pos, s.Walls, s.SightStep)
}
