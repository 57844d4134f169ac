package game

const (
	PlayerSize  = 22
	PlayerSpeed = 3.0 // pixels per tick, upright
	CrouchSpeed = 1.4 // pixels per tick, crouched

	velocityKeep   = 0.6
	velocityTarget = 0.4
	diagonalScale  = 0.7071

	// footstepMinMove is how far the player must travel in one tick for an
	// upright step to be audible.
	footstepMinMove = 0.5
)

// MoveIntent is the directional input for one tick. Each axis is -1, 0 or 1.
type MoveIntent struct {
	DX, DY int
}

// Player is the infiltrator. Timed buffs are absolute expiry times on the
// run clock.
type Player struct {
	Pos    Vec2
	Vel    Vec2
	Crouch bool

	SpeedMul   float64
	speedUntil float64

	invisible  bool
	invisUntil float64
}

// NewPlayer places a player at pos with no buffs.
func NewPlayer(pos Vec2) *Player {
	return &Player{Pos: pos, SpeedMul: 1}
}

// Bounds returns the collision box centred on the player.
func (p *Player) Bounds() Rect {
	return RectAround(p.Pos, PlayerSize, PlayerSize)
}

// ApplySpeedBoost multiplies movement speed until now+duration.
func (p *Player) ApplySpeedBoost(mul, now, duration float64) {
	p.SpeedMul = mul
	p.speedUntil = now + duration
}

// GrantInvisibility hides the player from sight until now+duration.
func (p *Player) GrantInvisibility(now, duration float64) {
	p.invisible = true
	p.invisUntil = now + duration
}

// Invisible reports whether the invisibility buff is active at now.
func (p *Player) Invisible(now float64) bool {
	return p.invisible && now < p.invisUntil
}

// Boosted reports whether a speed multiplier other than 1 is in effect.
func (p *Player) Boosted() bool {
	return p.SpeedMul != 1
}

// expireBuffs drops buffs whose expiry time has passed.
func (p *Player) expireBuffs(now float64) {
	if now > p.speedUntil {
		p.SpeedMul = 1
	}
	if now > p.invisUntil {
		p.invisible = false
	}
}

// targetVelocity converts an intent into the velocity the player is easing
// toward this tick.
func (p *Player) targetVelocity(in MoveIntent) Vec2 {
	base := PlayerSpeed
	if p.Crouch {
		base = CrouchSpeed
	}
	dx := float64(sign(in.DX)) * base
	dy := float64(sign(in.DY)) * base
	if dx != 0 && dy != 0 {
		dx *= diagonalScale
		dy *= diagonalScale
	}
	return Vec2{dx, dy}.Scale(p.SpeedMul)
}

// Move eases velocity toward the intent and applies it one axis at a time.
// Each axis displacement is dropped whole if the moved box would overlap a
// wall, which keeps diagonal motion from slipping through wall corners.
// It returns the distance actually travelled.
func (p *Player) Move(in MoveIntent, walls []Rect, now float64) float64 {
	p.expireBuffs(now)

	target := p.targetVelocity(in)
	p.Vel = p.Vel.Scale(velocityKeep).Add(target.Scale(velocityTarget))

	start := p.Pos
	if !overlapsAny(p.Bounds().Translate(Vec2{X: p.Vel.X}), walls) {
		p.Pos.X += p.Vel.X
	}
	if !overlapsAny(p.Bounds().Translate(Vec2{Y: p.Vel.Y}), walls) {
		p.Pos.Y += p.Vel.Y
	}
	return p.Pos.DistanceTo(start)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
