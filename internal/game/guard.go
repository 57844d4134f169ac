package game

import "math"

const (
	GuardSize = 24

	chaseSpeedMul = 1.6

	SightAlertTime     = 2.5 // seconds
	SoundAlertTime     = 2.5 // seconds
	BroadcastAlertTime = 3.0 // seconds
)

// AlertTrigger records what put a guard on alert.
type AlertTrigger int

const (
	TriggerNone AlertTrigger = iota
	TriggerSight
	TriggerSound
	TriggerBroadcast
)

func (t AlertTrigger) String() string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerSight:
		return "sight"
	case TriggerSound:
		return "sound"
	case TriggerBroadcast:
		return "broadcast"
	default:
		return "unknown"
	}
}

// countdown is how long an alert from t lasts without reinforcement.
func (t AlertTrigger) countdown() float64 {
	if t == TriggerBroadcast {
		return BroadcastAlertTime
	}
	return SightAlertTime
}

// GuardState is the high-level behaviour state.
type GuardState int

const (
	GuardPatrolling GuardState = iota // following the patrol pattern
	GuardAlerted                      // chasing ChaseTarget
)

func (gs GuardState) String() string {
	switch gs {
	case GuardPatrolling:
		return "patrol"
	case GuardAlerted:
		return "alerted"
	default:
		return "unknown"
	}
}

// Guard is a patrolling sentry.
//
// While Alert is false the guard stays inside Patrol's bounds. While Alert
// is true it ignores the pattern and walks toward ChaseTarget until
// AlertTimer runs out.
type Guard struct {
	ID     int
	Pos    Vec2
	Vel    Vec2
	Facing Vec2 // unit vector

	VisionRadius float64 // pixels
	Speed        float64 // pixels per tick
	Patrol       Patrol

	Alert       bool
	AlertTimer  float64 // seconds remaining
	ChaseTarget Vec2
	Trigger     AlertTrigger

	// Seeing is the result of the most recent sight check.
	Seeing bool
}

// NewGuard creates a guard at pos walking the given pattern.
func NewGuard(id int, pos Vec2, kind PatrolKind, span, vision, speed float64) *Guard {
	g := &Guard{
		ID:           id,
		Pos:          pos,
		VisionRadius: vision,
		Speed:        speed,
		Patrol:       NewPatrol(kind, pos, span),
	}
	g.Vel = g.Patrol.initialVelocity(speed)
	g.Facing = g.Vel.Normalize()
	return g
}

// State reports the behaviour state derived from Alert.
func (g *Guard) State() GuardState {
	if g.Alert {
		return GuardAlerted
	}
	return GuardPatrolling
}

// Bounds returns the guard's body rectangle.
func (g *Guard) Bounds() Rect {
	return RectAround(g.Pos, GuardSize, GuardSize)
}

// Heading returns the facing as an angle in radians (0 = right, pi/2 = down).
func (g *Guard) Heading() float64 {
	return math.Atan2(g.Facing.Y, g.Facing.X)
}

// Alarm puts the guard on alert chasing target. A guard that is already
// alerted has its target and countdown refreshed. It returns true only when
// the guard was patrolling before the call.
func (g *Guard) Alarm(target Vec2, trigger AlertTrigger) bool {
	newly := !g.Alert
	g.Alert = true
	g.AlertTimer = trigger.countdown()
	g.ChaseTarget = target
	g.Trigger = trigger
	return newly
}

// Update advances the guard one tick. dt is the tick length in seconds and
// only drives the alert countdown; movement is in pixels per tick.
// It returns true when the guard stood down this tick.
func (g *Guard) Update(dt float64) bool {
	if !g.Alert {
		g.Patrol.step(g)
		return false
	}

	g.chase()
	g.AlertTimer -= dt
	if g.AlertTimer > 0 {
		return false
	}
	g.Alert = false
	g.AlertTimer = 0
	g.Trigger = TriggerNone
	g.Patrol.resume(g)
	return true
}

// chase steers toward ChaseTarget at the boosted chase speed and parks on
// the target instead of overshooting it.
func (g *Guard) chase() {
	diff := g.ChaseTarget.Sub(g.Pos)
	dist := diff.Len()
	if dist == 0 {
		g.Vel = Vec2{}
		return
	}
	dir := diff.Scale(1 / dist)
	speed := g.Speed * chaseSpeedMul
	g.Facing = dir
	if dist <= speed {
		g.Vel = diff
		g.Pos = g.ChaseTarget
		return
	}
	g.Vel = dir.Scale(speed)
	g.Pos = g.Pos.Add(g.Vel)
}
