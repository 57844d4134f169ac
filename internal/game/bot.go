package game

import "math/rand"

// Bot is a scripted player for headless runs. It walks straight at the
// nearest objective, crouches when a guard is close, fires the EMP the
// first time it is spotted and wanders randomly when it gets stuck.
type Bot struct {
	rng *rand.Rand

	lastPos    Vec2
	stuckTicks int
	wander     MoveIntent
	wanderLeft int
}

const (
	botStuckLimit   = 20  // ticks without progress before wandering
	botWanderTicks  = 40  // ticks spent on one random heading
	botCrouchMargin = 1.2 // crouch inside this multiple of a guard's vision
)

// NewBot creates a bot with a deterministic seed.
func NewBot(seed int64) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- scripted bot
}

// Next picks the input for the coming tick from the current snapshot.
func (b *Bot) Next(s Snapshot) Input {
	var in Input

	wantCrouch := false
	spotted := false
	for _, g := range s.Guards {
		if g.Pos.DistanceTo(s.Player) < g.VisionRadius*botCrouchMargin {
			wantCrouch = true
		}
		if g.Seeing {
			spotted = true
		}
	}
	in.ToggleCrouch = wantCrouch != s.Crouched
	in.EMP = spotted && s.EMPReady

	if s.Player.DistanceTo(b.lastPos) < 0.1 {
		b.stuckTicks++
	} else {
		b.stuckTicks = 0
	}
	b.lastPos = s.Player

	if b.stuckTicks >= botStuckLimit && b.wanderLeft == 0 {
		b.wander = MoveIntent{DX: b.rng.Intn(3) - 1, DY: b.rng.Intn(3) - 1}
		b.wanderLeft = botWanderTicks
		b.stuckTicks = 0
	}
	if b.wanderLeft > 0 {
		b.wanderLeft--
		in.Move = b.wander
		return in
	}

	target, ok := botTarget(s)
	if !ok {
		return in
	}
	in.Move = MoveIntent{DX: axisToward(s.Player.X, target.X), DY: axisToward(s.Player.Y, target.Y)}
	return in
}

// botTarget picks the nearest treasure, then a key while doors are locked,
// then the exit.
func botTarget(s Snapshot) (Vec2, bool) {
	if t, ok := nearest(s.Player, s.Treasures); ok {
		return t, true
	}
	if len(s.LockedDoors) > 0 {
		if k, ok := nearest(s.Player, s.Keys); ok {
			return k, true
		}
	}
	if s.HasExit {
		return s.Exit.Center(), true
	}
	return Vec2{}, false
}

func nearest(from Vec2, rs []Rect) (Vec2, bool) {
	best := Vec2{}
	bestD := -1.0
	for _, r := range rs {
		c := r.Center()
		if d := from.DistanceTo(c); bestD < 0 || d < bestD {
			best, bestD = c, d
		}
	}
	return best, bestD >= 0
}

func axisToward(from, to float64) int {
	switch {
	case to-from > 2:
		return 1
	case from-to > 2:
		return -1
	default:
		return 0
	}
}
