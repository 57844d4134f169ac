package view

import (
	"image/color"
	"math/rand"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

const (
	particleLife   = 30 // ticks (0.5s at 60 TPS)
	particleDrag   = 0.95
	burstCount     = 15
	spottedShake   = 6
	particleSpread = 2.0
)

var (
	colTreasureBurst = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colKeyBurst      = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colPowerupBurst  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colEMPBurst      = color.RGBA{R: 120, G: 200, B: 255, A: 255}
)

type particle struct {
	pos game.Vec2
	vel game.Vec2
	col color.RGBA
	age int
}

// Effects holds cosmetic state: pickup particles and screen shake. None of
// it feeds back into the simulation.
type Effects struct {
	particles []particle
	shake     int
	offX      float64
	offY      float64
	rng       *rand.Rand
}

// NewEffects creates an empty effect set.
func NewEffects(seed int64) *Effects {
	return &Effects{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- cosmetic only
}

// Burst scatters n particles from at.
func (fx *Effects) Burst(at game.Vec2, n int, col color.RGBA) {
	for i := 0; i < n; i++ {
		vel := game.Vec2{
			X: (fx.rng.Float64()*2 - 1) * particleSpread,
			Y: (fx.rng.Float64()*2 - 1) * particleSpread,
		}
		fx.particles = append(fx.particles, particle{pos: at, vel: vel, col: col})
	}
}

// Shake starts a screen shake of the given magnitude unless a stronger one
// is already running.
func (fx *Effects) Shake(amount int) {
	if amount > fx.shake {
		fx.shake = amount
	}
}

// Watch keeps the screen shaking for as long as any guard has eyes on the
// player. Each sighted frame restarts the shake at full strength.
func (fx *Effects) Watch(guards []*game.Guard) {
	for _, g := range guards {
		if g.Seeing {
			fx.shake = spottedShake
			return
		}
	}
}

// React translates one tick's events into effects.
func (fx *Effects) React(events []game.Event, player game.Vec2) {
	for _, e := range events {
		switch e.Kind {
		case game.EventGuardSpotted:
			fx.Shake(spottedShake)
		case game.EventTreasureCollected:
			fx.Burst(player, burstCount, colTreasureBurst)
		case game.EventKeyCollected:
			fx.Burst(player, burstCount, colKeyBurst)
		case game.EventPowerupCollected:
			fx.Burst(player, burstCount, colPowerupBurst)
		case game.EventEMPActivated:
			fx.Burst(player, burstCount*2, colEMPBurst)
		}
	}
}

// Update advances particles one frame and rolls the next shake offset.
func (fx *Effects) Update() {
	kept := fx.particles[:0]
	for _, p := range fx.particles {
		p.pos = p.pos.Add(p.vel)
		p.vel = p.vel.Scale(particleDrag)
		p.age++
		if p.age < particleLife {
			kept = append(kept, p)
		}
	}
	fx.particles = kept

	if fx.shake > 0 {
		fx.offX = float64(fx.rng.Intn(2*fx.shake+1) - fx.shake)
		fx.offY = float64(fx.rng.Intn(2*fx.shake+1) - fx.shake)
		fx.shake--
	} else {
		fx.offX, fx.offY = 0, 0
	}
}

// Offset is the current screen shake displacement.
func (fx *Effects) Offset() (float64, float64) { return fx.offX, fx.offY }

// Active reports whether anything is still animating.
func (fx *Effects) Active() bool { return len(fx.particles) > 0 || fx.shake > 0 }

// Reset drops all running effects, e.g. on level load.
func (fx *Effects) Reset() {
	fx.particles = fx.particles[:0]
	fx.shake = 0
	fx.offX, fx.offY = 0, 0
}
