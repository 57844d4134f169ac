package game

const (
	FootstepRadius = 130.0
	EMPSoundRadius = 120.0
)

// SoundSource names what made a noise.
type SoundSource int

const (
	SoundFootstep SoundSource = iota
	SoundEMP
)

func (s SoundSource) String() string {
	switch s {
	case SoundFootstep:
		return "footstep"
	case SoundEMP:
		return "emp"
	default:
		return "unknown"
	}
}

// Sound is a one-tick noise. Any patrolling guard inside Radius that has a
// clear line to Origin hears it.
type Sound struct {
	Origin Vec2
	Radius float64
	Source SoundSource
}

// footstep returns the noise the player makes by moving dist pixels this
// tick. Crouched or near-still movement is silent.
func footstep(p *Player, dist float64) (Sound, bool) {
	if p.Crouch || dist <= footstepMinMove {
		return Sound{}, false
	}
	return Sound{Origin: p.Pos, Radius: FootstepRadius, Source: SoundFootstep}, true
}

// Hears reports whether g would pick up snd. Walls occlude sound exactly
// as they block sight.
func (g *Guard) Hears(snd Sound, walls []Rect, step float64) bool {
	if g.Pos.DistanceTo(snd.Origin) > snd.Radius {
		return false
	}
	return LineOfSight(snd.Origin, g.Pos, walls, step)
}

// PropagateSound alerts every patrolling guard that hears snd, chasing its
// origin. Already-alerted guards are not refreshed by noise. The guards
// alerted by this call are returned in slice order.
func PropagateSound(snd Sound, guards []*Guard, walls []Rect, step float64) []*Guard {
	var alerted []*Guard
	for _, g := range guards {
		if g.Alert {
			continue
		}
		if !g.Hears(snd, walls, step) {
			continue
		}
		g.Alarm(snd.Origin, TriggerSound)
		alerted = append(alerted, g)
	}
	return alerted
}
