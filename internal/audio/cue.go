// Package audio turns run events into short synthesized cues.
package audio

import "github.com/Garsondee/Stealth-Sense/internal/game"

// Cue identifies one of the fixed sound effects.
type Cue int

const (
	CueNone Cue = iota
	CueAlarm
	CueEMP
	CueCollect
	CueWin
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueAlarm:
		return "alarm"
	case CueEMP:
		return "emp"
	case CueCollect:
		return "collect"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// CueFor maps a run event to the cue it should play. Being spotted is
// silent; the alarm only sounds once the player is caught or out of time.
func CueFor(e game.Event) Cue {
	switch e.Kind {
	case game.EventEMPActivated:
		return CueEMP
	case game.EventTreasureCollected, game.EventKeyCollected, game.EventPowerupCollected:
		return CueCollect
	case game.EventLevelComplete, game.EventRunComplete:
		return CueWin
	case game.EventPlayerCaught, game.EventTimeExpired:
		return CueAlarm
	default:
		return CueNone
	}
}

// Player plays cues. Implementations never block the caller.
type Player interface {
	Play(c Cue)
	Close()
}

// PlayEvents plays the cue of every event in order, skipping silent ones.
// Repeated cues within one batch play once.
func PlayEvents(p Player, events []game.Event) {
	var played [CueWin + 1]bool
	for _, e := range events {
		c := CueFor(e)
		if c == CueNone || played[c] {
			continue
		}
		played[c] = true
		p.Play(c)
	}
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}
