package game

import "fmt"

// EventKind enumerates the notifications the run emits for presentation,
// audio and persistence.
type EventKind int

const (
	EventGuardSpotted EventKind = iota
	EventGuardAlerted
	EventGuardStoodDown
	EventSoundEmitted
	EventEMPActivated
	EventEMPExpired
	EventTreasureCollected
	EventKeyCollected
	EventDoorsUnlocked
	EventPowerupCollected
	EventPlayerCaught
	EventTimeExpired
	EventLevelComplete
	EventRunComplete
)

func (k EventKind) String() string {
	switch k {
	case EventGuardSpotted:
		return "guard_spotted"
	case EventGuardAlerted:
		return "guard_alerted"
	case EventGuardStoodDown:
		return "guard_stood_down"
	case EventSoundEmitted:
		return "sound_emitted"
	case EventEMPActivated:
		return "emp_activated"
	case EventEMPExpired:
		return "emp_expired"
	case EventTreasureCollected:
		return "treasure_collected"
	case EventKeyCollected:
		return "key_collected"
	case EventDoorsUnlocked:
		return "doors_unlocked"
	case EventPowerupCollected:
		return "powerup_collected"
	case EventPlayerCaught:
		return "player_caught"
	case EventTimeExpired:
		return "time_expired"
	case EventLevelComplete:
		return "level_complete"
	case EventRunComplete:
		return "run_complete"
	default:
		return "unknown"
	}
}

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Tick    int
	Pos     Vec2
	GuardID int
	Trigger AlertTrigger
	Powerup PowerupKind
	Sound   SoundSource
	Radius  float64
	Score   int
	Count   int
}

// String formats the event for logs and the on-screen feed.
func (e Event) String() string {
	switch e.Kind {
	case EventGuardSpotted:
		return fmt.Sprintf("G%d spotted you", e.GuardID)
	case EventGuardAlerted:
		return fmt.Sprintf("G%d alerted (%s)", e.GuardID, e.Trigger)
	case EventGuardStoodDown:
		return fmt.Sprintf("G%d back on patrol", e.GuardID)
	case EventSoundEmitted:
		return fmt.Sprintf("%s noise r=%.0f", e.Sound, e.Radius)
	case EventEMPActivated:
		return "EMP fired"
	case EventEMPExpired:
		return "EMP faded"
	case EventTreasureCollected:
		return "treasure collected"
	case EventKeyCollected:
		return "key collected"
	case EventDoorsUnlocked:
		return fmt.Sprintf("%d doors unlocked", e.Count)
	case EventPowerupCollected:
		return fmt.Sprintf("%s powerup", e.Powerup)
	case EventPlayerCaught:
		return "caught by security"
	case EventTimeExpired:
		return "time expired"
	case EventLevelComplete:
		return fmt.Sprintf("level complete +%d", e.Score)
	case EventRunComplete:
		return fmt.Sprintf("heist complete, total %d", e.Score)
	default:
		return e.Kind.String()
	}
}
