package game

// BroadcastRadius is how far a guard's shout carries to other guards.
const BroadcastRadius = 120.0

// BroadcastAlert relays from's alarm to every other guard strictly closer
// than BroadcastRadius. The relayed chase target is from's position at the
// moment of the call, not the intruder's, and it is copied so later
// movement by from does not drag the others along. Relayed guards do not
// relay further.
//
// Guards that are already alerted are re-targeted and their countdown reset
// to BroadcastAlertTime as well, but only guards that were patrolling before
// the call are returned.
func BroadcastAlert(from *Guard, guards []*Guard) []*Guard {
	origin := from.Pos
	var relayed []*Guard
	for _, g := range guards {
		if g == from {
			continue
		}
		if origin.DistanceTo(g.Pos) >= BroadcastRadius {
			continue
		}
		if g.Alarm(origin, TriggerBroadcast) {
			relayed = append(relayed, g)
		}
	}
	return relayed
}
