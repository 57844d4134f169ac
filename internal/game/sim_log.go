package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "G0", "G3", "P" for the player, or "--" for run events
	Category string  // alert, sense, pickup, state, ability, move
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] G1   alert     guard_alerted    G1 alerted (sound)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless simulation.
// Unlike EventFeed (UI ring-buffer), SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and meter
// entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick entries are recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, category, key, value, numVal)
}

// AddEvent records a run event under its category.
func (sl *SimLog) AddEvent(e Event) {
	actor := "--"
	num := 0.0
	category := "state"
	switch e.Kind {
	case EventGuardSpotted, EventGuardStoodDown:
		actor = guardLabel(e.GuardID)
		category = "sense"
	case EventGuardAlerted:
		actor = guardLabel(e.GuardID)
		category = "alert"
		num = e.Trigger.countdown()
	case EventSoundEmitted:
		actor = "P"
		category = "sense"
		num = e.Radius
	case EventEMPActivated, EventEMPExpired:
		actor = "P"
		category = "ability"
	case EventTreasureCollected, EventKeyCollected, EventDoorsUnlocked, EventPowerupCollected:
		actor = "P"
		category = "pickup"
		num = float64(e.Count)
	case EventLevelComplete, EventRunComplete:
		num = float64(e.Score)
	}
	sl.Add(e.Tick, actor, category, e.Kind.String(), e.String(), num)
}

func guardLabel(id int) string {
	return fmt.Sprintf("G%d", id)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable summary of a run's current level.
func (sl *SimLog) Summary(r *Run) string {
	var sb strings.Builder
	snap := r.Snapshot()
	fmt.Fprintf(&sb, "--- Summary at T=%03d (%s, %s) ---\n", snap.Tick, snap.LevelName, snap.Difficulty.Name)
	fmt.Fprintf(&sb, "State: %s  meter: %.2f/%.2f  remaining: %.1fs\n",
		snap.State, snap.Meter, snap.Threshold, snap.Remaining)

	alerted := 0
	for _, g := range snap.Guards {
		if g.State == GuardAlerted {
			alerted++
		}
	}
	fmt.Fprintf(&sb, "Guards: %d  alerted: %d\n", len(snap.Guards), alerted)
	fmt.Fprintf(&sb, "Objectives: treasures=%d keys=%d doors=%d\n",
		len(snap.Treasures), len(snap.Keys), len(snap.LockedDoors))

	byTrigger := map[string]int{}
	for _, e := range sl.Filter("alert", EventGuardAlerted.String()) {
		for _, t := range []AlertTrigger{TriggerSight, TriggerSound, TriggerBroadcast} {
			if strings.Contains(e.Value, "("+t.String()+")") {
				byTrigger[t.String()]++
			}
		}
	}
	if len(byTrigger) == 0 {
		sb.WriteString("Alerts: none\n")
	} else {
		fmt.Fprintf(&sb, "Alerts: sight=%d sound=%d broadcast=%d\n",
			byTrigger["sight"], byTrigger["sound"], byTrigger["broadcast"])
	}
	return sb.String()
}
