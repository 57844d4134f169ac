package view

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
)

// RunSummary is the plain-text report copied to the clipboard.
func RunSummary(s game.Snapshot, best scores.Table, feed []FeedEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stealth Sense | %s | %s\n", s.Difficulty.Name, s.State)
	if s.LevelCount > 0 {
		fmt.Fprintf(&b, "Level %d/%d %s  t=%.1fs  remaining=%.1fs\n",
			s.LevelIndex+1, s.LevelCount, s.LevelName, s.Elapsed, s.Remaining)
	}
	fmt.Fprintf(&b, "Total %d  last level %d  best %d\n", s.Total, s.LastScore, best[s.Difficulty.Name])
	if s.Threshold > 0 {
		fmt.Fprintf(&b, "Detection %.2f/%.2f  treasures %d  keys %d  doors %d\n",
			s.Meter, s.Threshold, len(s.Treasures), len(s.Keys), len(s.LockedDoors))
	}

	alerted := 0
	for _, g := range s.Guards {
		if g.State == game.GuardAlerted {
			alerted++
		}
	}
	if len(s.Guards) > 0 {
		fmt.Fprintf(&b, "Guards %d (alerted %d)\n", len(s.Guards), alerted)
	}
	if len(feed) > 0 {
		b.WriteString("Recent:\n")
		for _, e := range feed {
			fmt.Fprintf(&b, "  %5d %s\n", e.Tick, e.Message)
		}
	}
	return b.String()
}
