package view

import (
	"strings"
	"testing"

	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
)

func TestRunSummary(t *testing.T) {
	ts := game.NewTestSim(
		game.WithGuard(400, 300, game.PatrolHorizontal),
		game.WithDifficulty("Hard"),
	)
	ts.RunTicks(10)
	best := scores.ZeroTable()
	best["Hard"] = 1500

	feed := []FeedEntry{{Tick: 3, Message: "G0 spotted you"}}
	out := RunSummary(ts.Snapshot(), best, feed)
	for _, want := range []string{"Hard", "playing", "best 1500", "Guards 1", "G0 spotted you"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
