package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Stealth-Sense/internal/config"
	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/logger"
)

type runStats struct {
	level      string
	difficulty string
	seed       int64

	outcome game.RunState
	ticks   int
	score   int

	firstSpottedTick int
	firstAlertTick   int
	spotted          int
	alerts           map[game.AlertTrigger]int
	standDowns       int
	footsteps        int
	pickups          int
	empUsed          bool
	peakMeter        float64
}

// comboStats aggregates every seed run for one level/difficulty pair.
type comboStats struct {
	level      string
	difficulty string
	runs       int
	complete   int
	caught     int
	timedOut   int
	unfinished int
	spotted    int
	alerts     map[game.AlertTrigger]int
	scoreSum   int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var difficulty string
	var cfgPath string
	var copyOut bool

	flag.IntVar(&runs, "runs", 3, "bot runs per level and difficulty")
	flag.IntVar(&ticks, "ticks", 15000, "tick cap per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base bot seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&difficulty, "difficulty", "all", "difficulty name, or all")
	flag.StringVar(&cfgPath, "config", "config.yaml", "settings file (missing file uses defaults)")
	flag.BoolVar(&copyOut, "copy", false, "also copy the report to the clipboard")
	flag.Parse()

	logger.Init()
	log := logger.Component("report")

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	diffs := game.DifficultyNames()
	if difficulty != "all" {
		if _, err := game.DifficultyByName(difficulty); err != nil {
			fmt.Printf("error: %v (supported: all, %s)\n", err, strings.Join(diffs, ", "))
			return
		}
		diffs = []string{difficulty}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	levels, err := cfg.Levels()
	if err != nil {
		log.WithError(err).Fatal("could not load levels")
	}

	var out strings.Builder
	fmt.Fprintf(&out, "=== Headless Heist Report ===\n")
	fmt.Fprintf(&out, "levels=%d difficulties=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		len(levels), strings.Join(diffs, ","), runs, ticks, seedBase, seedStep)

	var all []runStats
	for _, diff := range diffs {
		for li := range levels {
			for i := 0; i < runs; i++ {
				// Fresh copy per run: the harness may extend the level.
				lvl, err := cfg.Levels()
				if err != nil {
					log.WithError(err).Fatal("could not load levels")
				}
				seed := seedBase + int64(i)*seedStep
				rs := runLevel(lvl[li], diff, cfg.Tuning(), seed, ticks)
				all = append(all, rs)
				printRun(&out, rs)
			}
		}
	}
	out.WriteString("\n")
	printAggregate(&out, all)

	fmt.Print(out.String())
	if copyOut {
		if err := clipboard.WriteAll(out.String()); err != nil {
			log.WithError(err).Warn("clipboard unavailable")
		} else {
			fmt.Fprintln(os.Stderr, "report copied to clipboard")
		}
	}
}

func runLevel(lvl *game.Level, difficulty string, tuning game.Tuning, seed int64, ticks int) runStats {
	ts := game.NewTestSim(
		game.WithLevel(lvl),
		game.WithDifficulty(difficulty),
		game.WithTuning(tuning),
	)
	bot := game.NewBot(seed)

	rs := runStats{
		level:            lvl.Name,
		difficulty:       difficulty,
		seed:             seed,
		firstSpottedTick: -1,
		firstAlertTick:   -1,
		alerts:           map[game.AlertTrigger]int{},
	}
	for i := 0; i < ticks && ts.Run.State() == game.StatePlaying; i++ {
		ts.Input = bot.Next(ts.Snapshot())
		ts.RunTicks(1)
		if m := ts.Run.Meter().Value; m > rs.peakMeter {
			rs.peakMeter = m
		}
	}
	rs.outcome = ts.Run.State()
	rs.ticks = ts.CurrentTick()
	rs.score = ts.Run.Total()
	tallyEvents(&rs, ts.Events)
	return rs
}

func tallyEvents(rs *runStats, events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventGuardSpotted:
			rs.spotted++
			if rs.firstSpottedTick < 0 {
				rs.firstSpottedTick = e.Tick
			}
		case game.EventGuardAlerted:
			rs.alerts[e.Trigger]++
			if rs.firstAlertTick < 0 {
				rs.firstAlertTick = e.Tick
			}
		case game.EventGuardStoodDown:
			rs.standDowns++
		case game.EventSoundEmitted:
			if e.Sound == game.SoundFootstep {
				rs.footsteps++
			}
		case game.EventTreasureCollected, game.EventKeyCollected, game.EventPowerupCollected:
			rs.pickups++
		case game.EventEMPActivated:
			rs.empUsed = true
		}
	}
}

func printRun(w *strings.Builder, rs runStats) {
	fmt.Fprintf(w, "--- %s / %s (seed=%d) ---\n", rs.level, rs.difficulty, rs.seed)
	fmt.Fprintf(w, "outcome=%s ticks=%d score=%d peak_meter=%.2f emp=%v\n",
		rs.outcome, rs.ticks, rs.score, rs.peakMeter, rs.empUsed)
	fmt.Fprintf(w, "markers: first_spotted=%d first_alert=%d\n", rs.firstSpottedTick, rs.firstAlertTick)
	fmt.Fprintf(w, "events: spotted=%d alerts=%s stand_downs=%d footsteps=%d pickups=%d\n",
		rs.spotted, formatAlerts(rs.alerts), rs.standDowns, rs.footsteps, rs.pickups)
}

func aggregate(all []runStats) []comboStats {
	byKey := map[string]*comboStats{}
	var order []string
	for _, rs := range all {
		key := rs.level + "\x00" + rs.difficulty
		c, ok := byKey[key]
		if !ok {
			c = &comboStats{level: rs.level, difficulty: rs.difficulty, alerts: map[game.AlertTrigger]int{}}
			byKey[key] = c
			order = append(order, key)
		}
		c.runs++
		switch rs.outcome {
		case game.StateRunComplete, game.StateLevelComplete:
			c.complete++
			c.scoreSum += rs.score
		case game.StateCaught:
			c.caught++
		case game.StateTimedOut:
			c.timedOut++
		default:
			c.unfinished++
		}
		c.spotted += rs.spotted
		for k, v := range rs.alerts {
			c.alerts[k] += v
		}
	}
	out := make([]comboStats, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

// flagCombo marks level/difficulty pairs worth a designer's look: the bot
// never finishes, or finishes without a single guard ever noticing it.
func flagCombo(c comboStats) (bool, string) {
	if c.runs == 0 {
		return false, ""
	}
	var reasons []string
	if c.complete == 0 {
		reasons = append(reasons, "never_completed")
	}
	if c.complete == c.runs && c.spotted == 0 && totalAlerts(c.alerts) == 0 {
		reasons = append(reasons, "never_noticed")
	}
	if float64(c.caught)/float64(c.runs) >= 0.99 {
		reasons = append(reasons, "always_caught")
	}
	return len(reasons) > 0, strings.Join(reasons, ",")
}

func printAggregate(w *strings.Builder, all []runStats) {
	combos := aggregate(all)
	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", len(all))

	totals := map[game.AlertTrigger]int{}
	complete, caught, timedOut := 0, 0, 0
	for _, c := range combos {
		complete += c.complete
		caught += c.caught
		timedOut += c.timedOut
		for k, v := range c.alerts {
			totals[k] += v
		}
	}
	fmt.Fprintf(w, "outcomes: complete=%d caught=%d timed_out=%d\n", complete, caught, timedOut)
	fmt.Fprintf(w, "alerts_by_trigger: %s\n\n", formatAlerts(totals))

	for _, c := range combos {
		avgScore := "n/a"
		if c.complete > 0 {
			avgScore = fmt.Sprintf("%.0f", float64(c.scoreSum)/float64(c.complete))
		}
		fmt.Fprintf(w, "  %-18s %-9s complete=%d/%d caught=%d timeout=%d avg_score=%s alerts=%s",
			c.level, c.difficulty, c.complete, c.runs, c.caught, c.timedOut, avgScore, formatAlerts(c.alerts))
		if flagged, reason := flagCombo(c); flagged {
			fmt.Fprintf(w, "  FLAG=%s", reason)
		}
		fmt.Fprintln(w)
	}
}

func totalAlerts(m map[game.AlertTrigger]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func formatAlerts(m map[game.AlertTrigger]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]game.AlertTrigger, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, ",")
}
