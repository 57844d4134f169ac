package game

import "fmt"

// TestSim is a headless harness around a single-level Run, used by tests and
// the headless report. It skips the menus: NewTestSim returns a sim already
// in StatePlaying.
type TestSim struct {
	Run    *Run
	Level  *Level
	SimLog *SimLog
	Events []Event

	// Input is applied every tick. ToggleCrouch and EMP are one-shot and
	// cleared after the tick that consumed them.
	Input Input

	rows       []string
	difficulty string
	tuning     Tuning
	walls      []Rect
	guards     []Vec2
	patrols    []PatrolKind
	player     *Vec2
	tick       int
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid, tuning, difficulty, verbose: applied first
	simOptActor                      // walls, guards, player: applied to the parsed level
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGrid replaces the default open floor with a parsed level grid.
func WithGrid(rows ...string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rows = rows
	}}
}

// WithLevel runs on lvl instead of a grid. The level is modified in place
// by the actor options, so pass a freshly parsed one.
func WithLevel(lvl *Level) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Level = lvl
	}}
}

// WithDifficulty selects the difficulty profile by name.
func WithDifficulty(name string) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.difficulty = name
	}}
}

// WithTuning overrides the default tuning.
func WithTuning(t Tuning) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.tuning = t
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithWall adds a wall rectangle on top of the grid.
func WithWall(x, y, w, h float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.walls = append(ts.walls, Rect{X: x, Y: y, W: w, H: h})
	}}
}

// WithGuard adds a guard spawn with an explicit patrol pattern. Guards from
// the grid come first and keep their default patterns.
func WithGuard(x, y float64, kind PatrolKind) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.guards = append(ts.guards, Vec2{x, y})
		ts.patrols = append(ts.patrols, kind)
	}}
}

// WithPlayerAt moves the player spawn.
func WithPlayerAt(x, y float64) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.player = &Vec2{x, y}
	}}
}

// defaultSimGrid is an open 32x18 room with no walls.
func defaultSimGrid() []string {
	rows := make([]string, 18)
	for i := range rows {
		rows[i] = fmt.Sprintf("%32s", "")
	}
	return rows
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid or level, tuning, difficulty, verbose)
//  2. Parse the grid unless a level was given
//  3. Actors (walls, guards, player spawn)
//  4. Start the run on the level
//
// It panics on an unknown difficulty name; the harness is only driven by
// code with fixed inputs.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		difficulty: DefaultDifficulty,
		tuning:     DefaultTuning(),
		SimLog:     NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.Level == nil {
		rows := ts.rows
		if rows == nil {
			rows = defaultSimGrid()
		}
		ts.Level = ParseLevel("test", rows)
	}

	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	ts.applyActors()

	run, err := NewRun([]*Level{ts.Level}, ts.tuning, WithSimLog(ts.SimLog))
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	if err := run.SelectDifficulty(ts.difficulty); err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	if err := run.Acknowledge(); err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Run = run
	return ts
}

// applyActors merges the actor options into the parsed level.
func (ts *TestSim) applyActors() {
	lvl := ts.Level
	lvl.Walls = append(lvl.Walls, ts.walls...)
	if ts.player != nil {
		lvl.PlayerSpawn = *ts.player
	}
	if len(ts.guards) == 0 {
		return
	}
	for i := range lvl.GuardSpawns {
		lvl.GuardPatrols = append(lvl.GuardPatrols, PatrolFor(i))
	}
	lvl.GuardSpawns = append(lvl.GuardSpawns, ts.guards...)
	lvl.GuardPatrols = append(lvl.GuardPatrols, ts.patrols...)
}

// RunTicks advances the simulation n ticks, stopping early if the level ends.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if !ts.runOneTick() {
			return
		}
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if !ts.runOneTick() {
			if predicate(ts) {
				return ts.tick
			}
			return -1
		}
		if predicate(ts) {
			return ts.tick
		}
	}
	return -1
}

// runOneTick steps the run once and reports whether it is still playing.
func (ts *TestSim) runOneTick() bool {
	if ts.Run.State() != StatePlaying {
		return false
	}
	ts.tick++
	evs := ts.Run.Step(ts.Input)
	ts.Input.ToggleCrouch = false
	ts.Input.EMP = false
	ts.Events = append(ts.Events, evs...)

	if ts.SimLog.Verbose() {
		p := ts.Run.Player()
		ts.SimLog.AddVerbose(ts.Run.Tick(), "P", "move", "position",
			fmt.Sprintf("(%.1f,%.1f)", p.Pos.X, p.Pos.Y), 0)
		m := ts.Run.Meter()
		ts.SimLog.AddVerbose(ts.Run.Tick(), "P", "sense", "meter",
			fmt.Sprintf("%.3f/%.2f", m.Value, m.Threshold), m.Value)
		for _, g := range ts.Run.Guards() {
			ts.SimLog.AddVerbose(ts.Run.Tick(), guardLabel(g.ID), "move", "position",
				fmt.Sprintf("(%.1f,%.1f) %s", g.Pos.X, g.Pos.Y, g.State()), 0)
		}
	}
	return ts.Run.State() == StatePlaying
}

// RunBot lets b drive the player for up to maxTicks and returns the state
// the level ended in, StatePlaying if it never ended.
func (ts *TestSim) RunBot(b *Bot, maxTicks int) RunState {
	for i := 0; i < maxTicks; i++ {
		ts.Input = b.Next(ts.Run.Snapshot())
		if !ts.runOneTick() {
			break
		}
	}
	return ts.Run.State()
}

// CurrentTick returns the number of ticks the harness has stepped.
func (ts *TestSim) CurrentTick() int {
	return ts.tick
}

// Guard returns the guard with id, or nil.
func (ts *TestSim) Guard(id int) *Guard {
	for _, g := range ts.Run.Guards() {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// CountEvents returns how many events of kind have been emitted so far.
func (ts *TestSim) CountEvents(kind EventKind) int {
	n := 0
	for _, e := range ts.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Snapshot returns the run's current snapshot.
func (ts *TestSim) Snapshot() Snapshot {
	return ts.Run.Snapshot()
}
