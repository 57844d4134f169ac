package game

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrNoLevels is returned by NewRun when the campaign is empty.
var ErrNoLevels = errors.New("run has no levels")

// Input is the player's intent for one tick.
type Input struct {
	Move         MoveIntent
	ToggleCrouch bool
	EMP          bool
}

// RunOption configures a Run at construction.
type RunOption func(*Run)

// WithLogger routes transition and alert logging to l. A nil entry discards.
func WithLogger(l *logrus.Entry) RunOption {
	return func(r *Run) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSimLog records every emitted event into sl.
func WithSimLog(sl *SimLog) RunOption {
	return func(r *Run) { r.simLog = sl }
}

// WithStartDifficulty preselects a difficulty. Unknown names are ignored and
// the run keeps DefaultDifficulty.
func WithStartDifficulty(name string) RunOption {
	return func(r *Run) {
		if d, err := DifficultyByName(name); err == nil {
			r.difficulty = d
		}
	}
}

// Run owns one campaign: the state machine, the current level's mutable
// world and the accumulated score. It is not safe for concurrent use; a
// frontend drives it from a single loop.
type Run struct {
	levels []*Level
	tuning Tuning
	log    *logrus.Entry
	simLog *SimLog

	state      RunState
	difficulty Difficulty
	levelIndex int
	total      int
	lastScore  int

	tick      int
	player    *Player
	guards    []*Guard
	walls     []Rect // level walls plus locked doors
	doors     []Rect // still locked
	treasures []Rect
	keys      []Rect
	powerups  []Powerup
	meter     DetectionMeter

	empUsed   bool
	empActive bool
	empUntil  float64

	events []Event
}

// NewRun creates a run over levels waiting in StateDifficultySelect.
func NewRun(levels []*Level, tuning Tuning, opts ...RunOption) (*Run, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	d, err := DifficultyByName(DefaultDifficulty)
	if err != nil {
		return nil, fmt.Errorf("default difficulty: %w", err)
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	r := &Run{
		levels:     levels,
		tuning:     tuning,
		log:        logrus.NewEntry(discard),
		state:      StateDifficultySelect,
		difficulty: d,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// --- Commands ---

// SelectDifficulty picks the profile for the run and moves to the briefing.
func (r *Run) SelectDifficulty(name string) error {
	if r.state != StateDifficultySelect {
		return fmt.Errorf("select difficulty in %s: %w", r.state, ErrInvalidTransition)
	}
	d, err := DifficultyByName(name)
	if err != nil {
		return err
	}
	r.difficulty = d
	r.setState(StateBriefing)
	return nil
}

// Acknowledge dismisses the briefing and starts the first level.
func (r *Run) Acknowledge() error {
	if r.state != StateBriefing {
		return fmt.Errorf("acknowledge in %s: %w", r.state, ErrInvalidTransition)
	}
	r.total = 0
	r.lastScore = 0
	r.levelIndex = 0
	r.loadLevel()
	r.setState(StatePlaying)
	return nil
}

// Retry reloads the current level after Caught or TimedOut. The run total
// is kept.
func (r *Run) Retry() error {
	if !r.state.Retryable() {
		return fmt.Errorf("retry in %s: %w", r.state, ErrInvalidTransition)
	}
	r.loadLevel()
	r.setState(StatePlaying)
	return nil
}

// Advance moves from LevelComplete to the next level.
func (r *Run) Advance() error {
	if r.state != StateLevelComplete {
		return fmt.Errorf("advance in %s: %w", r.state, ErrInvalidTransition)
	}
	r.levelIndex++
	r.loadLevel()
	r.setState(StatePlaying)
	return nil
}

// ReturnToMenu abandons the run and goes back to difficulty selection. The
// previously chosen difficulty stays selected.
func (r *Run) ReturnToMenu() error {
	if r.state == StateDifficultySelect {
		return fmt.Errorf("return to menu in %s: %w", r.state, ErrInvalidTransition)
	}
	r.total = 0
	r.lastScore = 0
	r.levelIndex = 0
	r.setState(StateDifficultySelect)
	return nil
}

// ActivateEMP fires the EMP if the difficulty allows it, it has not been used
// on this level and none is active. It reports whether it fired. Events are
// delivered with the next Step.
func (r *Run) ActivateEMP() bool {
	if r.state != StatePlaying || !r.EMPReady() {
		return false
	}
	r.empUsed = true
	r.empActive = true
	r.empUntil = r.Elapsed() + r.tuning.EMPDuration
	r.emit(Event{Kind: EventEMPActivated, Pos: r.player.Pos})
	r.makeNoise(Sound{Origin: r.player.Pos, Radius: EMPSoundRadius, Source: SoundEMP})
	return true
}

// --- Tick ---

// Step advances the current level by one tick and returns the events it
// produced. Outside StatePlaying it does nothing and returns nil.
func (r *Run) Step(in Input) []Event {
	if r.state != StatePlaying {
		return nil
	}
	r.tick++
	now := r.Elapsed()
	dt := r.tuning.Dt()

	if r.empActive && now >= r.empUntil {
		r.empActive = false
		r.emit(Event{Kind: EventEMPExpired})
	}
	if now >= r.TimeLimit() {
		r.emit(Event{Kind: EventTimeExpired})
		r.setState(StateTimedOut)
		return r.flush()
	}

	if in.ToggleCrouch {
		r.player.Crouch = !r.player.Crouch
	}
	if in.EMP {
		r.ActivateEMP()
	}

	moved := r.player.Move(in.Move, r.walls, now)
	r.collectPickups(now)
	if snd, ok := footstep(r.player, moved); ok {
		r.makeNoise(snd)
	}

	seen := r.updateGuards(dt, now)

	if r.meter.Tripped() || r.meter.Update(seen, r.player.Crouch, dt) {
		r.emit(Event{Kind: EventPlayerCaught, Pos: r.player.Pos})
		r.setState(StateCaught)
		return r.flush()
	}

	if len(r.treasures) == 0 && r.level().HasExit && r.player.Bounds().Overlaps(r.level().Exit) {
		r.completeLevel()
	}
	return r.flush()
}

// updateGuards moves every guard, runs the sight check and relays new
// sightings. It reports whether any guard sees the player.
func (r *Run) updateGuards(dt, now float64) bool {
	senses := Senses{
		Walls:     r.walls,
		EMPActive: r.empActive,
		Now:       now,
		SightStep: r.tuning.SightStep,
	}
	seen := false
	for _, g := range r.guards {
		if g.Update(dt) {
			r.emit(Event{Kind: EventGuardStoodDown, GuardID: g.ID, Pos: g.Pos})
		}

		sees := g.SeesPlayer(r.player, senses)
		if sees && !g.Seeing {
			r.emit(Event{Kind: EventGuardSpotted, GuardID: g.ID, Pos: g.Pos})
		}
		g.Seeing = sees
		if !sees {
			continue
		}
		seen = true
		if g.Alarm(r.player.Pos, TriggerSight) {
			r.alerted(g)
			r.relay(g)
		}
	}
	return seen
}

// makeNoise propagates snd and relays from every guard it alerted.
func (r *Run) makeNoise(snd Sound) {
	r.emit(Event{Kind: EventSoundEmitted, Pos: snd.Origin, Radius: snd.Radius, Sound: snd.Source})
	for _, g := range PropagateSound(snd, r.guards, r.walls, r.tuning.SightStep) {
		r.alerted(g)
		r.relay(g)
	}
}

func (r *Run) relay(from *Guard) {
	for _, g := range BroadcastAlert(from, r.guards) {
		r.alerted(g)
	}
}

func (r *Run) alerted(g *Guard) {
	r.log.WithFields(logrus.Fields{
		"guard":   g.ID,
		"trigger": g.Trigger.String(),
		"tick":    r.tick,
	}).Debug("guard alerted")
	r.emit(Event{Kind: EventGuardAlerted, GuardID: g.ID, Pos: g.Pos, Trigger: g.Trigger})
}

// collectPickups removes every treasure, key and powerup the player box
// touches. The first key unlocks every door.
func (r *Run) collectPickups(now float64) {
	box := r.player.Bounds()

	kept := r.treasures[:0]
	for _, t := range r.treasures {
		if box.Overlaps(t) {
			r.emit(Event{Kind: EventTreasureCollected, Pos: t.Center()})
			continue
		}
		kept = append(kept, t)
	}
	r.treasures = kept

	keys := r.keys[:0]
	for _, k := range r.keys {
		if box.Overlaps(k) {
			r.emit(Event{Kind: EventKeyCollected, Pos: k.Center()})
			r.unlockDoors()
			continue
		}
		keys = append(keys, k)
	}
	r.keys = keys

	pups := r.powerups[:0]
	for _, p := range r.powerups {
		if !box.Overlaps(p.Rect) {
			pups = append(pups, p)
			continue
		}
		switch p.Kind {
		case PowerupSpeed:
			r.player.ApplySpeedBoost(r.tuning.SpeedBoostMul, now, r.tuning.SpeedBoostDuration)
		case PowerupInvisibility:
			r.player.GrantInvisibility(now, r.tuning.InvisibilityDuration)
		}
		r.emit(Event{Kind: EventPowerupCollected, Pos: p.Rect.Center(), Powerup: p.Kind})
	}
	r.powerups = pups
}

// unlockDoors removes the locked doors from the collision set. Later keys
// find nothing left to unlock.
func (r *Run) unlockDoors() {
	if len(r.doors) == 0 {
		return
	}
	walls := r.walls[:0]
	for _, w := range r.walls {
		if !containsRect(r.doors, w) {
			walls = append(walls, w)
		}
	}
	r.walls = walls
	r.emit(Event{Kind: EventDoorsUnlocked, Count: len(r.doors)})
	r.doors = nil
}

func (r *Run) completeLevel() {
	r.lastScore = LevelScore(r.Remaining(), r.meter.Value)
	r.total += r.lastScore
	r.emit(Event{Kind: EventLevelComplete, Score: r.lastScore})
	if r.levelIndex >= len(r.levels)-1 {
		r.emit(Event{Kind: EventRunComplete, Score: r.total})
		r.setState(StateRunComplete)
		return
	}
	r.setState(StateLevelComplete)
}

// loadLevel resets the per-level world for levels[levelIndex].
func (r *Run) loadLevel() {
	lvl := r.level()
	r.tick = 0
	r.player = NewPlayer(lvl.PlayerSpawn)
	r.walls = append(append([]Rect(nil), lvl.Walls...), lvl.Doors...)
	r.doors = append([]Rect(nil), lvl.Doors...)
	r.treasures = append([]Rect(nil), lvl.Treasures...)
	r.keys = append([]Rect(nil), lvl.Keys...)
	r.powerups = append([]Powerup(nil), lvl.Powerups...)
	r.meter = NewDetectionMeter(r.difficulty.DetectThreshold)
	r.empUsed = false
	r.empActive = false
	r.empUntil = 0

	r.guards = r.guards[:0]
	for i, pos := range lvl.GuardSpawns {
		r.guards = append(r.guards, NewGuard(i, pos, lvl.patrolFor(i), r.tuning.PatrolRange,
			r.difficulty.VisionRadius, r.difficulty.GuardSpeed))
	}
}

func (r *Run) setState(s RunState) {
	prev := r.state
	r.state = s
	r.log.WithFields(logrus.Fields{
		"from":       prev.String(),
		"to":         s.String(),
		"level":      r.levelIndex,
		"difficulty": r.difficulty.Name,
		"total":      r.total,
	}).Info("run state changed")
	if r.simLog != nil {
		r.simLog.Add(r.tick, "--", "state", s.String(), prev.String()+" -> "+s.String(), float64(r.total))
	}
}

func (r *Run) emit(e Event) {
	e.Tick = r.tick
	r.events = append(r.events, e)
	if r.simLog != nil {
		r.simLog.AddEvent(e)
	}
}

// flush hands over the events gathered since the last Step.
func (r *Run) flush() []Event {
	out := r.events
	r.events = nil
	return out
}

func containsRect(rs []Rect, r Rect) bool {
	for _, o := range rs {
		if o == r {
			return true
		}
	}
	return false
}

// --- Queries ---

// State returns the current run state.
func (r *Run) State() RunState { return r.state }

// Difficulty returns the selected difficulty profile.
func (r *Run) Difficulty() Difficulty { return r.difficulty }

// LevelIndex returns the zero-based index of the current level.
func (r *Run) LevelIndex() int { return r.levelIndex }

// LevelCount returns the number of levels in the campaign.
func (r *Run) LevelCount() int { return len(r.levels) }

// Tick returns the ticks elapsed on the current level.
func (r *Run) Tick() int { return r.tick }

// Total returns the accumulated score for the run.
func (r *Run) Total() int { return r.total }

// LastScore returns the score awarded for the most recently finished level.
func (r *Run) LastScore() int { return r.lastScore }

// Elapsed returns the simulation seconds spent on the current level.
func (r *Run) Elapsed() float64 { return float64(r.tick) * r.tuning.Dt() }

// TimeLimit returns the level time limit for the selected difficulty.
func (r *Run) TimeLimit() float64 { return r.tuning.BaseTimeLimit * r.difficulty.TimeMult }

// Remaining returns the seconds left on the clock, never negative.
func (r *Run) Remaining() float64 { return max(0, r.TimeLimit()-r.Elapsed()) }

// EMPReady reports whether an EMP could fire right now.
func (r *Run) EMPReady() bool {
	return r.difficulty.EMPAvailable && !r.empUsed && !r.empActive
}

// EMPActive reports whether guards are currently blinded.
func (r *Run) EMPActive() bool { return r.empActive }

// Meter returns a copy of the detection meter.
func (r *Run) Meter() DetectionMeter { return r.meter }

// Player returns the live player. Callers must not mutate it.
func (r *Run) Player() *Player { return r.player }

// Guards returns the live guards. Callers must not mutate them.
func (r *Run) Guards() []*Guard { return r.guards }

// Walls returns the current collision set, locked doors included.
func (r *Run) Walls() []Rect { return r.walls }

func (r *Run) level() *Level { return r.levels[r.levelIndex] }
