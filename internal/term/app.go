// Package term is a terminal frontend over tcell. Each map tile is drawn
// as two cells; guards, pickups and view cones are glyphs.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Stealth-Sense/internal/audio"
	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/logger"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
)

// holdWindow is how long a movement key counts as held after its last
// press. Terminals report key repeats, not releases.
const holdWindow = 220 * time.Millisecond

const feedLines = 8

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

// Options are the collaborators an App needs besides the run.
type Options struct {
	Store    scores.Store
	Audio    audio.Player
	Log      *logrus.Entry
	TickRate int
}

// App drives a game.Run from a tcell screen.
type App struct {
	screen tcell.Screen
	run    *game.Run
	store  scores.Store
	audio  audio.Player
	log    *logrus.Entry
	rate   int

	held       [dirCount]time.Time
	wantCrouch bool
	wantEMP    bool
	menuIndex  int
	quit       bool

	best      scores.Table
	newRecord bool
	feed      []string
}

// New wires an App. The screen must already be initialised.
func New(screen tcell.Screen, run *game.Run, opts Options) *App {
	a := &App{
		screen: screen,
		run:    run,
		store:  opts.Store,
		audio:  opts.Audio,
		log:    opts.Log,
		rate:   opts.TickRate,
		best:   scores.ZeroTable(),
	}
	if a.audio == nil {
		a.audio = audio.Nop{}
	}
	if a.log == nil {
		a.log = logger.Component("term")
	}
	if a.rate <= 0 {
		a.rate = 60
	}
	for i, name := range game.DifficultyNames() {
		if name == run.Difficulty().Name {
			a.menuIndex = i
		}
	}
	a.loadBest()
	return a
}

func (a *App) loadBest() {
	if a.store == nil {
		return
	}
	if t, err := a.store.Best(); err == nil {
		a.best = t
	}
}

// Run polls input and steps the game at the tick rate until the user quits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go a.poll(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(a.rate))
	defer ticker.Stop()

	for !a.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.HandleKey(ev, time.Now())
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case now := <-ticker.C:
			a.Tick(now)
			a.Draw()
		}
	}
	return nil
}

// poll forwards screen events until the screen is finalised or done closes.
func (a *App) poll(events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// HandleKey applies one key event. Movement keys only refresh their hold
// timers; everything else acts immediately.
func (a *App) HandleKey(ev *tcell.EventKey, now time.Time) {
	if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		a.quit = true
		return
	}

	if d, ok := keyDirection(ev); ok {
		a.held[d] = now
		if a.run.State() == game.StateDifficultySelect {
			a.moveMenu(d)
		}
		return
	}

	switch a.run.State() {
	case game.StateDifficultySelect:
		if ev.Key() == tcell.KeyEnter {
			a.command("select", a.run.SelectDifficulty(game.DifficultyNames()[a.menuIndex]))
		}
	case game.StateBriefing:
		if ev.Key() == tcell.KeyEscape {
			a.command("menu", a.run.ReturnToMenu())
		} else {
			a.command("start", a.run.Acknowledge())
			a.resetLevel()
		}
	case game.StatePlaying:
		switch {
		case ev.Key() == tcell.KeyEscape:
			a.command("menu", a.run.ReturnToMenu())
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'c' || ev.Rune() == 'C'):
			a.wantCrouch = !a.wantCrouch
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'e' || ev.Rune() == 'E'):
			a.wantEMP = true
		}
	case game.StateCaught, game.StateTimedOut:
		if ev.Key() == tcell.KeyEscape {
			a.command("menu", a.run.ReturnToMenu())
		} else {
			a.command("retry", a.run.Retry())
			a.resetLevel()
		}
	case game.StateLevelComplete:
		a.command("advance", a.run.Advance())
		a.resetLevel()
	case game.StateRunComplete:
		a.command("menu", a.run.ReturnToMenu())
		a.newRecord = false
	}
}

func keyDirection(ev *tcell.EventKey) (direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dirUp, true
	case tcell.KeyDown:
		return dirDown, true
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return dirUp, true
		case 's', 'S':
			return dirDown, true
		case 'a', 'A':
			return dirLeft, true
		case 'd', 'D':
			return dirRight, true
		}
	}
	return 0, false
}

func (a *App) moveMenu(d direction) {
	n := len(game.DifficultyNames())
	switch d {
	case dirUp:
		a.menuIndex = (a.menuIndex - 1 + n) % n
	case dirDown:
		a.menuIndex = (a.menuIndex + 1) % n
	}
}

func (a *App) command(name string, err error) {
	if err != nil {
		a.log.WithError(err).WithField("command", name).Debug("command rejected")
	}
}

func (a *App) resetLevel() {
	a.held = [dirCount]time.Time{}
	a.wantCrouch = false
	a.wantEMP = false
	a.feed = a.feed[:0]
}

// input builds the tick input from the hold timers at now.
func (a *App) input(now time.Time) game.Input {
	isHeld := func(d direction) bool {
		t := a.held[d]
		return !t.IsZero() && now.Sub(t) <= holdWindow
	}
	var in game.Input
	if isHeld(dirRight) {
		in.Move.DX++
	}
	if isHeld(dirLeft) {
		in.Move.DX--
	}
	if isHeld(dirDown) {
		in.Move.DY++
	}
	if isHeld(dirUp) {
		in.Move.DY--
	}
	if p := a.run.Player(); p != nil {
		in.ToggleCrouch = a.wantCrouch != p.Crouch
	}
	in.EMP = a.wantEMP
	a.wantEMP = false
	return in
}

// Tick advances the run one step when playing.
func (a *App) Tick(now time.Time) {
	if a.run.State() != game.StatePlaying {
		return
	}
	events := a.run.Step(a.input(now))
	for _, e := range events {
		if e.Kind == game.EventSoundEmitted {
			continue
		}
		a.feed = append(a.feed, fmt.Sprintf("%5d %s", e.Tick, e))
		if e.Kind == game.EventRunComplete {
			a.recordRun(e.Score)
		}
	}
	if len(a.feed) > feedLines {
		a.feed = a.feed[len(a.feed)-feedLines:]
	}
	audio.PlayEvents(a.audio, events)
}

func (a *App) recordRun(total int) {
	if a.store == nil {
		return
	}
	improved, err := a.store.Submit(scores.NewRunRecord(a.run.Difficulty().Name, total, a.run.LevelCount()))
	if err != nil {
		a.log.WithError(err).Warn("could not save high score")
		return
	}
	a.newRecord = improved
	a.loadBest()
}
