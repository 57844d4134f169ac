// Package view is the ebiten frontend: it polls the keyboard, steps the run
// once per frame and draws snapshots.
package view

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Stealth-Sense/internal/audio"
	"github.com/Garsondee/Stealth-Sense/internal/game"
	"github.com/Garsondee/Stealth-Sense/internal/logger"
	"github.com/Garsondee/Stealth-Sense/internal/scores"
)

// borderWidth is the pixel gap between the window edge and the map.
const borderWidth = 20

// statusTicks is how long a status line stays on screen.
const statusTicks = 180

// Options are the collaborators a Game needs besides the run.
type Options struct {
	Store scores.Store // nil disables persistence
	Audio audio.Player // nil is silent
	Log   *logrus.Entry
}

// Game implements ebiten.Game around a game.Run.
type Game struct {
	run   *game.Run
	store scores.Store
	audio audio.Player
	log   *logrus.Entry

	fonts *Fonts
	feed  *EventFeed
	fx    *Effects
	latch crouchLatch

	best      scores.Table
	newRecord bool
	menuIndex int

	status     string
	statusLeft int

	width, height int
	mapW, mapH    int

	worldBuf *ebiten.Image
	coneBuf  *ebiten.Image
}

// New builds the frontend. The window is sized for the largest level.
func New(run *game.Run, levels []*game.Level, opts Options) (*Game, error) {
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}
	g := &Game{
		run:   run,
		store: opts.Store,
		audio: opts.Audio,
		log:   opts.Log,
		fonts: fonts,
		feed:  NewEventFeed(),
		fx:    NewEffects(time.Now().UnixNano()),
		best:  scores.ZeroTable(),
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.log == nil {
		g.log = logger.Component("view")
	}
	for _, lvl := range levels {
		g.mapW = max(g.mapW, int(lvl.Width()))
		g.mapH = max(g.mapH, int(lvl.Height()))
	}
	g.width = borderWidth*2 + g.mapW + feedPanelWidth
	g.height = borderWidth*2 + g.mapH
	g.worldBuf = ebiten.NewImage(g.mapW, g.mapH)
	g.coneBuf = ebiten.NewImage(g.mapW, g.mapH)

	for i, name := range game.DifficultyNames() {
		if name == run.Difficulty().Name {
			g.menuIndex = i
		}
	}
	g.loadBest()
	return g, nil
}

// WindowSize is the preferred window size in pixels.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) loadBest() {
	if g.store == nil {
		return
	}
	t, err := g.store.Best()
	if err != nil {
		g.log.WithError(err).Warn("could not read high scores")
		return
	}
	g.best = t
}

// Update runs once per ebiten tick.
func (g *Game) Update() error {
	k := readKeys()
	if k.CopyPressed {
		g.copySummary()
	}
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}

	switch st := g.run.State(); st {
	case game.StateDifficultySelect:
		g.updateDifficultyMenu(k)
	case game.StateBriefing:
		if k.BackPressed {
			g.command("menu", g.run.ReturnToMenu())
		} else if k.AnyPressed && !k.CopyPressed {
			g.command("start", g.run.Acknowledge())
			g.resetLevel()
		}
	case game.StatePlaying:
		if k.BackPressed {
			g.command("menu", g.run.ReturnToMenu())
			break
		}
		in := g.latch.playInput(k, g.run.Player().Crouch)
		g.handle(g.run.Step(in))
		g.fx.Watch(g.run.Guards())
	case game.StateCaught, game.StateTimedOut:
		if k.BackPressed {
			g.command("menu", g.run.ReturnToMenu())
		} else if k.AnyPressed && !k.CopyPressed {
			g.command("retry", g.run.Retry())
			g.resetLevel()
		}
	case game.StateLevelComplete:
		if k.AnyPressed && !k.CopyPressed {
			g.command("advance", g.run.Advance())
			g.resetLevel()
		}
	case game.StateRunComplete:
		if k.AnyPressed && !k.CopyPressed {
			g.command("menu", g.run.ReturnToMenu())
			g.newRecord = false
		}
	}
	g.fx.Update()
	return nil
}

func (g *Game) updateDifficultyMenu(k keyState) {
	n := len(game.DifficultyNames())
	switch {
	case k.UpPressed:
		g.menuIndex = (g.menuIndex - 1 + n) % n
	case k.DownPressed:
		g.menuIndex = (g.menuIndex + 1) % n
	case k.ConfirmPress:
		g.command("select", g.run.SelectDifficulty(game.DifficultyNames()[g.menuIndex]))
	}
}

// command logs a failed transition. Keys that do not apply in the current
// state are expected, so failures are debug noise rather than errors.
func (g *Game) command(name string, err error) {
	if err != nil {
		g.log.WithError(err).WithField("command", name).Debug("command rejected")
	}
}

func (g *Game) resetLevel() {
	g.fx.Reset()
	g.feed.Clear()
	g.latch = crouchLatch{}
}

// handle fans one tick's events out to the feed, effects, audio and score
// store.
func (g *Game) handle(events []game.Event) {
	if len(events) == 0 {
		return
	}
	for _, e := range events {
		g.feed.Add(e)
		if e.Kind == game.EventRunComplete {
			g.recordRun(e.Score)
		}
	}
	g.fx.React(events, g.run.Player().Pos)
	audio.PlayEvents(g.audio, events)
}

func (g *Game) recordRun(total int) {
	if g.store == nil {
		return
	}
	rec := scores.NewRunRecord(g.run.Difficulty().Name, total, g.run.LevelCount())
	improved, err := g.store.Submit(rec)
	if err != nil {
		g.log.WithError(err).Warn("could not save high score")
		return
	}
	g.newRecord = improved
	g.loadBest()
}

func (g *Game) copySummary() {
	summary := RunSummary(g.run.Snapshot(), g.best, g.feed.Recent())
	if err := clipboard.WriteAll(summary); err != nil {
		g.log.WithError(err).Warn("clipboard unavailable")
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("summary copied to clipboard")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusLeft = statusTicks
}

// Draw renders the current state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBG)
	s := g.run.Snapshot()

	switch s.State {
	case game.StateDifficultySelect:
		g.drawDifficultyMenu(screen)
		return
	case game.StateBriefing:
		g.drawBriefing(screen, s)
		return
	}

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf, s)
	ox, oy := g.fx.Offset()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(borderWidth+ox, borderWidth+oy)
	screen.DrawImage(g.worldBuf, op)

	g.feed.Draw(screen, g.fonts, g.width-feedPanelWidth, g.height)
	g.drawHUD(screen, s)
	if s.State != game.StatePlaying {
		g.drawOutcome(screen, s)
	}
}

// Layout keeps a fixed logical resolution.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
