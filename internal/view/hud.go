package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

const (
	meterW = 200
	meterH = 16
)

// drawHUD overlays the play status in screen space.
func (g *Game) drawHUD(screen *ebiten.Image, s game.Snapshot) {
	const x, y = 20, 20
	vector.FillRect(screen, x-8, y-8, 360, 150, color.RGBA{R: 0, G: 0, B: 10, A: 170}, false)

	// Detection bar.
	vector.FillRect(screen, x, y, meterW, meterH, color.RGBA{R: 60, A: 255}, false)
	ratio := 0.0
	if s.Threshold > 0 {
		ratio = min(1, s.Meter/s.Threshold)
	}
	vector.FillRect(screen, x, y, float32(meterW*ratio), meterH, color.RGBA{R: 255, A: 255}, false)
	vector.StrokeRect(screen, x, y, meterW, meterH, 1, colDim, false)

	lines := []struct {
		s string
		c color.Color
	}{
		{fmt.Sprintf("Time: %ds", int(s.Remaining)), timeColor(s.Remaining)},
		{fmt.Sprintf("Level %d/%d %s | %s", s.LevelIndex+1, s.LevelCount, s.LevelName, s.Difficulty.Name), colText},
		{objectives(s), colAccent},
		{empLabel(s), colText},
		{fmt.Sprintf("Score: %d", s.Total), colText},
	}
	for i, l := range lines {
		g.fonts.Draw(screen, l.s, g.fonts.Small, x, float64(y+meterH+6+i*18), l.c)
	}

	controls := "WASD move | SHIFT hold / C toggle crouch | E EMP | ESC menu | F2 copy summary"
	g.fonts.Draw(screen, controls, g.fonts.Small, x, float64(g.height-26), colDim)
	if g.status != "" {
		g.fonts.Draw(screen, g.status, g.fonts.Small, x, float64(g.height-46), colAccent)
	}
}

func timeColor(remaining float64) color.Color {
	if remaining < 15 {
		return colDanger
	}
	return colText
}

func objectives(s game.Snapshot) string {
	out := fmt.Sprintf("Treasures left: %d", len(s.Treasures))
	if len(s.Keys) > 0 {
		out += fmt.Sprintf(" | Keys left: %d", len(s.Keys))
	}
	if len(s.LockedDoors) > 0 {
		out += " | Doors locked"
	}
	return out
}

func empLabel(s game.Snapshot) string {
	switch {
	case s.EMPActive:
		return "EMP: ACTIVE"
	case s.EMPReady:
		return "EMP: READY"
	default:
		return "EMP: USED / N/A"
	}
}

// --- Menus ---

func (g *Game) drawDifficultyMenu(screen *ebiten.Image) {
	cx, cy := float64(g.width)/2, float64(g.height)/2
	g.fonts.DrawCentered(screen, "Select Difficulty", g.fonts.Big, cx, cy-140, colTitle)
	for i, name := range game.DifficultyNames() {
		c := color.Color(colText)
		label := name
		if i == g.menuIndex {
			c = colAccent
			label = "> " + name + " <"
		}
		g.fonts.DrawCentered(screen, label, g.fonts.Body, cx, cy-50+float64(i)*32, c)
	}
	g.fonts.DrawCentered(screen, "Up / Down and Enter", g.fonts.Body, cx, cy+130, colDim)
}

func (g *Game) drawBriefing(screen *ebiten.Image, s game.Snapshot) {
	cx, cy := float64(g.width)/2, float64(g.height)/2
	g.fonts.DrawCentered(screen, "PIXEL BANK HEIST", g.fonts.Big, cx, cy-90, colTitle)
	g.fonts.DrawCentered(screen, "Difficulty: "+s.Difficulty.Name, g.fonts.Body, cx, cy-20, colText)
	g.fonts.DrawCentered(screen, fmt.Sprintf("High Score: %d", g.best[s.Difficulty.Name]), g.fonts.Body, cx, cy+12, colAccent)
	g.fonts.DrawCentered(screen, "Press any key to start the heist", g.fonts.Body, cx, cy+64, colDim)
}

func (g *Game) drawOutcome(screen *ebiten.Image, s game.Snapshot) {
	cx, cy := float64(g.width)/2, float64(g.height)/2
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 180}, false)
	switch s.State {
	case game.StateCaught:
		g.fonts.DrawCentered(screen, "CAUGHT BY SECURITY", g.fonts.Big, cx, cy-40, colDanger)
		g.fonts.DrawCentered(screen, "Any key: retry this level | ESC: menu", g.fonts.Body, cx, cy+20, colText)
	case game.StateTimedOut:
		g.fonts.DrawCentered(screen, "OUT OF TIME", g.fonts.Big, cx, cy-40, colDanger)
		g.fonts.DrawCentered(screen, "Any key: retry this level | ESC: menu", g.fonts.Body, cx, cy+20, colText)
	case game.StateLevelComplete:
		g.fonts.DrawCentered(screen, "LEVEL CLEARED", g.fonts.Big, cx, cy-60, colExit)
		g.fonts.DrawCentered(screen, fmt.Sprintf("+%d  (total %d)", s.LastScore, s.Total), g.fonts.Body, cx, cy, colText)
		g.fonts.DrawCentered(screen, "Press any key for the next level", g.fonts.Body, cx, cy+40, colDim)
	case game.StateRunComplete:
		g.fonts.DrawCentered(screen, "HEIST COMPLETE", g.fonts.Big, cx, cy-60, color.RGBA{G: 255, B: 160, A: 255})
		g.fonts.DrawCentered(screen, fmt.Sprintf("Total Score: %d", s.Total), g.fonts.Body, cx, cy, colText)
		best := fmt.Sprintf("High Score (%s): %d", s.Difficulty.Name, g.best[s.Difficulty.Name])
		if g.newRecord {
			best += "  NEW RECORD"
		}
		g.fonts.DrawCentered(screen, best, g.fonts.Body, cx, cy+30, colAccent)
		g.fonts.DrawCentered(screen, "Press any key to go back to difficulty menu", g.fonts.Body, cx, cy+70, colDim)
	}
}
