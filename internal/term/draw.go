package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

func (a *App) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func (a *App) centred(y int, s string, st tcell.Style) {
	w, _ := a.screen.Size()
	a.text((w-len([]rune(s)))/2, y, s, st)
}

// Draw renders the current state and shows the frame.
func (a *App) Draw() {
	a.screen.Clear()
	s := a.run.Snapshot()
	_, h := a.screen.Size()
	mid := h / 2

	switch s.State {
	case game.StateDifficultySelect:
		a.centred(mid-6, "Select Difficulty", stTitle)
		for i, name := range game.DifficultyNames() {
			st, label := stText, name
			if i == a.menuIndex {
				st, label = stAccent, "> "+name+" <"
			}
			a.centred(mid-3+i, label, st)
		}
		a.centred(mid+4, "up/down and Enter, q quits", stText)
	case game.StateBriefing:
		a.centred(mid-3, "PIXEL BANK HEIST", stTitle)
		a.centred(mid-1, "Difficulty: "+s.Difficulty.Name, stText)
		a.centred(mid, fmt.Sprintf("High Score: %d", a.best[s.Difficulty.Name]), stAccent)
		a.centred(mid+2, "Press any key to start the heist", stText)
	default:
		a.drawPlay(s)
	}
	a.screen.Show()
}

func (a *App) drawPlay(s game.Snapshot) {
	grid := rasterize(s)
	for y, row := range grid.cells {
		for x, c := range row {
			a.screen.SetContent(x+1, y+1, c.r, nil, c.style)
		}
	}

	hx := grid.cols + 3
	bar := 20
	fill := 0
	if s.Threshold > 0 {
		fill = int(float64(bar) * min(1, s.Meter/s.Threshold))
	}
	meter := make([]rune, bar)
	for i := range meter {
		meter[i] = '-'
		if i < fill {
			meter[i] = '='
		}
	}
	a.text(hx, 1, "["+string(meter)+"]", stDanger)
	a.text(hx, 2, fmt.Sprintf("Time: %ds", int(s.Remaining)), stText)
	a.text(hx, 3, fmt.Sprintf("Level %d/%d %s", s.LevelIndex+1, s.LevelCount, s.LevelName), stText)
	a.text(hx, 4, s.Difficulty.Name, stText)
	a.text(hx, 5, fmt.Sprintf("Treasures left: %d  Keys: %d", len(s.Treasures), len(s.Keys)), stAccent)
	emp := "EMP: USED / N/A"
	if s.EMPActive {
		emp = "EMP: ACTIVE"
	} else if s.EMPReady {
		emp = "EMP: READY"
	}
	a.text(hx, 6, emp, stText)
	a.text(hx, 7, fmt.Sprintf("Score: %d", s.Total), stText)
	for i, line := range a.feed {
		a.text(hx, 9+i, line, stText)
	}

	foot := grid.rows + 2
	a.text(1, foot, "WASD/arrows move | c crouch | e EMP | Esc menu | q quit", stText)
	switch s.State {
	case game.StateCaught:
		a.text(1, foot+1, "CAUGHT BY SECURITY - any key retries, Esc for menu", stDanger)
	case game.StateTimedOut:
		a.text(1, foot+1, "OUT OF TIME - any key retries, Esc for menu", stDanger)
	case game.StateLevelComplete:
		a.text(1, foot+1, fmt.Sprintf("LEVEL CLEARED +%d (total %d) - any key continues", s.LastScore, s.Total), stAccent)
	case game.StateRunComplete:
		msg := fmt.Sprintf("HEIST COMPLETE total %d, best %d", s.Total, a.best[s.Difficulty.Name])
		if a.newRecord {
			msg += " NEW RECORD"
		}
		a.text(1, foot+1, msg+" - any key for menu", stAccent)
	}
}
