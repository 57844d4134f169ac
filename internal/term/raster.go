package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

// cellsPerTile is the horizontal stretch; terminal cells are about twice as
// tall as they are wide.
const cellsPerTile = 2

type cell struct {
	r     rune
	style tcell.Style
}

var (
	stFloor    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(40, 40, 90))
	stWall     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(70, 70, 160))
	stDoor     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(139, 69, 19))
	stTreasure = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stKey      = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stPowerup  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stExit     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	stExitShut = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	stCone     = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	stConeHot  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stGuard    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stAlerted  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stPlayer   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	stText     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	stAccent   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	stTitle    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	stDanger   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// rasterGrid is the map as terminal cells.
type rasterGrid struct {
	cols, rows int
	cells      [][]cell
}

func newRasterGrid(s game.Snapshot) *rasterGrid {
	cols := int(s.Width/game.TileSize) * cellsPerTile
	rows := int(s.Height / game.TileSize)
	g := &rasterGrid{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range g.cells {
		g.cells[y] = make([]cell, cols)
		for x := range g.cells[y] {
			g.cells[y][x] = cell{'.', stFloor}
		}
	}
	return g
}

// cellAt maps a world point to a cell, reporting false outside the map.
func (g *rasterGrid) cellAt(p game.Vec2) (int, int, bool) {
	x := int(p.X / game.TileSize * cellsPerTile)
	y := int(p.Y / game.TileSize)
	if p.X < 0 || p.Y < 0 || x >= g.cols || y >= g.rows {
		return 0, 0, false
	}
	return x, y, true
}

// centre is the world point in the middle of cell (x, y).
func (g *rasterGrid) centre(x, y int) game.Vec2 {
	w := float64(game.TileSize) / cellsPerTile
	return game.Vec2{X: (float64(x) + 0.5) * w, Y: (float64(y) + 0.5) * game.TileSize}
}

func (g *rasterGrid) set(p game.Vec2, r rune, st tcell.Style) {
	if x, y, ok := g.cellAt(p); ok {
		g.cells[y][x] = cell{r, st}
	}
}

// fill paints every cell whose centre lies inside rect.
func (g *rasterGrid) fill(rect game.Rect, r rune, st tcell.Style) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			if rect.Contains(g.centre(x, y)) {
				g.cells[y][x] = cell{r, st}
			}
		}
	}
}

// rasterize draws the snapshot's world. Later layers overwrite earlier ones.
func rasterize(s game.Snapshot) *rasterGrid {
	g := newRasterGrid(s)
	if !s.EMPActive {
		for _, gv := range s.Guards {
			st := stCone
			if gv.Seeing {
				st = stConeHot
			}
			for y := 0; y < g.rows; y++ {
				for x := 0; x < g.cols; x++ {
					c := g.centre(x, y)
					if game.InCone(gv.Pos, gv.Facing, c, gv.VisionRadius) &&
						game.LineOfSight(gv.Pos, c, s.Walls, 0) {
						g.cells[y][x] = cell{':', st}
					}
				}
			}
		}
	}
	for _, w := range s.Walls {
		g.fill(w, '#', stWall)
	}
	for _, d := range s.LockedDoors {
		g.fill(d, '+', stDoor)
	}
	if s.HasExit {
		st := stExit
		if len(s.Treasures) > 0 {
			st = stExitShut
		}
		g.set(s.Exit.Center(), 'E', st)
	}
	for _, t := range s.Treasures {
		g.set(t.Center(), '$', stTreasure)
	}
	for _, k := range s.Keys {
		g.set(k.Center(), 'k', stKey)
	}
	for _, p := range s.Powerups {
		r := 'S'
		if p.Kind == game.PowerupInvisibility {
			r = 'I'
		}
		g.set(p.Rect.Center(), r, stPowerup)
	}
	for _, gv := range s.Guards {
		st := stGuard
		if gv.State == game.GuardAlerted {
			st = stAlerted
		}
		g.set(gv.Pos, 'G', st)
	}
	player := '@'
	if s.Crouched {
		player = 'a'
	}
	g.set(s.Player, player, stPlayer)
	return g
}

// lines returns the glyphs row by row.
func (g *rasterGrid) lines() []string {
	out := make([]string, g.rows)
	for y, row := range g.cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.r
		}
		out[y] = string(rs)
	}
	return out
}
