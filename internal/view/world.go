package view

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

const coneSteps = 32

func fillRect(dst *ebiten.Image, r game.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// drawWorld renders the level at world coordinates into dst.
func (g *Game) drawWorld(dst *ebiten.Image, s game.Snapshot) {
	dst.Fill(colBG)
	w, h := int(s.Width), int(s.Height)

	for x := 0; x <= w; x += game.TileSize {
		vector.StrokeLine(dst, float32(x), 0, float32(x), float32(h), 1.0, colGrid, false)
	}
	for y := 0; y <= h; y += game.TileSize {
		vector.StrokeLine(dst, 0, float32(y), float32(w), float32(y), 1.0, colGrid, false)
	}

	for _, wall := range s.Walls {
		if containsRect(s.LockedDoors, wall) {
			continue
		}
		fillRect(dst, wall, colWall)
		vector.StrokeRect(dst, float32(wall.X), float32(wall.Y), float32(wall.W), float32(wall.H), 1.0, colWallEdge, false)
	}
	for _, d := range s.LockedDoors {
		fillRect(dst, d, colDoor)
		c := d.Center()
		vector.FillCircle(dst, float32(c.X), float32(c.Y), 4, colKey, false)
	}

	if s.HasExit {
		fillRect(dst, s.Exit, colExit)
		if len(s.Treasures) > 0 {
			// Exit is shut until the vault is empty.
			fillRect(dst, s.Exit, color.RGBA{A: 150})
		}
	}
	pulse := 0.75 + 0.25*math.Sin(float64(s.Tick)/8)
	for _, t := range s.Treasures {
		fillRect(dst, t, scaleAlpha(colTreasure, pulse))
	}
	for _, k := range s.Keys {
		fillRect(dst, k, colKey)
	}
	for _, p := range s.Powerups {
		c := colPowerup
		if p.Kind == game.PowerupInvisibility {
			c = color.RGBA{R: 180, G: 120, B: 255, A: 255}
		}
		fillRect(dst, p.Rect, c)
	}

	g.drawVisionCones(dst, s)
	for _, gv := range s.Guards {
		drawGuard(dst, gv)
	}
	drawPlayer(dst, s)

	for _, p := range g.fx.particles {
		a := 1 - float64(p.age)/particleLife
		vector.FillCircle(dst, float32(p.pos.X), float32(p.pos.Y), 2, scaleAlpha(p.col, a), false)
	}
}

// drawVisionCones fills every guard's view arc, clipped at walls, into the
// cone buffer and composites it once so overlaps do not blow out.
func (g *Game) drawVisionCones(dst *ebiten.Image, s game.Snapshot) {
	if s.EMPActive {
		return
	}
	buf := g.coneBuf
	buf.Clear()
	for _, gv := range s.Guards {
		heading := math.Atan2(gv.Facing.Y, gv.Facing.X)
		var path vector.Path
		path.MoveTo(float32(gv.Pos.X), float32(gv.Pos.Y))
		for i := 0; i <= coneSteps; i++ {
			a := heading - game.FOVHalfAngle + 2*game.FOVHalfAngle*float64(i)/coneSteps
			end := gv.Pos.Add(game.Vec2{X: math.Cos(a), Y: math.Sin(a)}.Scale(gv.VisionRadius))
			p := game.ClipRay(gv.Pos, end, s.Walls)
			path.LineTo(float32(p.X), float32(p.Y))
		}
		path.Close()
		vector.FillPath(buf, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true})
	}
	tint := colGuard
	if anySeeing(s.Guards) {
		tint = colAlerted
	}
	opts := &ebiten.DrawImageOptions{}
	opts.ColorScale.ScaleWithColor(tint)
	opts.ColorScale.ScaleAlpha(0.2)
	dst.DrawImage(buf, opts)
}

func drawGuard(dst *ebiten.Image, gv game.GuardView) {
	c := colGuard
	if gv.State == game.GuardAlerted {
		c = colAlerted
	}
	x, y := float32(gv.Pos.X), float32(gv.Pos.Y)
	vector.FillRect(dst, x-game.GuardSize/2, y-game.GuardSize/2, game.GuardSize, game.GuardSize, c, false)
	// Facing tick.
	fx := x + float32(gv.Facing.X*16)
	fy := y + float32(gv.Facing.Y*16)
	vector.StrokeLine(dst, x, y, fx, fy, 2.0, colText, false)

	if gv.State == game.GuardAlerted {
		top := y - game.GuardSize/2 - 12
		vector.StrokeLine(dst, x, top, x, top+6, 2.0, colDanger, false)
		vector.FillCircle(dst, x, top+9, 1.5, colDanger, false)
	}
}

func drawPlayer(dst *ebiten.Image, s game.Snapshot) {
	c := colPlayer
	if s.Crouched {
		c = colCrouch
	}
	alpha := 1.0
	if s.Invisible {
		alpha = 0.3
	}
	b := s.PlayerBox
	vector.FillRect(dst, float32(b.X-5), float32(b.Y-5), float32(b.W+10), float32(b.H+10), scaleAlpha(color.RGBA{R: 100, G: 0, B: 70, A: 255}, alpha), true)
	inner := float32(0)
	if s.Crouched {
		inner = 3
	}
	vector.FillRect(dst, float32(b.X)+inner, float32(b.Y)+inner, float32(b.W)-2*inner, float32(b.H)-2*inner, scaleAlpha(c, alpha), true)
	if s.Boosted {
		vector.StrokeRect(dst, float32(b.X-7), float32(b.Y-7), float32(b.W+14), float32(b.H+14), 1.5, colPowerup, true)
	}
}

func scaleAlpha(c color.RGBA, k float64) color.RGBA {
	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}
	// Premultiplied: scale every channel.
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}

func anySeeing(gs []game.GuardView) bool {
	for _, g := range gs {
		if g.Seeing {
			return true
		}
	}
	return false
}

func containsRect(rs []game.Rect, r game.Rect) bool {
	for _, o := range rs {
		if o == r {
			return true
		}
	}
	return false
}
