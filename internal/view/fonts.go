package view

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Palette.
var (
	colBG       = color.RGBA{R: 5, G: 5, B: 20, A: 255}
	colGrid     = color.RGBA{R: 25, G: 25, B: 60, A: 255}
	colWall     = color.RGBA{R: 10, G: 10, B: 40, A: 255}
	colWallEdge = color.RGBA{R: 40, G: 40, B: 110, A: 255}
	colDoor     = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	colPlayer   = color.RGBA{R: 255, G: 0, B: 140, A: 255}
	colCrouch   = color.RGBA{R: 255, G: 50, B: 160, A: 255}
	colGuard    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	colAlerted  = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colTreasure = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	colExit     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colKey      = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	colPowerup  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colText     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colAccent   = color.RGBA{R: 0, G: 255, B: 200, A: 255}
	colTitle    = color.RGBA{R: 255, G: 0, B: 180, A: 255}
	colDanger   = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colDim      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Fonts holds the faces used by the HUD and menus.
type Fonts struct {
	Big   *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// LoadFonts builds the faces from the embedded Go Regular font.
func LoadFonts() (*Fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load go regular: %w", err)
	}
	return &Fonts{
		Big:   &text.GoTextFace{Source: src, Size: 44},
		Body:  &text.GoTextFace{Source: src, Size: 22},
		Small: &text.GoTextFace{Source: src, Size: 13},
	}, nil
}

// Draw renders s with its top-left corner at (x, y).
func (f *Fonts) Draw(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

// DrawCentered renders s centred horizontally on cx with its vertical
// middle at cy.
func (f *Fonts) DrawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}
