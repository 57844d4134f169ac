package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Stealth-Sense/internal/game"
)

// keyState is the subset of the keyboard the game reads in one frame.
// Held keys are level-triggered; the *Pressed fields are edge-triggered.
type keyState struct {
	Up, Down, Left, Right bool
	CrouchHeld            bool

	CrouchPressed bool
	EMPPressed    bool
	UpPressed     bool
	DownPressed   bool
	ConfirmPress  bool
	AnyPressed    bool
	BackPressed   bool
	CopyPressed   bool
}

// readKeys polls ebiten for the current frame.
func readKeys() keyState {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	just := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}
	return keyState{
		Up:            pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:          pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:          pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right:         pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		CrouchHeld:    pressed(ebiten.KeyShiftLeft, ebiten.KeyShiftRight),
		CrouchPressed: just(ebiten.KeyC),
		EMPPressed:    just(ebiten.KeyE),
		UpPressed:     just(ebiten.KeyArrowUp, ebiten.KeyW),
		DownPressed:   just(ebiten.KeyArrowDown, ebiten.KeyS),
		ConfirmPress:  just(ebiten.KeyEnter, ebiten.KeySpace),
		AnyPressed:    len(inpututil.AppendJustPressedKeys(nil)) > 0,
		BackPressed:   just(ebiten.KeyEscape),
		CopyPressed:   just(ebiten.KeyF2),
	}
}

// crouchLatch tracks the C-key toggle. Holding shift crouches on top of it.
type crouchLatch struct {
	latched bool
}

// playInput converts keys into one tick of run input. The run's crouch is a
// toggle, so a toggle is sent only when the wanted posture differs from the
// current one.
func (cl *crouchLatch) playInput(k keyState, crouched bool) game.Input {
	if k.CrouchPressed {
		cl.latched = !cl.latched
	}
	var in game.Input
	if k.Right {
		in.Move.DX++
	}
	if k.Left {
		in.Move.DX--
	}
	if k.Down {
		in.Move.DY++
	}
	if k.Up {
		in.Move.DY--
	}
	want := cl.latched || k.CrouchHeld
	in.ToggleCrouch = want != crouched
	in.EMP = k.EMPPressed
	return in
}
