package view

import "testing"

func TestPlayInput_Axes(t *testing.T) {
	var cl crouchLatch
	in := cl.playInput(keyState{Up: true, Right: true}, false)
	if in.Move.DX != 1 || in.Move.DY != -1 {
		t.Fatalf("expected up-right, got %+v", in.Move)
	}
	in = cl.playInput(keyState{Left: true, Right: true}, false)
	if in.Move.DX != 0 {
		t.Fatalf("opposing keys should cancel, got %+v", in.Move)
	}
}

func TestPlayInput_CrouchHoldAndLatch(t *testing.T) {
	var cl crouchLatch
	if in := cl.playInput(keyState{CrouchHeld: true}, false); !in.ToggleCrouch {
		t.Fatal("holding shift while upright should toggle")
	}
	if in := cl.playInput(keyState{CrouchHeld: true}, true); in.ToggleCrouch {
		t.Fatal("already crouched, no toggle expected")
	}
	if in := cl.playInput(keyState{}, true); !in.ToggleCrouch {
		t.Fatal("releasing shift should stand back up")
	}

	if in := cl.playInput(keyState{CrouchPressed: true}, false); !in.ToggleCrouch {
		t.Fatal("C should latch crouch")
	}
	if in := cl.playInput(keyState{}, true); in.ToggleCrouch {
		t.Fatal("latched crouch should persist without keys")
	}
	if in := cl.playInput(keyState{CrouchPressed: true}, true); !in.ToggleCrouch {
		t.Fatal("second C should release the latch")
	}
}

func TestPlayInput_EMPIsEdgeTriggered(t *testing.T) {
	var cl crouchLatch
	if in := cl.playInput(keyState{EMPPressed: true}, false); !in.EMP {
		t.Fatal("E press should request the EMP")
	}
	if in := cl.playInput(keyState{}, false); in.EMP {
		t.Fatal("no EMP without a press")
	}
}
