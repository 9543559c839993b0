package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
)

// InputSystem polls the keyboard and first gamepad into every entity's Input
// component. Edge fields are computed here so downstream systems never touch
// ebiten directly. JumpHeld is latched from the press/release edges rather
// than re-polled, so it always agrees with the edges in the same frame.
type InputSystem struct {
	jumpHeld bool
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Update(w *ecs.World) {
	frame := s.sampleInput()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = frame
	})
}

func (s *InputSystem) sampleInput() component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveY += 1
	}

	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyK)
	in.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	in.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 {
			in.MoveX = -1
		} else if leftX > 0.3 {
			in.MoveX = 1
		}
		leftY := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if leftY > 0.3 {
			in.MoveY = -1
		} else if leftY < -0.3 {
			in.MoveY = 1
		}

		jump := ebiten.StandardGamepadButtonRightBottom
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, jump)
		in.JumpReleased = in.JumpReleased || inpututil.IsStandardGamepadButtonJustReleased(gid, jump)
		in.DashPressed = in.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
		in.AttackPressed = in.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
	}

	s.jumpHeld = latchHeld(s.jumpHeld, in.JumpPressed, in.JumpReleased)
	in.JumpHeld = s.jumpHeld
	return in
}

// latchHeld folds a press/release edge pair into the held latch. Release wins
// when both edges land in the same frame (a tap shorter than one tick).
func latchHeld(held, pressed, released bool) bool {
	if pressed {
		held = true
	}
	if released {
		held = false
	}
	return held
}
