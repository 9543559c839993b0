package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformkit/control"
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
	"golang.org/x/image/colornames"
)

// Box is a static level volume handed to the renderer.
type Box struct {
	Category   string
	L, B, R, T float64
}

// Segment is a sloped surface handed to the renderer.
type Segment struct {
	Ax, Ay, Bx, By float64
}

// RenderSystem draws the level geometry and the player, plus a debug overlay
// with the controller's internals. The world is Y-up; drawing flips into
// screen space with the camera centered on the player.
type RenderSystem struct {
	screenW, screenH int
	boxes            []Box
	segments         []Segment
	ctrl             *control.Controller
	debug            bool
}

func NewRenderSystem(screenW, screenH int, ctrl *control.Controller) *RenderSystem {
	return &RenderSystem{screenW: screenW, screenH: screenH, ctrl: ctrl, debug: true}
}

// SetGeometry replaces the static geometry drawn each frame.
func (r *RenderSystem) SetGeometry(boxes []Box, segments []Segment) {
	r.boxes = boxes
	r.segments = segments
}

// ToggleDebug flips the overlay.
func (r *RenderSystem) ToggleDebug() {
	r.debug = !r.debug
}

var stateColors = map[control.MoveState]color.RGBA{
	control.StateIdle:         colornames.Lightslategray,
	control.StateRunning:      colornames.Mediumseagreen,
	control.StateJumping:      colornames.Skyblue,
	control.StateFalling:      colornames.Steelblue,
	control.StateWallSticking: colornames.Orange,
	control.StateWallSliding:  colornames.Darkorange,
	control.StateDashing:      colornames.Crimson,
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	screen.Fill(colornames.Darkslateblue)

	camX, camY := 0.0, 0.0
	var player *component.Presentation
	var playerTf *component.Transform
	var playerPb *component.PhysicsBody
	ecs.ForEach3(w,
		component.PresentationComponent.Kind(),
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(_ ecs.Entity, pres *component.Presentation, tf *component.Transform, pb *component.PhysicsBody) {
			player, playerTf, playerPb = pres, tf, pb
			camX, camY = tf.X, tf.Y
		})

	for _, bx := range r.boxes {
		clr := colornames.Darkslategray
		if bx.Category == control.CategoryBuffer {
			clr = colornames.Cadetblue
			clr.A = 90
		}
		x0, y0 := r.toScreen(bx.L, bx.T, camX, camY)
		x1, y1 := r.toScreen(bx.R, bx.B, camX, camY)
		vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), clr, false)
	}
	for _, seg := range r.segments {
		x0, y0 := r.toScreen(seg.Ax, seg.Ay, camX, camY)
		x1, y1 := r.toScreen(seg.Bx, seg.By, camX, camY)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 3, colornames.Darkslategray, true)
	}

	if player != nil && playerTf != nil && playerPb != nil {
		clr, ok := stateColors[player.Current.State]
		if !ok {
			clr = colornames.White
		}
		x, y := r.toScreen(playerTf.X-playerPb.Width/2, playerTf.Y+playerPb.Height/2, camX, camY)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(playerPb.Width), float32(playerPb.Height), clr, false)
	}

	if r.debug && r.ctrl != nil {
		r.drawOverlay(screen)
	}
}

func (r *RenderSystem) drawOverlay(screen *ebiten.Image) {
	g := r.ctrl.Ground()
	d := r.ctrl.Dash()
	j := r.ctrl.Jump()
	text := fmt.Sprintf(
		"state: %s\ngrounded: %v  wall: %v\ncoyote: %4.0fms\ndashes: %d  air: %d\nair jumps: %d  hold: %v",
		r.ctrl.Presentation().State,
		g.Grounded, r.ctrl.Wall().OnWall,
		g.CoyoteRemaining*1000,
		g.DashesRemaining, g.AirDashesRemaining,
		j.JumpsRemaining, j.VariableActive,
	)
	if d.Dashing {
		text += "\ndashing"
	}
	ebitenutil.DebugPrintAt(screen, text, 8, 8)
}

func (r *RenderSystem) toScreen(x, y, camX, camY float64) (float64, float64) {
	sx := x - camX + float64(r.screenW)/2
	sy := float64(r.screenH)/2 - (y - camY)
	return sx, sy
}
