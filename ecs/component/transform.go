package component

// Transform is the world-space pose mirrored from the physics body each tick.
// Y grows upward; the renderer flips it into screen space.
type Transform struct {
	X     float64
	Y     float64
	FlipX bool
}

var TransformComponent = NewComponent[Transform]()
