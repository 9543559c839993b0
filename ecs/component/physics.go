package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk runtime data for a dynamic entity.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
	Mass   float64

	// GravityScale multiplies world gravity in the body's velocity update.
	// 1.0 = normal, 0.0 = none.
	GravityScale float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
