package system

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformkit/control"
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBuffer
	collisionTypePlayer
)

const (
	categorySolidBit  uint = 1 << 0
	categoryBufferBit uint = 1 << 1
	categoryPlayerBit uint = 1 << 2
)

// PhysicsSystem owns the Chipmunk space. Static level geometry registers
// under named collision categories; the movement controller senses the space
// through the control.World methods.
type PhysicsSystem struct {
	space *cp.Space
	dt    float64

	categoryBits   map[string]uint
	categoryShapes map[string]int
}

func NewPhysicsSystem(gravity, dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	// Y grows upward, so gravity points down the negative axis.
	space.SetGravity(cp.Vector{X: 0, Y: -math.Abs(gravity)})

	return &PhysicsSystem{
		space: space,
		dt:    dt,
		categoryBits: map[string]uint{
			control.CategoryGround: categorySolidBit,
			control.CategoryBuffer: categoryBufferBit,
		},
		categoryShapes: make(map[string]int),
	}
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

// AddStaticBox registers an axis-aligned solid under the named category.
func (ps *PhysicsSystem) AddStaticBox(category string, l, b, r, t float64) {
	bit, ok := ps.categoryBits[category]
	if !ok {
		log.Printf("PhysicsSystem: unknown collision category %q; box dropped", category)
		return
	}
	shape := cp.NewBox2(ps.space.StaticBody, cp.BB{L: l, B: b, R: r, T: t}, 0)
	ps.addStatic(shape, category, bit)
}

// AddStaticSegment registers a surface segment, used for slopes.
func (ps *PhysicsSystem) AddStaticSegment(category string, a, b cp.Vector, radius float64) {
	bit, ok := ps.categoryBits[category]
	if !ok {
		log.Printf("PhysicsSystem: unknown collision category %q; segment dropped", category)
		return
	}
	shape := cp.NewSegment(ps.space.StaticBody, a, b, radius)
	ps.addStatic(shape, category, bit)
}

func (ps *PhysicsSystem) addStatic(shape *cp.Shape, category string, bit uint) {
	shape.SetFriction(0.8)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, bit, cp.ALL_CATEGORIES))
	if category == control.CategoryBuffer {
		// Landing buffers are probe-only volumes. Point and segment queries
		// skip sensor shapes, so instead of the sensor flag the category
		// filter keeps them out of the player's collision mask.
		shape.SetCollisionType(collisionTypeBuffer)
	} else {
		shape.SetCollisionType(collisionTypeSolid)
	}
	ps.space.AddShape(shape)
	ps.categoryShapes[category]++
}

// AttachPlayerBody creates the dynamic body for a player entity and fills in
// the PhysicsBody component. Rotation is locked; gravity scale is applied in
// the body's velocity update.
func (ps *PhysicsSystem) AttachPlayerBody(pb *component.PhysicsBody, x, y float64) {
	body := cp.NewBody(pb.Mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(b, gravity.Mult(pb.GravityScale), damping, dt)
	})

	shape := cp.NewBox(body, pb.Width, pb.Height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypePlayer)
	// Collides with solids only; buffers are probe-only.
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryPlayerBit, categorySolidBit))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	pb.Body = body
	pb.Shape = shape
}

// HasCategory reports whether the named category has registered geometry.
func (ps *PhysicsSystem) HasCategory(category string) bool {
	return ps.categoryShapes[category] > 0
}

// ProbePoint finds the nearest shape of the category within maxDist.
func (ps *PhysicsSystem) ProbePoint(p cp.Vector, maxDist float64, category string) (control.Hit, bool) {
	bit, ok := ps.categoryBits[category]
	if !ok {
		return control.Hit{}, false
	}
	info := ps.space.PointQueryNearest(p, maxDist, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, bit))
	if info.Shape == nil {
		return control.Hit{}, false
	}
	return control.Hit{Point: info.Point, Normal: info.Gradient}, true
}

// ProbeRay casts a segment and returns the first hit on the category.
func (ps *PhysicsSystem) ProbeRay(a, b cp.Vector, category string) (control.Hit, bool) {
	bit, ok := ps.categoryBits[category]
	if !ok {
		return control.Hit{}, false
	}
	info := ps.space.SegmentQueryFirst(a, b, 0, cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, bit))
	if info.Shape == nil {
		return control.Hit{}, false
	}
	return control.Hit{Point: info.Point, Normal: info.Normal, Alpha: info.Alpha}, true
}

// Update steps the simulation one fixed tick and mirrors body poses into
// transforms.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	ps.space.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, pb *component.PhysicsBody, tf *component.Transform) {
			if pb.Body == nil {
				return
			}
			pos := pb.Body.Position()
			tf.X = pos.X
			tf.Y = pos.Y
		})
}

// BodyHandle adapts a PhysicsBody component to the movement controller's
// body interface.
type BodyHandle struct {
	pb *component.PhysicsBody
}

func NewBodyHandle(pb *component.PhysicsBody) *BodyHandle {
	return &BodyHandle{pb: pb}
}

func (h *BodyHandle) Position() cp.Vector { return h.pb.Body.Position() }

func (h *BodyHandle) Velocity() cp.Vector { return h.pb.Body.Velocity() }

func (h *BodyHandle) SetVelocity(x, y float64) { h.pb.Body.SetVelocity(x, y) }

func (h *BodyHandle) ApplyImpulse(impulse cp.Vector) {
	h.pb.Body.ApplyImpulseAtLocalPoint(impulse, cp.Vector{})
}

func (h *BodyHandle) GravityScale() float64 { return h.pb.GravityScale }

func (h *BodyHandle) SetGravityScale(scale float64) { h.pb.GravityScale = scale }
