package control

import "github.com/jakecoffman/cp"

// Named collision categories the sensors probe against. The host physics
// world decides which shapes belong to each.
const (
	// CategoryGround is solid, walkable level geometry.
	CategoryGround = "ground"
	// CategoryBuffer is the non-solid landing-buffer trigger volumes placed
	// at platform edges.
	CategoryBuffer = "landing_buffer"
)

// Hit is the result of a collision probe.
type Hit struct {
	Point  cp.Vector
	Normal cp.Vector
	// Alpha is the normalized distance along a ray probe in [0, 1].
	Alpha float64
}

// World is the collision-query surface of the physics collaborator.
type World interface {
	// HasCategory reports whether shapes exist for a named category. Sensors
	// use it once at startup to detect configuration errors.
	HasCategory(category string) bool
	// ProbePoint reports the nearest shape of category within maxDist of p.
	ProbePoint(p cp.Vector, maxDist float64, category string) (Hit, bool)
	// ProbeRay casts a segment from a to b against category and reports the
	// first hit.
	ProbeRay(a, b cp.Vector, category string) (Hit, bool)
}

// Body is the slice of the physics body the controller reads and writes.
// Coordinates are Y-up: upward velocity is positive.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(x, y float64)
	ApplyImpulse(impulse cp.Vector)
	// GravityScale scales world gravity on this body; 1 is normal gravity.
	GravityScale() float64
	SetGravityScale(scale float64)
}

// Abilities is the read-only unlock snapshot owned by the progression system.
// Lookups are total: unknown names report false.
type Abilities interface {
	Unlocked(name string) bool
}

// Ability names the core queries. Lookup is case-insensitive and the
// progression collaborator resolves legacy aliases (wallslide, walljump)
// onto AbilityWallStick.
const (
	AbilityDoubleJump = "doublejump"
	AbilityDash       = "dash"
	AbilityDashJump   = "dashjump"
	AbilityWallStick  = "wallstick"
	AbilityLedgeGrab  = "ledgegrab"
)

// Combat is the read-only combat collaborator plus the two notification
// hooks the core calls on double jump and dash end.
type Combat interface {
	IsAttacking() bool
	IsAirAttacking() bool
	IsDashAttacking() bool
	// DoubleJumped tells combat to reset its air-attack budget.
	DoubleJumped()
	// DashEnded tells combat to end any dash-linked attack.
	DashEnded()
}

// Sink receives the derived presentation state once per tick.
type Sink interface {
	Present(PresentationState)
}

// InputFrame is one tick of sampled input. JumpHeld must be latched by the
// input collaborator from the press/release edges, never re-polled from the
// device on a different cadence.
type InputFrame struct {
	MoveX float64
	MoveY float64

	JumpPressed  bool
	JumpReleased bool
	JumpHeld     bool

	DashPressed   bool
	AttackPressed bool
}

// NopCombat is a Combat implementation that reports no attacks and ignores
// notifications. Hosts without a combat system use it.
type NopCombat struct{}

func (NopCombat) IsAttacking() bool     { return false }
func (NopCombat) IsAirAttacking() bool  { return false }
func (NopCombat) IsDashAttacking() bool { return false }
func (NopCombat) DoubleJumped()         {}
func (NopCombat) DashEnded()            {}

// NopSink discards presentation states.
type NopSink struct{}

func (NopSink) Present(PresentationState) {}
