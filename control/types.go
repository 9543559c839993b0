package control

import "github.com/jakecoffman/cp"

// GroundState is recomputed by the ground sensor every tick. The dash/jump
// budgets live here because they reset on landing transitions the sensor
// detects; other stages adjust them only through events.
type GroundState struct {
	Grounded   bool
	OnPlatform bool
	OnBuffer   bool

	OnSlope     bool
	SlopeAngle  float64 // degrees from horizontal
	SlopeNormal cp.Vector

	CoyoteRemaining  float64
	LeftGroundByJump bool

	// BufferClimbing is set by the movement engine on the tick it applies a
	// buffer-assisted climb nudge; it carries into the next tick's sensing.
	BufferClimbing bool

	DashesRemaining    int
	AirDashesRemaining int
	AirDashesUsed      int
}

// WallState is the wall sensor's per-tick output.
type WallState struct {
	OnWall       bool
	StickAllowed bool
}

// DashState is owned by the movement engine. Grace periods are modeled as
// countdown seconds rather than absolute timestamps so the state stays
// dt-driven like every other timer in the core.
type DashState struct {
	Dashing bool
	// Timer is the remaining dash duration while Dashing.
	Timer float64
	// CooldownTimer refills ground dashes when it reaches zero while grounded.
	CooldownTimer float64
	// Retrigger debounces the dash input edge.
	Retrigger float64
	// JumpWindow is the remaining dash-jump grace after a dash ended.
	JumpWindow float64

	FacingRight bool
	// DashRight is the direction locked at dash start; input changes mid-dash
	// do not affect it.
	DashRight bool
}

// JumpState is owned by the jump engine. VariableActive and ForcedFalling are
// mutually exclusive; entering forced fall terminates an active hold first.
type JumpState struct {
	JumpsRemaining int

	VariableActive bool
	HoldTimer      float64
	// HoldVelocity is the clamp value applied each tick of an active hold.
	HoldVelocity float64

	ForcedFalling     bool
	ForcedFallTimer   float64
	PendingDoubleJump bool

	SinceLastJump float64
}

// MoveState is the mutually-exclusive presentation classification.
type MoveState int

const (
	StateIdle MoveState = iota
	StateRunning
	StateJumping
	StateFalling
	StateWallSticking
	StateWallSliding
	StateDashing
)

func (s MoveState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateFalling:
		return "falling"
	case StateWallSticking:
		return "wall_sticking"
	case StateWallSliding:
		return "wall_sliding"
	case StateDashing:
		return "dashing"
	}
	return "unknown"
}

// PresentationState is the per-tick output for the animation sink.
type PresentationState struct {
	State       MoveState
	FacingRight bool
	MoveX       float64
	MoveY       float64
}

// EventKind identifies a one-shot transition event produced by a pipeline
// stage and applied exactly once by the orchestrator.
type EventKind string

const (
	// EventEnterWallStick fires on the rising edge of wall-sticking; the
	// orchestrator zeroes residual upward velocity and closes the dash-jump
	// window in response.
	EventEnterWallStick EventKind = "enter_wall_stick"

	EventDashStarted EventKind = "dash_started"
	EventDashEnded   EventKind = "dash_ended"
	// EventDashCut terminates an in-progress dash and its jump window
	// (a dash jump consumed it).
	EventDashCut EventKind = "dash_cut"

	EventConsumeGroundDash  EventKind = "consume_ground_dash"
	EventConsumeAirDash     EventKind = "consume_air_dash"
	EventRefillGroundDashes EventKind = "refill_ground_dashes"
	EventResetDashBudgets   EventKind = "reset_dash_budgets"
	EventResetAirDashes     EventKind = "reset_air_dashes"

	// EventConsumeCoyote zeroes the coyote timer and marks the ground as left
	// by jumping, so the grace cannot be consumed twice.
	EventConsumeCoyote EventKind = "consume_coyote"
	EventFlipFacing    EventKind = "flip_facing"

	EventJumped       EventKind = "jumped"
	EventWallJumped   EventKind = "wall_jumped"
	EventDoubleJumped EventKind = "double_jumped"
	EventDashJumped   EventKind = "dash_jumped"
)

// Event is a one-shot transition event.
type Event struct {
	Kind EventKind
}
