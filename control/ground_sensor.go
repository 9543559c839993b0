package control

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// GroundSensor resolves grounding, slope contact, coyote time, and the
// landing-driven dash budget resets.
type GroundSensor struct {
	cfg   Config
	world World

	// disabled is set once at startup when the ground category is missing;
	// sensing then degrades to "not grounded" instead of failing per tick.
	disabled bool
}

// NewGroundSensor validates the collision categories once and returns the
// sensor. A missing ground category is a configuration error: it is logged
// here and the sensor degrades, it never panics.
func NewGroundSensor(cfg Config, world World) *GroundSensor {
	s := &GroundSensor{cfg: cfg, world: world}
	if world == nil {
		log.Printf("GroundSensor: no collision world configured; sensing disabled")
		s.disabled = true
		return s
	}
	if !world.HasCategory(CategoryGround) {
		log.Printf("GroundSensor: collision category %q missing; sensing disabled", CategoryGround)
		s.disabled = true
	}
	if !world.HasCategory(CategoryBuffer) {
		// Landing buffers are optional level dressing; note it once.
		log.Printf("GroundSensor: collision category %q missing; edge landings will not be forgiving", CategoryBuffer)
	}
	return s
}

// SetConfig swaps the tuning (hot reload).
func (s *GroundSensor) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Sense recomputes the ground state from collision queries. prev is last
// tick's state; dash is last tick's dash state (post-dash coyote gating).
func (s *GroundSensor) Sense(body Body, prev GroundState, dash DashState, in InputFrame, dt float64) GroundState {
	gs := GroundState{
		LeftGroundByJump:   prev.LeftGroundByJump,
		BufferClimbing:     prev.BufferClimbing,
		DashesRemaining:    prev.DashesRemaining,
		AirDashesRemaining: prev.AirDashesRemaining,
		AirDashesUsed:      prev.AirDashesUsed,
	}
	if s.disabled || body == nil {
		return gs
	}

	pos := body.Position()
	vel := body.Velocity()
	feet := cp.Vector{X: pos.X, Y: pos.Y - s.cfg.BodyHalfHeight}

	if _, ok := s.world.ProbePoint(feet, s.cfg.GroundProbeDist, CategoryGround); ok {
		gs.OnPlatform = true
	}
	if _, ok := s.world.ProbePoint(feet, s.cfg.BufferProbeDist, CategoryBuffer); ok {
		gs.OnBuffer = true
	}

	// A buffer contact while still moving upward is a ghost landing through
	// the trigger volume, not support.
	if gs.OnBuffer && vel.Y > 0 {
		gs.OnBuffer = false
	}
	// A buffer contact with no platform under the center and no solid ground
	// ahead of a fast lateral move is stale support (dashed off the edge).
	if gs.OnBuffer && !gs.OnPlatform {
		if !s.solidBelow(feet) && math.Abs(vel.X) > s.cfg.BufferSpeedThreshold && !s.solidAhead(feet, vel.X) {
			gs.OnBuffer = false
		}
	}

	gs.Grounded = gs.OnPlatform || gs.OnBuffer

	if gs.OnPlatform {
		s.senseSlope(feet, &gs)
	}

	// Coyote time holds its grace value while grounded and counts down while
	// airborne. The countdown is suppressed inside the post-dash grace window
	// unless coyote-during-dash is enabled, so a dash off a ledge does not
	// stack a free coyote jump on top of the dash-jump window.
	if gs.Grounded {
		gs.CoyoteRemaining = s.cfg.CoyoteTime
		gs.LeftGroundByJump = false
	} else {
		gs.CoyoteRemaining = math.Max(0, prev.CoyoteRemaining-dt)
		if !s.cfg.CoyoteDuringDash && (dash.Dashing || dash.JumpWindow > 0) {
			gs.CoyoteRemaining = 0
		}
	}

	// Landing transition: refill dash budgets exactly once. Buffer-assisted
	// climbing does not count as airborne for this purpose.
	if gs.Grounded && !prev.Grounded && !prev.BufferClimbing {
		gs.DashesRemaining = s.cfg.MaxDashes
		gs.AirDashesRemaining = s.cfg.MaxAirDashes
		gs.AirDashesUsed = 0
	}
	if gs.Grounded {
		gs.BufferClimbing = false
	}

	return gs
}

// solidBelow reports solid support directly beneath the feet.
func (s *GroundSensor) solidBelow(feet cp.Vector) bool {
	end := cp.Vector{X: feet.X, Y: feet.Y - s.cfg.SlopeRayLength}
	_, ok := s.world.ProbeRay(feet, end, CategoryGround)
	return ok
}

// solidAhead reports solid ground ahead of the feet in the direction of
// travel, one body-width out.
func (s *GroundSensor) solidAhead(feet cp.Vector, velX float64) bool {
	dir := 1.0
	if velX < 0 {
		dir = -1
	}
	start := cp.Vector{X: feet.X + dir*s.cfg.BodyHalfWidth*2, Y: feet.Y + s.cfg.GroundProbeDist}
	end := cp.Vector{X: start.X, Y: start.Y - s.cfg.SlopeRayLength}
	_, ok := s.world.ProbeRay(start, end, CategoryGround)
	return ok
}

// senseSlope casts one straight and two diagonal downward rays and keeps the
// shallowest walkable hit.
func (s *GroundSensor) senseSlope(feet cp.Vector, gs *GroundState) {
	offsets := []cp.Vector{
		{X: 0, Y: 0},
		{X: -s.cfg.BodyHalfWidth, Y: 0},
		{X: s.cfg.BodyHalfWidth, Y: 0},
	}

	best := math.MaxFloat64
	var bestNormal cp.Vector
	for _, off := range offsets {
		start := cp.Vector{X: feet.X + off.X, Y: feet.Y + s.cfg.GroundProbeDist}
		end := cp.Vector{X: start.X, Y: start.Y - s.cfg.SlopeRayLength}
		hit, ok := s.world.ProbeRay(start, end, CategoryGround)
		if !ok || hit.Normal.Y <= 0 {
			continue
		}
		angle := slopeAngleDegrees(hit.Normal)
		if angle > s.cfg.MaxSlopeAngle {
			continue
		}
		if angle < best {
			best = angle
			bestNormal = hit.Normal
		}
	}

	if best == math.MaxFloat64 {
		return
	}
	gs.SlopeAngle = best
	gs.SlopeNormal = bestNormal
	gs.OnSlope = best > slopeAngleEpsilon
}

const slopeAngleEpsilon = 0.5 // degrees; flatter than this is just floor

func slopeAngleDegrees(normal cp.Vector) float64 {
	n := normal.Normalize()
	cos := n.Y
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}
