package control

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MovementEngine computes horizontal velocity, dash state, and the
// buffer-assisted climb nudge. It owns the horizontal axis every tick and the
// vertical axis only during slope traversal; velocity writes are absolute
// sets, never additive.
type MovementEngine struct {
	cfg   Config
	world World
}

func NewMovementEngine(cfg Config, world World) *MovementEngine {
	return &MovementEngine{cfg: cfg, world: world}
}

// SetConfig swaps the tuning (hot reload).
func (m *MovementEngine) SetConfig(cfg Config) {
	m.cfg = cfg
}

// Advance runs one tick of movement. prevState carries last tick's derived
// presentation flags (dash is refused while wall-sticking or wall-sliding).
// The returned bool reports whether a buffer-climb nudge was applied.
func (m *MovementEngine) Advance(dt float64, body Body, ground GroundState, wall WallState, prev DashState, prevState PresentationState, abilities Abilities, combat Combat, in InputFrame) (DashState, bool, []Event) {
	ds := prev
	var events []Event
	if body == nil {
		return ds, false, nil
	}

	ds.Retrigger = math.Max(0, ds.Retrigger-dt)
	if !ds.Dashing {
		ds.JumpWindow = math.Max(0, ds.JumpWindow-dt)
	}

	// Ground dash cooldown refills the budget periodically while grounded.
	if ground.Grounded && !ds.Dashing {
		ds.CooldownTimer = math.Max(0, ds.CooldownTimer-dt)
		if ds.CooldownTimer == 0 && ground.DashesRemaining < m.cfg.MaxDashes {
			events = append(events, Event{Kind: EventRefillGroundDashes})
			ds.CooldownTimer = m.cfg.DashCooldown
		}
	}

	if ds.Dashing {
		ds.Timer -= dt
		if ds.Timer <= 0 {
			ds.Dashing = false
			ds.Timer = 0
			ds.JumpWindow = m.cfg.DashJumpWindow
			if combat != nil {
				combat.DashEnded()
			}
			events = append(events, Event{Kind: EventDashEnded})
		} else {
			// Direction is locked at dash start; input cannot steer it.
			dir := 1.0
			if !ds.DashRight {
				dir = -1
			}
			vel := body.Velocity()
			body.SetVelocity(dir*m.cfg.DashSpeed, vel.Y)
			return ds, false, events
		}
	}

	if m.tryStartDash(&ds, &events, ground, prevState, abilities, combat, in) {
		dir := 1.0
		if !ds.DashRight {
			dir = -1
		}
		vel := body.Velocity()
		body.SetVelocity(dir*m.cfg.DashSpeed, vel.Y)
		return ds, false, events
	}

	// Facing follows input outside a dash.
	if in.MoveX > m.cfg.InputDeadzone {
		ds.FacingRight = true
	} else if in.MoveX < -m.cfg.InputDeadzone {
		ds.FacingRight = false
	}

	vel := body.Velocity()
	if math.Abs(in.MoveX) > m.cfg.InputDeadzone {
		if ground.Grounded && ground.OnSlope {
			// Rotate the run velocity onto the slope tangent instead of
			// letting gravity clip it against the incline.
			tangent := ground.SlopeNormal.Normalize().ReversePerp()
			v := tangent.Mult(in.MoveX * m.cfg.MoveSpeed)
			body.SetVelocity(v.X, v.Y)
		} else {
			body.SetVelocity(in.MoveX*m.cfg.MoveSpeed, vel.Y)
		}
	} else {
		body.SetVelocity(0, vel.Y)
	}

	climbing := m.applyBufferClimb(body, ground, prevState, in)

	return ds, climbing, events
}

// tryStartDash consumes a ground or air dash budget and locks the dash
// direction. Budget exhaustion is a normal declined outcome, not an error.
func (m *MovementEngine) tryStartDash(ds *DashState, events *[]Event, ground GroundState, prevState PresentationState, abilities Abilities, combat Combat, in InputFrame) bool {
	if !in.DashPressed || ds.Retrigger > 0 {
		return false
	}
	if abilities == nil || !abilities.Unlocked(AbilityDash) {
		return false
	}
	if prevState.State == StateWallSticking || prevState.State == StateWallSliding {
		return false
	}
	if combat != nil && (combat.IsAttacking() || combat.IsAirAttacking() || combat.IsDashAttacking()) {
		return false
	}

	if ground.Grounded {
		if ground.DashesRemaining <= 0 {
			return false
		}
		// A consumed ground dash arms the refill cooldown.
		ds.CooldownTimer = m.cfg.DashCooldown
		*events = append(*events, Event{Kind: EventConsumeGroundDash})
	} else {
		if ground.AirDashesRemaining <= 0 {
			return false
		}
		*events = append(*events, Event{Kind: EventConsumeAirDash})
	}

	ds.Dashing = true
	ds.Timer = m.cfg.DashTime
	ds.Retrigger = m.cfg.DashDebounce
	ds.DashRight = ds.FacingRight
	*events = append(*events, Event{Kind: EventDashStarted})
	return true
}

// applyBufferClimb nudges the character up and over a ledge whose top edge
// sits within a small offset above the feet, instead of letting it stall
// against the side. Never applies while wall-sticking.
func (m *MovementEngine) applyBufferClimb(body Body, ground GroundState, prevState PresentationState, in InputFrame) bool {
	if m.world == nil || prevState.State == StateWallSticking {
		return false
	}
	if ground.OnPlatform || math.Abs(in.MoveX) <= m.cfg.InputDeadzone {
		return false
	}

	dir := 1.0
	if in.MoveX < 0 {
		dir = -1
	}
	pos := body.Position()
	feet := cp.Vector{X: pos.X, Y: pos.Y - m.cfg.BodyHalfHeight}
	reach := dir * (m.cfg.BodyHalfWidth + m.cfg.WallProbeLength)

	// Solid at foot level but clear just above it means the ledge top is
	// inside the climb offset.
	lowStart := feet
	lowEnd := cp.Vector{X: feet.X + reach, Y: feet.Y}
	if _, ok := m.world.ProbeRay(lowStart, lowEnd, CategoryGround); !ok {
		return false
	}
	highStart := cp.Vector{X: feet.X, Y: feet.Y + m.cfg.BufferClimbMaxOffset}
	highEnd := cp.Vector{X: feet.X + reach, Y: highStart.Y}
	if _, ok := m.world.ProbeRay(highStart, highEnd, CategoryGround); ok {
		return false
	}

	vel := body.Velocity()
	vy := math.Max(vel.Y, m.cfg.BufferClimbNudgeY)
	vx := dir * math.Max(math.Abs(vel.X), m.cfg.BufferClimbNudgeX)
	body.SetVelocity(vx, vy)
	return true
}
