package control

import "log"

// Controller composes the five pipeline stages and runs them in the fixed
// per-tick order: ground sense, wall sense, movement, jump resolution, state
// derivation, emission. Later stages read the earlier stages' freshly
// computed records; the records themselves are owned here and mutated between
// stages only by applying the stages' one-shot events.
type Controller struct {
	cfg       Config
	body      Body
	abilities Abilities
	combat    Combat
	sink      Sink

	groundSensor *GroundSensor
	wallSensor   *WallSensor
	movement     *MovementEngine
	jump         *JumpEngine
	tracker      *StateTracker

	ground    GroundState
	wall      WallState
	dash      DashState
	jumpState JumpState
	present   PresentationState
}

// lockedAbilities stands in when no progression collaborator is wired.
type lockedAbilities struct{}

func (lockedAbilities) Unlocked(string) bool { return false }

// NewController wires the pipeline. Missing optional collaborators degrade:
// nil combat and sink become no-ops, nil abilities locks every gated move.
// A nil body or world is logged once; ticking then does nothing harmful.
func NewController(cfg Config, world World, body Body, abilities Abilities, combat Combat, sink Sink) *Controller {
	cfg.Normalize()
	if body == nil {
		log.Printf("Controller: no physics body configured; movement disabled")
	}
	if abilities == nil {
		log.Printf("Controller: no ability collaborator configured; gated abilities stay locked")
		abilities = lockedAbilities{}
	}
	if combat == nil {
		combat = NopCombat{}
	}
	if sink == nil {
		sink = NopSink{}
	}

	c := &Controller{
		cfg:       cfg,
		body:      body,
		abilities: abilities,
		combat:    combat,
		sink:      sink,

		groundSensor: NewGroundSensor(cfg, world),
		wallSensor:   NewWallSensor(cfg, world),
		movement:     NewMovementEngine(cfg, world),
		jump:         NewJumpEngine(cfg),
		tracker:      NewStateTracker(cfg),
	}
	c.ground.DashesRemaining = cfg.MaxDashes
	c.ground.AirDashesRemaining = cfg.MaxAirDashes
	c.dash.FacingRight = true
	c.jumpState.JumpsRemaining = cfg.MaxAirJumps
	c.jumpState.SinceLastJump = cfg.DoubleJumpMinDelay
	return c
}

// SetConfig swaps tuning across all stages (hot reload). Budgets are clamped
// into the new maxima.
func (c *Controller) SetConfig(cfg Config) {
	cfg.Normalize()
	c.cfg = cfg
	c.groundSensor.SetConfig(cfg)
	c.wallSensor.SetConfig(cfg)
	c.movement.SetConfig(cfg)
	c.jump.SetConfig(cfg)
	c.tracker.SetConfig(cfg)
	if c.ground.DashesRemaining > cfg.MaxDashes {
		c.ground.DashesRemaining = cfg.MaxDashes
	}
	if c.ground.AirDashesRemaining > cfg.MaxAirDashes {
		c.ground.AirDashesRemaining = cfg.MaxAirDashes
	}
}

// Tick advances the controller one fixed timestep and returns the derived
// presentation state after emitting it to the sink.
func (c *Controller) Tick(dt float64, in InputFrame) PresentationState {
	if dt <= 0 || c.body == nil {
		return c.present
	}

	c.ground = c.groundSensor.Sense(c.body, c.ground, c.dash, in, dt)
	c.wall = c.wallSensor.Sense(c.body, c.dash.FacingRight, in, c.ground.Grounded, c.ground.BufferClimbing, c.abilities)

	dash, climbing, mev := c.movement.Advance(dt, c.body, c.ground, c.wall, c.dash, c.present, c.abilities, c.combat, in)
	c.dash = dash
	c.ground.BufferClimbing = climbing
	c.apply(mev)

	// Jump resolution must see this tick's dash state for dash-jump
	// eligibility.
	js, jev := c.jump.Resolve(dt, c.body, c.ground, c.wall, c.dash, c.jumpState, c.abilities, c.combat, in)
	c.jumpState = js
	c.apply(jev)

	ps, sev := c.tracker.Derive(c.ground, c.wall, c.dash, c.body.Velocity().Y, c.abilities, c.combat, in)
	c.apply(sev)
	c.present = ps

	c.sink.Present(ps)
	return ps
}

// apply folds a stage's one-shot events into the shared records. Each event
// is applied exactly once, on the tick its stage produced it.
func (c *Controller) apply(events []Event) {
	for _, ev := range events {
		switch ev.Kind {
		case EventConsumeGroundDash:
			if c.ground.DashesRemaining > 0 {
				c.ground.DashesRemaining--
			}
		case EventConsumeAirDash:
			if c.ground.AirDashesRemaining > 0 {
				c.ground.AirDashesRemaining--
				c.ground.AirDashesUsed++
			}
		case EventRefillGroundDashes:
			c.ground.DashesRemaining = c.cfg.MaxDashes
		case EventResetDashBudgets:
			c.ground.DashesRemaining = c.cfg.MaxDashes
			c.ground.AirDashesRemaining = c.cfg.MaxAirDashes
			c.ground.AirDashesUsed = 0
		case EventResetAirDashes:
			c.ground.AirDashesRemaining = c.cfg.MaxAirDashes
			c.ground.AirDashesUsed = 0
		case EventConsumeCoyote:
			c.ground.CoyoteRemaining = 0
			c.ground.LeftGroundByJump = true
		case EventFlipFacing:
			c.dash.FacingRight = !c.dash.FacingRight
		case EventDashCut:
			if c.dash.Dashing {
				c.combat.DashEnded()
			}
			c.dash.Dashing = false
			c.dash.Timer = 0
			c.dash.JumpWindow = 0
		case EventEnterWallStick:
			// One-shot per contact episode: kill residual upward velocity
			// and any dash-jump momentum.
			vel := c.body.Velocity()
			if vel.Y > 0 {
				c.body.SetVelocity(vel.X, 0)
			}
			c.dash.JumpWindow = 0
		}
	}
}

// NotifyHeadStomp restores the air-dash budget after a head-stomp bounce,
// the one non-landing event allowed to do so.
func (c *Controller) NotifyHeadStomp() {
	c.ground.AirDashesRemaining = c.cfg.MaxAirDashes
	c.ground.AirDashesUsed = 0
}

// Reset clears per-episode state (respawn, level change) while keeping
// configured budgets full.
func (c *Controller) Reset() {
	c.ground = GroundState{
		DashesRemaining:    c.cfg.MaxDashes,
		AirDashesRemaining: c.cfg.MaxAirDashes,
	}
	c.wall = WallState{}
	c.dash = DashState{FacingRight: true}
	c.jumpState = JumpState{
		JumpsRemaining: c.cfg.MaxAirJumps,
		SinceLastJump:  c.cfg.DoubleJumpMinDelay,
	}
	c.present = PresentationState{}
	c.tracker.Reset()
}

// Ground returns this tick's ground state snapshot.
func (c *Controller) Ground() GroundState { return c.ground }

// Wall returns this tick's wall state snapshot.
func (c *Controller) Wall() WallState { return c.wall }

// Dash returns this tick's dash state snapshot.
func (c *Controller) Dash() DashState { return c.dash }

// Jump returns this tick's jump state snapshot.
func (c *Controller) Jump() JumpState { return c.jumpState }

// Presentation returns the last derived presentation state.
func (c *Controller) Presentation() PresentationState { return c.present }
