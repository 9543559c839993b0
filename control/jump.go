package control

// JumpEngine resolves jump intent into one of ground jump, wall jump, double
// jump, or dash jump, and drives the variable-height hold and the forced-fall
// gate in front of an ascending double jump.
//
// Rules are priority ordered and evaluated once per tick; the first match
// wins. Exhausted budgets decline the request silently.
type JumpEngine struct {
	cfg Config

	// savedGravity restores the body's gravity scale when a hold ends.
	savedGravity float64
}

func NewJumpEngine(cfg Config) *JumpEngine {
	return &JumpEngine{cfg: cfg, savedGravity: 1}
}

// SetConfig swaps the tuning (hot reload).
func (e *JumpEngine) SetConfig(cfg Config) {
	e.cfg = cfg
}

// Resolve runs one tick of jump logic. dash must be this tick's dash state so
// dash-jump eligibility sees a freshly opened or closed window.
func (e *JumpEngine) Resolve(dt float64, body Body, ground GroundState, wall WallState, dash DashState, prev JumpState, abilities Abilities, combat Combat, in InputFrame) (JumpState, []Event) {
	js := prev
	var events []Event
	if body == nil {
		return js, nil
	}
	js.SinceLastJump += dt

	switch {
	case js.ForcedFalling:
		js.ForcedFallTimer -= dt
		if js.ForcedFallTimer <= 0 {
			js.ForcedFalling = false
			js.ForcedFallTimer = 0
			if js.PendingDoubleJump {
				js.PendingDoubleJump = false
				e.fireDoubleJump(&js, body, combat, &events)
			}
		} else {
			vel := body.Velocity()
			body.SetVelocity(vel.X, e.cfg.ForcedFallVelocity)
		}
	case js.VariableActive:
		vel := body.Velocity()
		if !in.JumpHeld || vel.Y <= 0 || js.HoldTimer >= e.cfg.JumpHoldDuration {
			e.endHold(&js, body)
		} else {
			js.HoldTimer += dt
			// Constant-velocity clamp: overwrite rather than accelerate, so
			// the hold cannot compound with gravity.
			body.SetVelocity(vel.X, js.HoldVelocity)
		}
	}

	if !in.JumpPressed || js.ForcedFalling {
		return js, events
	}

	switch {
	case e.dashJumpEligible(ground, dash, abilities):
		e.fireDashJump(&js, body, dash, &events)
	case e.groundJumpEligible(ground):
		e.fireGroundJump(&js, body, &events)
	case e.wallJumpEligible(ground, wall, abilities):
		e.fireWallJump(&js, body, dash, in, &events)
	case e.doubleJumpEligible(js, abilities):
		if body.Velocity().Y > 0 {
			// Still ascending: the jump may not fire yet. Hold a small
			// negative velocity for a fixed beat, then fire automatically.
			e.endHold(&js, body)
			js.ForcedFalling = true
			js.ForcedFallTimer = e.cfg.ForcedFallDuration
			js.PendingDoubleJump = true
			vel := body.Velocity()
			body.SetVelocity(vel.X, e.cfg.ForcedFallVelocity)
		} else {
			e.fireDoubleJump(&js, body, combat, &events)
		}
	}

	return js, events
}

func (e *JumpEngine) dashJumpEligible(ground GroundState, dash DashState, abilities Abilities) bool {
	if abilities == nil || !abilities.Unlocked(AbilityDashJump) {
		return false
	}
	return ground.Grounded && (dash.Dashing || dash.JumpWindow > 0)
}

func (e *JumpEngine) groundJumpEligible(ground GroundState) bool {
	if ground.Grounded {
		return true
	}
	return ground.CoyoteRemaining > 0 && !ground.LeftGroundByJump
}

func (e *JumpEngine) wallJumpEligible(ground GroundState, wall WallState, abilities Abilities) bool {
	if abilities == nil || !abilities.Unlocked(AbilityWallStick) {
		return false
	}
	return !ground.Grounded && wall.OnWall
}

func (e *JumpEngine) doubleJumpEligible(js JumpState, abilities Abilities) bool {
	if abilities == nil || !abilities.Unlocked(AbilityDoubleJump) {
		return false
	}
	return js.JumpsRemaining > 0 && js.SinceLastJump >= e.cfg.DoubleJumpMinDelay
}

func (e *JumpEngine) fireGroundJump(js *JumpState, body Body, events *[]Event) {
	vel := body.Velocity()
	body.SetVelocity(vel.X, e.cfg.MinJumpVelocity)
	js.JumpsRemaining = e.cfg.MaxAirJumps
	js.SinceLastJump = 0
	if variableJumpEnabled(e.cfg.MinJumpVelocity, e.cfg.MaxJumpVelocity) {
		e.startHold(js, body, e.cfg.MaxJumpVelocity)
	}
	*events = append(*events,
		Event{Kind: EventJumped},
		Event{Kind: EventConsumeCoyote},
		Event{Kind: EventResetDashBudgets},
	)
}

func (e *JumpEngine) fireWallJump(js *JumpState, body Body, dash DashState, in InputFrame, events *[]Event) {
	dir := 1.0
	if !dash.FacingRight {
		dir = -1
	}
	// Pressing into the wall drags against surface friction; compensate so
	// the launch is not blunted.
	comp := 1.0
	if in.MoveX*dir > e.cfg.InputDeadzone {
		comp = e.cfg.WallFrictionBoost
	}
	body.SetVelocity(-dir*e.cfg.WallJumpVelocityX*comp, e.cfg.WallJumpVelocityY*comp)
	js.JumpsRemaining = e.cfg.MaxAirJumps
	js.SinceLastJump = 0
	*events = append(*events,
		Event{Kind: EventWallJumped},
		Event{Kind: EventFlipFacing},
		Event{Kind: EventResetDashBudgets},
	)
}

func (e *JumpEngine) fireDoubleJump(js *JumpState, body Body, combat Combat, events *[]Event) {
	vel := body.Velocity()
	body.SetVelocity(vel.X, e.cfg.MinDoubleJumpVelocity)
	js.JumpsRemaining--
	if js.JumpsRemaining < 0 {
		js.JumpsRemaining = 0
	}
	js.SinceLastJump = 0
	if variableJumpEnabled(e.cfg.MinDoubleJumpVelocity, e.cfg.MaxDoubleJumpVelocity) {
		e.startHold(js, body, e.cfg.MaxDoubleJumpVelocity)
	}
	if combat != nil {
		combat.DoubleJumped()
	}
	*events = append(*events, Event{Kind: EventDoubleJumped})
}

func (e *JumpEngine) fireDashJump(js *JumpState, body Body, dash DashState, events *[]Event) {
	dir := 1.0
	facing := dash.FacingRight
	if dash.Dashing {
		facing = dash.DashRight
	}
	if !facing {
		dir = -1
	}
	// Fixed impulse pair; the dash itself is terminated and contributes no
	// residual velocity.
	body.SetVelocity(dir*e.cfg.DashJumpVelocityX, e.cfg.DashJumpVelocityY)
	js.JumpsRemaining = e.cfg.MaxAirJumps
	js.SinceLastJump = 0
	*events = append(*events,
		Event{Kind: EventDashJumped},
		Event{Kind: EventDashCut},
		Event{Kind: EventResetAirDashes},
		Event{Kind: EventConsumeCoyote},
	)
}

func (e *JumpEngine) startHold(js *JumpState, body Body, holdVelocity float64) {
	js.VariableActive = true
	js.HoldTimer = 0
	js.HoldVelocity = holdVelocity
	e.savedGravity = body.GravityScale()
	body.SetGravityScale(e.cfg.JumpHoldGravityScale)
}

func (e *JumpEngine) endHold(js *JumpState, body Body) {
	if !js.VariableActive {
		return
	}
	js.VariableActive = false
	js.HoldTimer = 0
	body.SetGravityScale(e.savedGravity)
}
