package control

import "math"

// StateTracker derives the mutually-exclusive presentation state from the
// tick's final sensor/ability data. Pure derivation: it never touches the
// physics body; one-shot physics corrections are returned as events for the
// orchestrator.
type StateTracker struct {
	cfg Config

	// hasEverStuck latches across a single unbroken wall-contact episode;
	// sliding is only reachable after the episode contained a stick tick.
	hasEverStuck bool
	prevSticking bool
}

func NewStateTracker(cfg Config) *StateTracker {
	return &StateTracker{cfg: cfg}
}

// SetConfig swaps the tuning (hot reload).
func (t *StateTracker) SetConfig(cfg Config) {
	t.cfg = cfg
}

// Reset clears the contact-episode memory (level changes, respawns).
func (t *StateTracker) Reset() {
	t.hasEverStuck = false
	t.prevSticking = false
}

// Derive classifies the tick. velY is the final vertical velocity after
// movement and jump resolution ran.
func (t *StateTracker) Derive(ground GroundState, wall WallState, dash DashState, velY float64, abilities Abilities, combat Combat, in InputFrame) (PresentationState, []Event) {
	var events []Event

	if !wall.OnWall {
		t.hasEverStuck = false
	}

	wallUnlocked := abilities != nil && abilities.Unlocked(AbilityWallStick)
	dashAtk := combat != nil && combat.IsDashAttacking()
	airAtk := combat != nil && combat.IsAirAttacking()

	sticking := wall.StickAllowed && !dash.Dashing && !dashAtk && !airAtk && wallUnlocked

	// Sliding requires a prior stick tick in this contact episode; once
	// established it takes precedence over sticking.
	sliding := wall.OnWall && velY < -t.cfg.WallSlideSpeed && !dash.Dashing && !dashAtk && !airAtk &&
		wallUnlocked && t.hasEverStuck
	if sliding {
		sticking = false
	}
	if sticking {
		t.hasEverStuck = true
	}

	if sticking && !t.prevSticking {
		events = append(events, Event{Kind: EventEnterWallStick})
	}
	t.prevSticking = sticking

	ps := PresentationState{
		FacingRight: dash.FacingRight,
		MoveX:       in.MoveX,
		MoveY:       in.MoveY,
	}
	ps.State = t.classify(ground, wall, dash, sticking, sliding, dashAtk, airAtk, velY, in)
	return ps, events
}

func (t *StateTracker) classify(ground GroundState, wall WallState, dash DashState, sticking, sliding, dashAtk, airAtk bool, velY float64, in InputFrame) MoveState {
	airborneClear := !ground.Grounded && !sliding && !sticking && !ground.BufferClimbing &&
		!dash.Dashing && !dashAtk && !airAtk

	switch {
	case dash.Dashing:
		return StateDashing
	case sliding:
		return StateWallSliding
	case sticking:
		return StateWallSticking
	case airborneClear && velY > 0:
		return StateJumping
	case airborneClear && velY < 0:
		return StateFalling
	case math.Abs(in.MoveX) > t.cfg.InputDeadzone && !dashAtk && !airAtk &&
		(!wall.OnWall || (ground.OnSlope && ground.Grounded)):
		return StateRunning
	}
	return StateIdle
}
