package control

import (
	"testing"
)

// ctrlEnv hosts a controller against the stub world with just enough physics
// emulation between ticks (gravity, penetration push-out) to play scripted
// scenarios end to end.
type ctrlEnv struct {
	cfg     Config
	world   *stubWorld
	body    *stubBody
	ctrl    *Controller
	combat  *stubCombat
	sink    *recordingSink
	gravity float64

	// lastVelY is the vertical velocity right after the tick, before the
	// gravity emulation runs.
	lastVelY float64
}

func newCtrlEnv(cfg Config, abilities Abilities, build func(*stubWorld)) *ctrlEnv {
	world := newStubWorld()
	if build != nil {
		build(world)
	}
	env := &ctrlEnv{
		cfg:     cfg,
		world:   world,
		body:    newStubBody(0, cfg.BodyHalfHeight),
		combat:  &stubCombat{},
		sink:    &recordingSink{},
		gravity: 30,
	}
	env.ctrl = NewController(cfg, world, env.body, abilities, env.combat, env.sink)
	return env
}

func (e *ctrlEnv) step(in InputFrame) PresentationState {
	ps := e.ctrl.Tick(tickDt, in)
	e.lastVelY = e.body.vel.Y
	e.body.vel.Y -= e.gravity * e.body.gravity * tickDt
	e.body.pos = e.body.pos.Add(e.body.vel.Mult(tickDt))
	e.resolve()
	return ps
}

func (e *ctrlEnv) stepN(n int, in InputFrame) {
	for i := 0; i < n; i++ {
		e.step(in)
	}
}

// resolve pushes the body out of any solid box along the axis of least
// penetration and kills the velocity component into the surface.
func (e *ctrlEnv) resolve() {
	hw, hh := e.cfg.BodyHalfWidth, e.cfg.BodyHalfHeight
	for _, bx := range e.world.boxes {
		if bx.category != CategoryGround {
			continue
		}
		l, r := e.body.pos.X-hw, e.body.pos.X+hw
		b, t := e.body.pos.Y-hh, e.body.pos.Y+hh
		if r <= bx.l || l >= bx.r || t <= bx.b || b >= bx.t {
			continue
		}
		pushLeft := r - bx.l
		pushRight := bx.r - l
		pushDown := t - bx.b
		pushUp := bx.t - b
		min := pushLeft
		axis := 0
		if pushRight < min {
			min, axis = pushRight, 1
		}
		if pushDown < min {
			min, axis = pushDown, 2
		}
		if pushUp < min {
			min, axis = pushUp, 3
		}
		switch axis {
		case 0:
			e.body.pos.X -= min
			if e.body.vel.X > 0 {
				e.body.vel.X = 0
			}
		case 1:
			e.body.pos.X += min
			if e.body.vel.X < 0 {
				e.body.vel.X = 0
			}
		case 2:
			e.body.pos.Y -= min
			if e.body.vel.Y > 0 {
				e.body.vel.Y = 0
			}
		case 3:
			e.body.pos.Y += min
			if e.body.vel.Y < 0 {
				e.body.vel.Y = 0
			}
		}
	}
}

func platformLevel(world *stubWorld) {
	world.addBox(CategoryGround, -50, -10, 10, 0)
}

// Scenario: variable jump held to the full duration must peak at the max jump
// velocity, and an immediate release must peak at the min.
func TestControllerVariableJumpPeaks(t *testing.T) {
	cfg := testConfig()

	env := newCtrlEnv(cfg, allAbilities(), platformLevel)
	env.stepN(2, InputFrame{})

	env.step(InputFrame{JumpPressed: true, JumpHeld: true})
	peak := env.lastVelY
	for i := 0; i < 40; i++ {
		env.step(InputFrame{JumpHeld: true})
		if env.lastVelY > peak {
			peak = env.lastVelY
		}
	}
	if !approx(peak, cfg.MaxJumpVelocity) {
		t.Fatalf("held jump peak: got %v want %v", peak, cfg.MaxJumpVelocity)
	}

	env = newCtrlEnv(cfg, allAbilities(), platformLevel)
	env.stepN(2, InputFrame{})
	env.step(InputFrame{JumpPressed: true})
	peak = env.lastVelY
	for i := 0; i < 40; i++ {
		env.step(InputFrame{})
		if env.lastVelY > peak {
			peak = env.lastVelY
		}
	}
	if !approx(peak, cfg.MinJumpVelocity) {
		t.Fatalf("tapped jump peak: got %v want %v", peak, cfg.MinJumpVelocity)
	}
}

// Scenario: one ground dash, walk off the ledge, two air dashes, a refused
// third, and a landing that refills both budgets.
func TestControllerDashBudgetSequence(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), func(world *stubWorld) {
		platformLevel(world)
		world.addBox(CategoryGround, 10, -50, 200, -40)
	})
	env.stepN(2, InputFrame{})

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes-1 {
		t.Fatalf("ground dash budget after dash: got %d want %d", got, cfg.MaxDashes-1)
	}

	// Walk off the ledge.
	for i := 0; i < 120 && env.ctrl.Ground().Grounded; i++ {
		env.step(InputFrame{MoveX: 1})
	}
	if env.ctrl.Ground().Grounded {
		t.Fatalf("never left the platform")
	}

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if !env.ctrl.Dash().Dashing {
		t.Fatalf("first air dash refused")
	}
	env.stepN(12, InputFrame{MoveX: 1})

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if !env.ctrl.Dash().Dashing {
		t.Fatalf("second air dash refused")
	}
	env.stepN(12, InputFrame{MoveX: 1})

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if env.ctrl.Dash().Dashing {
		t.Fatalf("third air dash must be refused")
	}
	if got := env.ctrl.Ground().AirDashesRemaining; got != 0 {
		t.Fatalf("air dash budget: got %d want 0", got)
	}

	for i := 0; i < 300 && !env.ctrl.Ground().Grounded; i++ {
		env.step(InputFrame{})
	}
	if !env.ctrl.Ground().Grounded {
		t.Fatalf("never landed on the lower floor")
	}
	g := env.ctrl.Ground()
	if g.DashesRemaining != cfg.MaxDashes || g.AirDashesRemaining != cfg.MaxAirDashes {
		t.Fatalf("landing must refill both budgets, got %+v", g)
	}
}

// Scenario: two consecutive ground dashes drain the budget 2 -> 1 -> 0 with
// no refill in between; the budget only comes back after a full cooldown of
// grounded ticks.
func TestControllerConsecutiveGroundDashes(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), platformLevel)
	env.body.pos.X = -30
	env.stepN(2, InputFrame{})

	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes {
		t.Fatalf("initial ground dash budget: got %d want %d", got, cfg.MaxDashes)
	}

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if !env.ctrl.Dash().Dashing {
		t.Fatalf("first ground dash refused")
	}
	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes-1 {
		t.Fatalf("budget after first dash: got %d want %d", got, cfg.MaxDashes-1)
	}

	// Idle grounded past the dash duration and the debounce. The cooldown is
	// far longer, so the budget must not creep back up.
	env.stepN(12, InputFrame{})
	if !env.ctrl.Ground().Grounded {
		t.Fatalf("should still be grounded between dashes")
	}
	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes-1 {
		t.Fatalf("budget refilled between dashes: got %d want %d", got, cfg.MaxDashes-1)
	}

	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if !env.ctrl.Dash().Dashing {
		t.Fatalf("second ground dash refused")
	}
	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes-2 {
		t.Fatalf("budget after second dash: got %d want %d", got, cfg.MaxDashes-2)
	}

	// A third dash during the cooldown finds an empty budget.
	env.stepN(12, InputFrame{})
	env.step(InputFrame{DashPressed: true, MoveX: 1})
	if env.ctrl.Dash().Dashing {
		t.Fatalf("dash with an empty budget must be refused")
	}
	if got := env.ctrl.Ground().DashesRemaining; got != 0 {
		t.Fatalf("budget before the cooldown expires: got %d want 0", got)
	}

	// One full cooldown of grounded, non-dashing ticks refills the budget.
	env.stepN(int(cfg.DashCooldown/tickDt)+20, InputFrame{})
	if got := env.ctrl.Ground().DashesRemaining; got != cfg.MaxDashes {
		t.Fatalf("budget after the cooldown: got %d want %d", got, cfg.MaxDashes)
	}
}

// Scenario: falling against a wall while pressing toward it sticks first,
// then transitions to a slide once the descent passes the threshold.
func TestControllerWallStickThenSlide(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), func(world *stubWorld) {
		world.addBox(CategoryGround, 6, -100, 16, 100)
	})
	env.body.pos.Y = 50

	sawStick, sawSlide := false, false
	for i := 0; i < 60; i++ {
		ps := env.step(InputFrame{MoveX: 1})
		switch ps.State {
		case StateWallSticking:
			sawStick = true
			if sawSlide {
				t.Fatalf("stick after slide within one episode")
			}
		case StateWallSliding:
			if !sawStick {
				t.Fatalf("slide before any stick tick")
			}
			sawSlide = true
		}
	}
	if !sawStick || !sawSlide {
		t.Fatalf("expected stick then slide, got stick=%v slide=%v", sawStick, sawSlide)
	}
}

// Scenario: a double jump pressed while still ascending holds a short forced
// fall, then fires automatically at the minimum double jump velocity.
func TestControllerForcedFallDoubleJump(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), nil)
	env.gravity = 0
	env.body.pos.Y = 100
	env.body.vel.Y = 3

	env.step(InputFrame{JumpPressed: true})
	if !env.ctrl.Jump().ForcedFalling {
		t.Fatalf("ascending double jump press must enter the forced fall")
	}
	if !approx(env.lastVelY, cfg.ForcedFallVelocity) {
		t.Fatalf("forced fall velocity: got %v want %v", env.lastVelY, cfg.ForcedFallVelocity)
	}

	fired := false
	for i := 0; i < 10; i++ {
		env.step(InputFrame{})
		if approx(env.lastVelY, cfg.MinDoubleJumpVelocity) {
			fired = true
			break
		}
	}
	if !fired {
		t.Fatalf("pending double jump never fired")
	}
	if env.combat.doubleJumps != 1 {
		t.Fatalf("combat double jump hook: got %d want 1", env.combat.doubleJumps)
	}
}

// Coyote grace counts down monotonically after walking off a ledge, grants
// exactly one jump, and never returns while airborne.
func TestControllerCoyoteSingleConsumption(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, stubAbilities{}, platformLevel)
	env.stepN(2, InputFrame{})

	for i := 0; i < 120 && env.ctrl.Ground().Grounded; i++ {
		env.step(InputFrame{MoveX: 1})
	}
	if env.ctrl.Ground().Grounded {
		t.Fatalf("never left the platform")
	}

	// Monotone countdown for a couple of airborne ticks.
	last := env.ctrl.Ground().CoyoteRemaining
	if last <= 0 {
		t.Fatalf("no coyote grace after walking off")
	}
	for i := 0; i < 2; i++ {
		env.step(InputFrame{})
		cur := env.ctrl.Ground().CoyoteRemaining
		if cur > last {
			t.Fatalf("coyote increased airborne: %v -> %v", last, cur)
		}
		last = cur
	}

	env.step(InputFrame{JumpPressed: true})
	if !approx(env.lastVelY, cfg.MinJumpVelocity) {
		t.Fatalf("coyote jump velocity: got %v want %v", env.lastVelY, cfg.MinJumpVelocity)
	}
	g := env.ctrl.Ground()
	if g.CoyoteRemaining != 0 || !g.LeftGroundByJump {
		t.Fatalf("coyote not consumed: %+v", g)
	}

	// A second press gets nothing.
	env.step(InputFrame{JumpPressed: true})
	if env.lastVelY >= cfg.MinJumpVelocity {
		t.Fatalf("second press must not jump again: vy=%v", env.lastVelY)
	}
}

func TestControllerEnterWallStickZeroesUpwardVelocity(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), func(world *stubWorld) {
		world.addBox(CategoryGround, 6, -100, 16, 100)
	})
	env.body.pos.Y = 50
	env.body.vel.Y = 5

	ps := env.step(InputFrame{MoveX: 1})
	if ps.State != StateWallSticking {
		t.Fatalf("expected stick on contact, got %v", ps.State)
	}
	if env.lastVelY > 0 {
		t.Fatalf("stick entry must kill upward velocity, got %v", env.lastVelY)
	}
}

func TestControllerHeadStompRestoresAirDashes(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), nil)
	env.gravity = 0
	env.body.pos.Y = 100

	env.step(InputFrame{DashPressed: true})
	env.stepN(12, InputFrame{})
	env.step(InputFrame{DashPressed: true})
	env.stepN(12, InputFrame{})
	if got := env.ctrl.Ground().AirDashesRemaining; got != 0 {
		t.Fatalf("air dash budget after two dashes: got %d want 0", got)
	}

	env.ctrl.NotifyHeadStomp()
	if got := env.ctrl.Ground().AirDashesRemaining; got != cfg.MaxAirDashes {
		t.Fatalf("head stomp must restore air dashes: got %d want %d", got, cfg.MaxAirDashes)
	}
}

func TestControllerEmitsToSink(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), platformLevel)

	env.stepN(5, InputFrame{})
	if len(env.sink.states) != 5 {
		t.Fatalf("sink emissions: got %d want 5", len(env.sink.states))
	}
	if env.sink.states[4].State != StateIdle {
		t.Fatalf("resting state should be idle, got %v", env.sink.states[4].State)
	}
}

func TestControllerResetClearsEpisodeState(t *testing.T) {
	cfg := testConfig()
	env := newCtrlEnv(cfg, allAbilities(), platformLevel)
	env.stepN(2, InputFrame{})
	env.step(InputFrame{DashPressed: true, MoveX: 1})

	env.ctrl.Reset()
	g := env.ctrl.Ground()
	if g.DashesRemaining != cfg.MaxDashes || g.AirDashesRemaining != cfg.MaxAirDashes {
		t.Fatalf("reset must restore budgets, got %+v", g)
	}
	if env.ctrl.Dash().Dashing {
		t.Fatalf("reset must clear the dash")
	}
}
