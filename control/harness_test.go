package control

import (
	"math"

	"github.com/jakecoffman/cp"
)

// The tests drive the pipeline against a scripted collision world instead of
// a live physics space, so every probe answer is deterministic.

type stubBox struct {
	l, b, r, t float64
	category   string
	// normal overrides the face normal reported for ray hits, which lets a
	// flat box stand in for a slope or a canted wall.
	normal *cp.Vector
}

type stubWorld struct {
	boxes      []stubBox
	categories map[string]bool
}

func newStubWorld() *stubWorld {
	return &stubWorld{categories: map[string]bool{
		CategoryGround: true,
		CategoryBuffer: true,
	}}
}

func (w *stubWorld) addBox(category string, l, b, r, t float64) {
	w.boxes = append(w.boxes, stubBox{l: l, b: b, r: r, t: t, category: category})
}

func (w *stubWorld) addSloped(category string, l, b, r, t float64, normal cp.Vector) {
	n := normal.Normalize()
	w.boxes = append(w.boxes, stubBox{l: l, b: b, r: r, t: t, category: category, normal: &n})
}

func (w *stubWorld) HasCategory(category string) bool {
	return w.categories[category]
}

func (w *stubWorld) ProbePoint(p cp.Vector, maxDist float64, category string) (Hit, bool) {
	best := math.MaxFloat64
	for _, bx := range w.boxes {
		if bx.category != category {
			continue
		}
		dx := math.Max(math.Max(bx.l-p.X, 0), p.X-bx.r)
		dy := math.Max(math.Max(bx.b-p.Y, 0), p.Y-bx.t)
		d := math.Hypot(dx, dy)
		if d <= maxDist && d < best {
			best = d
		}
	}
	if best == math.MaxFloat64 {
		return Hit{}, false
	}
	return Hit{Point: p}, true
}

func (w *stubWorld) ProbeRay(a, b cp.Vector, category string) (Hit, bool) {
	bestAlpha := math.MaxFloat64
	var bestHit Hit
	for _, bx := range w.boxes {
		if bx.category != category {
			continue
		}
		hit, ok := bx.segmentHit(a, b)
		if ok && hit.Alpha < bestAlpha {
			bestAlpha = hit.Alpha
			bestHit = hit
		}
	}
	if bestAlpha == math.MaxFloat64 {
		return Hit{}, false
	}
	return bestHit, true
}

func (bx stubBox) segmentHit(a, b cp.Vector) (Hit, bool) {
	d := b.Sub(a)
	tmin, tmax := 0.0, 1.0
	var normal cp.Vector

	for axis := 0; axis < 2; axis++ {
		var p, dd, lo, hi float64
		var axisNormal cp.Vector
		if axis == 0 {
			p, dd, lo, hi = a.X, d.X, bx.l, bx.r
			axisNormal = cp.Vector{X: -1}
		} else {
			p, dd, lo, hi = a.Y, d.Y, bx.b, bx.t
			axisNormal = cp.Vector{Y: -1}
		}

		if dd == 0 {
			if p < lo || p > hi {
				return Hit{}, false
			}
			continue
		}

		t1 := (lo - p) / dd
		t2 := (hi - p) / dd
		n := axisNormal
		if dd < 0 {
			t1, t2 = t2, t1
			n = axisNormal.Neg()
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return Hit{}, false
		}
	}

	if normal == (cp.Vector{}) {
		// Started inside the box.
		return Hit{}, false
	}
	if bx.normal != nil {
		normal = *bx.normal
	}
	return Hit{Point: a.Add(d.Mult(tmin)), Normal: normal, Alpha: tmin}, true
}

type stubBody struct {
	pos     cp.Vector
	vel     cp.Vector
	gravity float64
}

func newStubBody(x, y float64) *stubBody {
	return &stubBody{pos: cp.Vector{X: x, Y: y}, gravity: 1}
}

func (b *stubBody) Position() cp.Vector { return b.pos }

func (b *stubBody) Velocity() cp.Vector { return b.vel }

func (b *stubBody) SetVelocity(x, y float64) {
	b.vel = cp.Vector{X: x, Y: y}
}

func (b *stubBody) ApplyImpulse(impulse cp.Vector) {
	b.vel = b.vel.Add(impulse)
}

func (b *stubBody) GravityScale() float64 { return b.gravity }

func (b *stubBody) SetGravityScale(scale float64) { b.gravity = scale }

type stubCombat struct {
	attacking     bool
	airAttacking  bool
	dashAttacking bool

	doubleJumps int
	dashEnds    int
}

func (c *stubCombat) IsAttacking() bool     { return c.attacking }
func (c *stubCombat) IsAirAttacking() bool  { return c.airAttacking }
func (c *stubCombat) IsDashAttacking() bool { return c.dashAttacking }
func (c *stubCombat) DoubleJumped()         { c.doubleJumps++ }
func (c *stubCombat) DashEnded()            { c.dashEnds++ }

// stubAbilities unlocks exactly the named abilities.
type stubAbilities map[string]bool

func (a stubAbilities) Unlocked(name string) bool { return a[name] }

func allAbilities() stubAbilities {
	return stubAbilities{
		AbilityDoubleJump: true,
		AbilityDash:       true,
		AbilityDashJump:   true,
		AbilityWallStick:  true,
		AbilityLedgeGrab:  true,
	}
}

type recordingSink struct {
	states []PresentationState
}

func (s *recordingSink) Present(ps PresentationState) {
	s.states = append(s.states, ps)
}

// testConfig is small-number tuning that keeps assertions readable.
func testConfig() Config {
	cfg := Config{
		MoveSpeed:     10,
		InputDeadzone: 0.2,

		MaxSlopeAngle:        45,
		GroundProbeDist:      2,
		BufferProbeDist:      3,
		SlopeRayLength:       12,
		BufferSpeedThreshold: 5,

		BodyHalfWidth:  4,
		BodyHalfHeight: 8,

		MinJumpVelocity:      4,
		MaxJumpVelocity:      8,
		JumpHoldDuration:     0.2,
		JumpHoldGravityScale: 1,
		CoyoteTime:           0.1,
		MaxAirJumps:          1,

		MinDoubleJumpVelocity: 3,
		MaxDoubleJumpVelocity: 6,
		DoubleJumpMinDelay:    0.05,
		ForcedFallVelocity:    -2,
		ForcedFallDuration:    0.1,

		WallProbeLength:   3,
		WallJumpVelocityX: 6,
		WallJumpVelocityY: 7,
		WallFrictionBoost: 1.5,
		WallSlideSpeed:    2,
		WallNormalMinX:    0.9,
		WallProbeMinHits:  2,

		DashSpeed:         20,
		DashTime:          0.15,
		DashCooldown:      1,
		DashDebounce:      0.1,
		DashJumpWindow:    0.1,
		DashJumpVelocityX: 15,
		DashJumpVelocityY: 9,
		MaxDashes:         2,
		MaxAirDashes:      2,

		BufferClimbMaxOffset: 4,
		BufferClimbNudgeX:    6,
		BufferClimbNudgeY:    8,
	}
	return cfg
}

// groundedState is a convenience snapshot for stage-level tests.
func groundedState(cfg Config) GroundState {
	return GroundState{
		Grounded:           true,
		OnPlatform:         true,
		CoyoteRemaining:    cfg.CoyoteTime,
		DashesRemaining:    cfg.MaxDashes,
		AirDashesRemaining: cfg.MaxAirDashes,
	}
}

func airborneState(cfg Config) GroundState {
	return GroundState{
		DashesRemaining:    cfg.MaxDashes,
		AirDashesRemaining: cfg.MaxAirDashes,
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
