package control

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// WallSensor fires three horizontal probes in the facing direction and
// resolves wall contact plus stick eligibility.
type WallSensor struct {
	cfg   Config
	world World

	disabled bool
}

func NewWallSensor(cfg Config, world World) *WallSensor {
	s := &WallSensor{cfg: cfg, world: world}
	if world == nil || !world.HasCategory(CategoryGround) {
		log.Printf("WallSensor: collision category %q missing; wall contact disabled", CategoryGround)
		s.disabled = true
	}
	return s
}

// SetConfig swaps the tuning (hot reload).
func (s *WallSensor) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Sense probes for a wall in the facing direction. Ability gating takes
// precedence over geometry: with wall-stick locked both flags are false no
// matter what the probes report.
func (s *WallSensor) Sense(body Body, facingRight bool, in InputFrame, grounded, bufferClimbing bool, abilities Abilities) WallState {
	var ws WallState
	if s.disabled || body == nil {
		return ws
	}
	if abilities == nil || !abilities.Unlocked(AbilityWallStick) {
		return ws
	}

	dir := 1.0
	if !facingRight {
		dir = -1
	}

	pos := body.Position()
	// Probe heights: near the top of the body, upper middle, and near the feet.
	heights := []float64{
		s.cfg.BodyHalfHeight * 0.85,
		s.cfg.BodyHalfHeight * 0.3,
		-s.cfg.BodyHalfHeight * 0.85,
	}

	hits := 0
	for _, h := range heights {
		start := cp.Vector{X: pos.X, Y: pos.Y + h}
		end := cp.Vector{X: pos.X + dir*(s.cfg.BodyHalfWidth+s.cfg.WallProbeLength), Y: pos.Y + h}
		hit, ok := s.world.ProbeRay(start, end, CategoryGround)
		if !ok {
			continue
		}
		// Only near-vertical surfaces count; steep slopes are not walls.
		if math.Abs(hit.Normal.X) > s.cfg.WallNormalMinX {
			hits++
		}
	}

	if hits < s.cfg.WallProbeMinHits || grounded || bufferClimbing {
		return ws
	}

	toward := in.MoveX * dir
	ws.StickAllowed = toward > s.cfg.InputDeadzone
	ws.OnWall = toward >= -s.cfg.InputDeadzone

	return ws
}
