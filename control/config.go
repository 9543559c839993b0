package control

// Config carries all movement tuning. It is yaml-loadable so the values can
// live in a prefab spec and be hot-reloaded while tuning game feel.
//
// Velocities are units/second, durations are seconds, angles are degrees.
type Config struct {
	// Horizontal movement.
	MoveSpeed     float64 `yaml:"move_speed"`
	InputDeadzone float64 `yaml:"input_deadzone"`

	// Ground sensing.
	MaxSlopeAngle        float64 `yaml:"max_slope_angle"`
	GroundProbeDist      float64 `yaml:"ground_probe_dist"`
	BufferProbeDist      float64 `yaml:"buffer_probe_dist"`
	SlopeRayLength       float64 `yaml:"slope_ray_length"`
	BufferSpeedThreshold float64 `yaml:"buffer_speed_threshold"`

	// Character extents used to place probes.
	BodyHalfWidth  float64 `yaml:"body_half_width"`
	BodyHalfHeight float64 `yaml:"body_half_height"`

	// Jumping.
	MinJumpVelocity      float64 `yaml:"min_jump_velocity"`
	MaxJumpVelocity      float64 `yaml:"max_jump_velocity"`
	JumpHoldDuration     float64 `yaml:"jump_hold_duration"`
	JumpHoldGravityScale float64 `yaml:"jump_hold_gravity_scale"`
	CoyoteTime           float64 `yaml:"coyote_time"`
	// CoyoteDuringDash allows coyote jumps inside the post-dash grace window.
	CoyoteDuringDash bool `yaml:"coyote_during_dash"`
	MaxAirJumps      int  `yaml:"max_air_jumps"`

	// Double jump.
	MinDoubleJumpVelocity float64 `yaml:"min_double_jump_velocity"`
	MaxDoubleJumpVelocity float64 `yaml:"max_double_jump_velocity"`
	DoubleJumpMinDelay    float64 `yaml:"double_jump_min_delay"`
	ForcedFallVelocity    float64 `yaml:"forced_fall_velocity"`
	ForcedFallDuration    float64 `yaml:"forced_fall_duration"`

	// Wall contact.
	WallProbeLength    float64 `yaml:"wall_probe_length"`
	WallJumpVelocityX  float64 `yaml:"wall_jump_velocity_x"`
	WallJumpVelocityY  float64 `yaml:"wall_jump_velocity_y"`
	WallFrictionBoost  float64 `yaml:"wall_friction_boost"`
	WallSlideSpeed     float64 `yaml:"wall_slide_speed"`
	WallNormalMinX     float64 `yaml:"wall_normal_min_x"`
	WallProbeMinHits   int     `yaml:"wall_probe_min_hits"`

	// Dashing.
	DashSpeed         float64 `yaml:"dash_speed"`
	DashTime          float64 `yaml:"dash_time"`
	DashCooldown      float64 `yaml:"dash_cooldown"`
	DashDebounce      float64 `yaml:"dash_debounce"`
	DashJumpWindow    float64 `yaml:"dash_jump_window"`
	DashJumpVelocityX float64 `yaml:"dash_jump_velocity_x"`
	DashJumpVelocityY float64 `yaml:"dash_jump_velocity_y"`
	MaxDashes         int     `yaml:"max_dashes"`
	MaxAirDashes      int     `yaml:"max_air_dashes"`

	// Buffer-assisted climbing.
	BufferClimbMaxOffset float64 `yaml:"buffer_climb_max_offset"`
	BufferClimbNudgeX    float64 `yaml:"buffer_climb_nudge_x"`
	BufferClimbNudgeY    float64 `yaml:"buffer_climb_nudge_y"`
}

// DefaultConfig returns the baseline tuning.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills zero values with defaults so partial yaml specs work.
func (c *Config) Normalize() {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	defInt := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}

	def(&c.MoveSpeed, 260)
	def(&c.InputDeadzone, 0.2)

	def(&c.MaxSlopeAngle, 45)
	def(&c.GroundProbeDist, 4)
	def(&c.BufferProbeDist, 6)
	def(&c.SlopeRayLength, 24)
	def(&c.BufferSpeedThreshold, 20)

	def(&c.BodyHalfWidth, 16)
	def(&c.BodyHalfHeight, 32)

	def(&c.MinJumpVelocity, 300)
	def(&c.MaxJumpVelocity, 520)
	def(&c.JumpHoldDuration, 0.25)
	def(&c.JumpHoldGravityScale, 1)
	def(&c.CoyoteTime, 0.1)
	defInt(&c.MaxAirJumps, 1)

	def(&c.MinDoubleJumpVelocity, 280)
	def(&c.MaxDoubleJumpVelocity, 460)
	def(&c.DoubleJumpMinDelay, 0.1)
	def(&c.ForcedFallVelocity, -60)
	def(&c.ForcedFallDuration, 0.12)
	if c.ForcedFallVelocity > 0 {
		c.ForcedFallVelocity = -c.ForcedFallVelocity
	}

	def(&c.WallProbeLength, 6)
	def(&c.WallJumpVelocityX, 320)
	def(&c.WallJumpVelocityY, 420)
	def(&c.WallFrictionBoost, 1.15)
	def(&c.WallSlideSpeed, 80)
	def(&c.WallNormalMinX, 0.9)
	defInt(&c.WallProbeMinHits, 2)

	def(&c.DashSpeed, 640)
	def(&c.DashTime, 0.18)
	def(&c.DashCooldown, 1.2)
	def(&c.DashDebounce, 0.1)
	def(&c.DashJumpWindow, 0.12)
	def(&c.DashJumpVelocityX, 480)
	def(&c.DashJumpVelocityY, 360)
	defInt(&c.MaxDashes, 1)
	defInt(&c.MaxAirDashes, 1)

	def(&c.BufferClimbMaxOffset, 10)
	def(&c.BufferClimbNudgeX, 120)
	def(&c.BufferClimbNudgeY, 160)
}

// variableJumpEnabled reports whether hold-based height variance applies for
// a min/max velocity pair. Equal values disable the clamping logic outright.
func variableJumpEnabled(min, max float64) bool {
	return max > min
}
