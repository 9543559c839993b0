package component

// Combat tracks attack timers for an entity. The movement controller consults
// the Is* accessors when gating dashes and wall states.
type Combat struct {
	AttackTimer     float64
	AirAttackTimer  float64
	DashAttackTimer float64

	// EffectTimer drives short presentation flashes for double jumps and
	// dash ends.
	EffectTimer float64
}

func (c *Combat) IsAttacking() bool     { return c != nil && c.AttackTimer > 0 }
func (c *Combat) IsAirAttacking() bool  { return c != nil && c.AirAttackTimer > 0 }
func (c *Combat) IsDashAttacking() bool { return c != nil && c.DashAttackTimer > 0 }

func (c *Combat) DoubleJumped() {
	if c != nil {
		c.EffectTimer = 0.2
	}
}

func (c *Combat) DashEnded() {
	if c != nil {
		c.DashAttackTimer = 0
	}
}

var CombatComponent = NewComponent[Combat]()
