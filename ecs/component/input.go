package component

// Input stores the per-tick sampled input for a controllable entity.
// Pressed/Released fields are edge-triggered, Held fields level-triggered.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// MoveY is -1 for down, 0 for none, +1 for up.
	MoveY float64

	JumpPressed  bool
	JumpReleased bool
	JumpHeld     bool

	DashPressed   bool
	AttackPressed bool
	PausePressed  bool
}

var InputComponent = NewComponent[Input]()
