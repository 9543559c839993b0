package component

// Player marks the controllable character and remembers its spawn point.
type Player struct {
	SpawnX float64
	SpawnY float64
}

var PlayerComponent = NewComponent[Player]()
