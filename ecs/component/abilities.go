package component

import "github.com/milk9111/platformkit/progression"

// Abilities points an entity at its progression unlock set.
type Abilities struct {
	Set *progression.Abilities
}

var AbilitiesComponent = NewComponent[Abilities]()
