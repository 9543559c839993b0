// Package progression tracks which movement abilities the player has earned.
package progression

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Abilities is the unlock set consulted by the movement controller. Lookups
// are case-insensitive and unknown names are simply locked, so a stale name
// in a tuning file degrades instead of breaking movement.
type Abilities struct {
	unlocked map[string]bool
}

// aliases maps legacy tuning-file names onto their canonical ability.
var aliases = map[string]string{
	"wallslide": "wallstick",
	"walljump":  "wallstick",
}

func canonical(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

// New returns an ability set with the given names unlocked.
func New(names ...string) *Abilities {
	a := &Abilities{unlocked: make(map[string]bool)}
	for _, name := range names {
		a.Unlock(name)
	}
	return a
}

// Unlock grants an ability.
func (a *Abilities) Unlock(name string) {
	if a.unlocked == nil {
		a.unlocked = make(map[string]bool)
	}
	a.unlocked[canonical(name)] = true
}

// Lock revokes an ability.
func (a *Abilities) Lock(name string) {
	delete(a.unlocked, canonical(name))
}

// Unlocked reports whether the named ability has been earned.
func (a *Abilities) Unlocked(name string) bool {
	if a == nil {
		return false
	}
	return a.unlocked[canonical(name)]
}

// Names returns the unlocked set in sorted order, for the debug overlay.
func (a *Abilities) Names() []string {
	names := make([]string, 0, len(a.unlocked))
	for name := range a.unlocked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnmarshalYAML accepts either a bare list of names or a mapping with an
// "unlocked" list, matching both tuning-file generations.
func (a *Abilities) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	switch value.Kind {
	case yaml.SequenceNode:
		if err := value.Decode(&names); err != nil {
			return fmt.Errorf("progression: decode ability list: %w", err)
		}
	case yaml.MappingNode:
		var doc struct {
			Unlocked []string `yaml:"unlocked"`
		}
		if err := value.Decode(&doc); err != nil {
			return fmt.Errorf("progression: decode ability map: %w", err)
		}
		names = doc.Unlocked
	default:
		return fmt.Errorf("progression: unexpected yaml node kind %d", value.Kind)
	}

	a.unlocked = make(map[string]bool)
	for _, name := range names {
		a.Unlock(name)
	}
	return nil
}

// MarshalYAML writes the canonical sorted list form.
func (a *Abilities) MarshalYAML() (any, error) {
	return a.Names(), nil
}
