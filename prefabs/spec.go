package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/platformkit/control"
	"github.com/milk9111/platformkit/progression"
)

// LoadSpec reads a yaml spec by name and decodes it into T. A file on disk
// under prefabs/ shadows the embedded default, which is what makes live
// tuning work: edit the file, the watcher fires, the caller reloads.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name     string         `yaml:"name"`
	SpawnX   float64        `yaml:"spawn_x"`
	SpawnY   float64        `yaml:"spawn_y"`
	Body     BodySpec       `yaml:"body"`
	Movement control.Config `yaml:"movement"`
}

type BodySpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
}

// LoadPlayerSpec loads player.yaml and fills missing values with the
// movement defaults. Body extents fall back to the probe half-extents so the
// collider and the sensors agree.
func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	spec.Movement.Normalize()
	if spec.Body.Width == 0 {
		spec.Body.Width = 2 * spec.Movement.BodyHalfWidth
	}
	if spec.Body.Height == 0 {
		spec.Body.Height = 2 * spec.Movement.BodyHalfHeight
	}
	if spec.Body.Mass == 0 {
		spec.Body.Mass = 1
	}
	return &spec, nil
}

// LoadAbilities loads abilities.yaml. The file accepts either a bare list of
// ability names or a mapping with an unlocked key.
func LoadAbilities() (*progression.Abilities, error) {
	set, err := LoadSpec[progression.Abilities]("abilities.yaml")
	if err != nil {
		return nil, err
	}
	return &set, nil
}
