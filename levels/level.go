// Package levels loads the static level geometry the physics space is built
// from. Levels are JSON files embedded at build time; a copy on disk under
// levels/ shadows the embedded one, same as prefab specs.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a set of axis-aligned solids plus slope segments, with the player
// spawn point and the kill plane. Coordinates are world units with Y up.
type Level struct {
	Name   string  `json:"name"`
	SpawnX float64 `json:"spawn_x"`
	SpawnY float64 `json:"spawn_y"`

	// KillY is the respawn plane. Zero means derive it from the lowest box.
	KillY float64 `json:"kill_y,omitempty"`

	Boxes    []Box     `json:"boxes"`
	Segments []Segment `json:"segments,omitempty"`
}

// Box is an axis-aligned volume. Category selects the collision category;
// empty means solid ground.
type Box struct {
	Category string  `json:"category,omitempty"`
	L        float64 `json:"l"`
	B        float64 `json:"b"`
	R        float64 `json:"r"`
	T        float64 `json:"t"`
}

// Segment is a thin surface, used for slopes and one-off ledges.
type Segment struct {
	Category string  `json:"category,omitempty"`
	Ax       float64 `json:"ax"`
	Ay       float64 `json:"ay"`
	Bx       float64 `json:"bx"`
	By       float64 `json:"by"`
	Radius   float64 `json:"radius,omitempty"`
}

// Load reads a level by name. The .json extension is optional.
func Load(name string) (*Level, error) {
	clean := cleanName(name)

	data, err := os.ReadFile(filepath.Join("levels", clean))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}

	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", clean, err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	lvl.applyDefaults()
	return &lvl, nil
}

func cleanName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}

func (l *Level) validate() error {
	if len(l.Boxes) == 0 && len(l.Segments) == 0 {
		return fmt.Errorf("no geometry")
	}
	for i, b := range l.Boxes {
		if b.R <= b.L || b.T <= b.B {
			return fmt.Errorf("box %d has inverted extents: %+v", i, b)
		}
	}
	return nil
}

func (l *Level) applyDefaults() {
	for i := range l.Boxes {
		if l.Boxes[i].Category == "" {
			l.Boxes[i].Category = "ground"
		}
	}
	for i := range l.Segments {
		if l.Segments[i].Category == "" {
			l.Segments[i].Category = "ground"
		}
	}
	if l.KillY == 0 {
		lowest := l.Boxes[0].B
		for _, b := range l.Boxes[1:] {
			if b.B < lowest {
				lowest = b.B
			}
		}
		l.KillY = lowest - 200
	}
}
