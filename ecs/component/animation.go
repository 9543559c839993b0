package component

import "github.com/hajimehoshi/ebiten/v2"

// AnimationDef describes one clip on the sprite sheet.
type AnimationDef struct {
	Name       string
	Row        int
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

// Animation is the playback state for an entity's sprite sheet.
type Animation struct {
	Sheet   *ebiten.Image
	Defs    map[string]AnimationDef
	Current string
	Frame   int
	Timer   float64
	Playing bool
}

var AnimationComponent = NewComponent[Animation]()
