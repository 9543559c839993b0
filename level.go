package main

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/platformkit/ecs/system"
	"github.com/milk9111/platformkit/levels"
)

// buildLevelGeometry registers the level's static shapes with the physics
// space. Unknown categories are dropped and logged by the physics system.
func buildLevelGeometry(physics *system.PhysicsSystem, lvl *levels.Level) {
	for _, b := range lvl.Boxes {
		physics.AddStaticBox(b.Category, b.L, b.B, b.R, b.T)
	}
	for _, s := range lvl.Segments {
		physics.AddStaticSegment(s.Category, cp.Vector{X: s.Ax, Y: s.Ay}, cp.Vector{X: s.Bx, Y: s.By}, s.Radius)
	}
}

// renderGeometry converts the level into the render system's debug shapes.
func renderGeometry(lvl *levels.Level) ([]system.Box, []system.Segment) {
	boxes := make([]system.Box, 0, len(lvl.Boxes))
	for _, b := range lvl.Boxes {
		boxes = append(boxes, system.Box{Category: b.Category, L: b.L, B: b.B, R: b.R, T: b.T})
	}
	segments := make([]system.Segment, 0, len(lvl.Segments))
	for _, s := range lvl.Segments {
		segments = append(segments, system.Segment{Ax: s.Ax, Ay: s.Ay, Bx: s.Bx, By: s.By})
	}
	return boxes, segments
}
