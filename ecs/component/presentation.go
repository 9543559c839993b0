package component

import "github.com/milk9111/platformkit/control"

// Presentation carries the movement controller's derived state for the
// animation and render systems, plus the previous tick's state for
// transition detection.
type Presentation struct {
	Current  control.PresentationState
	Previous control.MoveState
}

var PresentationComponent = NewComponent[Presentation]()
