package system

import (
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
)

// AnimationSystem picks the clip matching the derived movement state and
// advances playback. Clip names follow the movement state names.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PresentationComponent.Kind(), component.AnimationComponent.Kind(),
		func(_ ecs.Entity, pres *component.Presentation, anim *component.Animation) {
			clip := pres.Current.State.String()
			if anim.Current != clip {
				anim.Current = clip
				anim.Frame = 0
				anim.Timer = 0
				anim.Playing = true
			}

			def, ok := anim.Defs[anim.Current]
			if !ok || def.FrameCount <= 0 || def.FPS <= 0 || !anim.Playing {
				return
			}

			anim.Timer += a.dt
			frameTime := 1.0 / def.FPS
			for anim.Timer >= frameTime {
				anim.Timer -= frameTime
				anim.Frame++
				if anim.Frame >= def.FrameCount {
					if def.Loop {
						anim.Frame = 0
					} else {
						anim.Frame = def.FrameCount - 1
						anim.Playing = false
					}
				}
			}
		})
}
