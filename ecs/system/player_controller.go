package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformkit/control"
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
)

// PlayerControllerSystem feeds sampled input through the movement controller
// and mirrors the derived state back into presentation components.
type PlayerControllerSystem struct {
	ctrl *control.Controller
	dt   float64

	// killY is the respawn plane; falling below it resets the player.
	killY float64
}

func NewPlayerControllerSystem(ctrl *control.Controller, dt, killY float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{ctrl: ctrl, dt: dt, killY: killY}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, pl *component.Player, in *component.Input, pb *component.PhysicsBody) {
			if cb, ok := ecs.Get(w, e, component.CombatComponent.Kind()); ok {
				cb.AttackTimer = math.Max(0, cb.AttackTimer-s.dt)
				cb.AirAttackTimer = math.Max(0, cb.AirAttackTimer-s.dt)
				cb.DashAttackTimer = math.Max(0, cb.DashAttackTimer-s.dt)
				cb.EffectTimer = math.Max(0, cb.EffectTimer-s.dt)
			}

			ps := s.ctrl.Tick(s.dt, control.InputFrame{
				MoveX:         in.MoveX,
				MoveY:         in.MoveY,
				JumpPressed:   in.JumpPressed,
				JumpReleased:  in.JumpReleased,
				JumpHeld:      in.JumpHeld,
				DashPressed:   in.DashPressed,
				AttackPressed: in.AttackPressed,
			})

			if pres, ok := ecs.Get(w, e, component.PresentationComponent.Kind()); ok {
				if pres.Current.State != ps.State {
					w.Events().Push(ecs.Event{Type: ecs.EventStateChanged, Data: ps.State})
				}
				pres.Previous = pres.Current.State
				pres.Current = ps
			}
			if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				tf.FlipX = !ps.FacingRight
			}

			if pb.Body != nil && pb.Body.Position().Y < s.killY {
				s.respawn(w, pl, pb)
			}
		})
}

func (s *PlayerControllerSystem) respawn(w *ecs.World, pl *component.Player, pb *component.PhysicsBody) {
	pb.Body.SetPosition(cp.Vector{X: pl.SpawnX, Y: pl.SpawnY})
	pb.Body.SetVelocity(0, 0)
	pb.GravityScale = 1
	s.ctrl.Reset()
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerRespawn})
}
