package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/platformkit/control"
	"github.com/milk9111/platformkit/ecs"
	"github.com/milk9111/platformkit/ecs/component"
	"github.com/milk9111/platformkit/ecs/system"
	"github.com/milk9111/platformkit/levels"
	"github.com/milk9111/platformkit/prefabs"
	"github.com/milk9111/platformkit/progression"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tickDt = 1.0 / 60.0

	worldGravity = 1400.0
)

type Game struct {
	world  *ecs.World
	render *system.RenderSystem
	ctrl   *control.Controller

	watcher *prefabs.Watcher
}

func NewGame(levelName string, debug, allAbilities bool) *Game {
	if levelName == "" {
		levelName = "playground"
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		log.Fatalf("Game: load level %s: %v", levelName, err)
	}

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatalf("Game: load player spec: %v", err)
	}

	var set *progression.Abilities
	if allAbilities {
		set = progression.New(
			control.AbilityDoubleJump,
			control.AbilityDash,
			control.AbilityDashJump,
			control.AbilityWallStick,
			control.AbilityLedgeGrab,
		)
	} else {
		set, err = prefabs.LoadAbilities()
		if err != nil {
			log.Fatalf("Game: load abilities: %v", err)
		}
	}

	physics := system.NewPhysicsSystem(worldGravity, tickDt)
	buildLevelGeometry(physics, lvl)

	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)

	pb := &component.PhysicsBody{
		Width:        spec.Body.Width,
		Height:       spec.Body.Height,
		Mass:         spec.Body.Mass,
		GravityScale: 1,
	}
	physics.AttachPlayerBody(pb, lvl.SpawnX, lvl.SpawnY)

	combat := &component.Combat{}
	mustAdd(w, player, component.PlayerComponent.Kind(), &component.Player{SpawnX: lvl.SpawnX, SpawnY: lvl.SpawnY})
	mustAdd(w, player, component.InputComponent.Kind(), &component.Input{})
	mustAdd(w, player, component.TransformComponent.Kind(), &component.Transform{X: lvl.SpawnX, Y: lvl.SpawnY})
	mustAdd(w, player, component.PhysicsBodyComponent.Kind(), pb)
	mustAdd(w, player, component.CombatComponent.Kind(), combat)
	mustAdd(w, player, component.AbilitiesComponent.Kind(), &component.Abilities{Set: set})
	mustAdd(w, player, component.PresentationComponent.Kind(), &component.Presentation{})
	mustAdd(w, player, component.AnimationComponent.Kind(), playerAnimation())

	ctrl := control.NewController(spec.Movement, physics, system.NewBodyHandle(pb), set, combat, nil)

	w.AddSystem(system.NewInputSystem())
	w.AddSystem(system.NewPlayerControllerSystem(ctrl, tickDt, lvl.KillY))
	w.AddSystem(physics)
	w.AddSystem(system.NewAnimationSystem(tickDt))

	render := system.NewRenderSystem(baseWidth, baseHeight, ctrl)
	render.SetGeometry(renderGeometry(lvl))
	if debug {
		render.ToggleDebug()
	}

	g := &Game{world: w, render: render, ctrl: ctrl}

	watcher, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		log.Printf("Game: spec watching disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g
}

func mustAdd[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	if err := ecs.Add(w, e, kind, v); err != nil {
		log.Fatalf("Game: add component: %v", err)
	}
}

// playerAnimation maps each movement state onto a clip slot. There is no
// sheet yet; the render system draws a tinted rect, but the playback state
// still tracks the state machine so sprites drop in later.
func playerAnimation() *component.Animation {
	states := []control.MoveState{
		control.StateIdle,
		control.StateRunning,
		control.StateJumping,
		control.StateFalling,
		control.StateWallSticking,
		control.StateWallSliding,
		control.StateDashing,
	}
	defs := make(map[string]component.AnimationDef, len(states))
	for i, st := range states {
		defs[st.String()] = component.AnimationDef{
			Name:       st.String(),
			Row:        i,
			FrameCount: 4,
			FrameW:     32,
			FrameH:     64,
			FPS:        8,
			Loop:       true,
		}
	}
	return &component.Animation{Defs: defs, Current: control.StateIdle.String(), Playing: true}
}

func (g *Game) Update() error {
	g.pollSpecChanges()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.render.ToggleDebug()
	}

	g.world.Update()
	return nil
}

// pollSpecChanges applies edited prefab specs without restarting. Only the
// movement tuning hot-reloads; body extents need a restart.
func (g *Game) pollSpecChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("Game: spec changed: %s", name)
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				log.Printf("Game: reload player spec: %v", err)
				continue
			}
			g.ctrl.SetConfig(spec.Movement)
			g.world.Events().Push(ecs.Event{Type: ecs.EventConfigReloaded, Data: name})
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("Game: spec watcher: %v", err)
			}
			return
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
