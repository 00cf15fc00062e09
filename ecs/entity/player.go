package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

// NewPlayerFromSpec builds the player at (x, y), which also becomes its
// spawn point.
func NewPlayerFromSpec(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	scale := spec.Scale
	if scale == 0 {
		scale = 1
	}

	b := newBuilder(w, "player")
	add(b, "player tag", component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	add(b, "player", component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:  spec.MoveSpeed,
		JumpSpeed:  spec.JumpSpeed,
		ClimbSpeed: spec.ClimbSpeed,
		JumpProbe:  spec.JumpProbe,
		SpawnX:     x,
		SpawnY:     y,
	})
	add(b, "input", component.InputComponent.Kind(), &component.Input{})
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: scale, ScaleY: scale})
	add(b, "velocity", component.VelocityComponent.Kind(), &component.Velocity{})
	add(b, "contacts", component.ContactsComponent.Kind(), &component.Contacts{})
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyDynamic,
		Layer:  component.LayerPlayer,
		Width:  spec.Collider.Width,
		Height: spec.Collider.Height,
	})
	add(b, "animator", component.AnimatorComponent.Kind(), &component.Animator{})
	add(b, "animation set", component.AnimationSetComponent.Kind(), animationSet(spec.Animation))
	add(b, "sprite", component.SpriteComponent.Kind(), &component.Sprite{Texture: spec.Animation.Idle})
	add(b, "render layer", component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index})
	add(b, "audio", component.AudioComponent.Kind(), audioFromSpecs(spec.Audio))
	return b.done()
}

func animationSet(a prefabs.AnimationSpec) *component.AnimationSet {
	set := &component.AnimationSet{Textures: map[component.Visual]string{
		component.VisualIdle: a.Idle,
		component.VisualJump: a.Jump,
		component.VisualFall: a.Fall,
	}}
	for i, tex := range a.Walk {
		if i > 2 {
			break
		}
		set.Textures[component.VisualWalk0+component.Visual(i)] = tex
	}
	for i, tex := range a.Climb {
		if i > 1 {
			break
		}
		set.Textures[component.VisualClimb0+component.Visual(i)] = tex
	}
	return set
}

func audioFromSpecs(specs []prefabs.AudioSpec) *component.Audio {
	a := &component.Audio{
		Names:  make([]string, 0, len(specs)),
		Files:  make([]string, 0, len(specs)),
		Volume: make([]float64, 0, len(specs)),
		Play:   make([]bool, len(specs)),
	}
	for _, s := range specs {
		vol := s.Volume
		if vol == 0 {
			vol = 1
		}
		a.Names = append(a.Names, s.Name)
		a.Files = append(a.Files, s.File)
		a.Volume = append(a.Volume, vol)
	}
	return a
}
