package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type HazardSystem struct {
	physics *PhysicsSystem
}

func NewHazardSystem(physics *PhysicsSystem) *HazardSystem {
	return &HazardSystem{physics: physics}
}

// Touching returns the first hazard overlapping the player.
func (s *HazardSystem) Touching(w *ecs.World) (component.Hazard, bool) {
	if s == nil || w == nil {
		return component.Hazard{}, false
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return component.Hazard{}, false
	}
	for _, e := range s.physics.Overlaps(w, player, component.LayerHazard) {
		if h, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
			return *h, true
		}
	}
	return component.Hazard{}, false
}
