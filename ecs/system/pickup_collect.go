package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// PickupCollectSystem removes coins the player touches.
type PickupCollectSystem struct {
	physics *PhysicsSystem
}

func NewPickupCollectSystem(physics *PhysicsSystem) *PickupCollectSystem {
	return &PickupCollectSystem{physics: physics}
}

// Collect destroys every coin overlapping the player and returns how many
// were removed. A coin already destroyed is not counted again.
func (s *PickupCollectSystem) Collect(w *ecs.World) int {
	if s == nil || w == nil {
		return 0
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0
	}

	collected := 0
	for _, e := range s.physics.Overlaps(w, player, component.LayerCoin) {
		if !ecs.Has(w, e, component.CoinTagComponent.Kind()) {
			continue
		}
		s.physics.Remove(e)
		if !w.DestroyEntity(e) {
			continue
		}
		collected++
		PlayCue(w, player, common.CueCoin)
	}
	return collected
}
