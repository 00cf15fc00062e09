package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

type TeleportSystem struct {
	physics *PhysicsSystem
}

func NewTeleportSystem(physics *PhysicsSystem) *TeleportSystem {
	return &TeleportSystem{physics: physics}
}

// Apply moves the player to the target of a touched front pad, then checks
// back pads at the player's new position. Only position changes; velocity
// is kept. Returns true if the player moved.
func (s *TeleportSystem) Apply(w *ecs.World) bool {
	if s == nil || w == nil {
		return false
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}

	moved := false
	for _, back := range []bool{false, true} {
		tp, ok := s.touching(w, player, back)
		if !ok {
			continue
		}
		s.physics.SetPosition(w, player, tp.TargetX, tp.TargetY)
		PlayCue(w, player, common.CueTeleport)
		moved = true
	}
	return moved
}

func (s *TeleportSystem) touching(w *ecs.World, player ecs.Entity, back bool) (component.Teleporter, bool) {
	for _, e := range s.physics.Overlaps(w, player, component.LayerTeleport) {
		if tp, ok := ecs.Get(w, e, component.TeleporterComponent.Kind()); ok && tp.Back == back {
			return *tp, true
		}
	}
	return component.Teleporter{}, false
}
