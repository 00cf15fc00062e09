package system

import (
	"math"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	climbCycle = 8
	walkCycle  = 3
	// each climb texture is held for this many ticks
	climbHold = 4
)

// SelectAnimation picks the player's next animator state from its velocity
// and ladder flag. Rules are checked in order and the first match wins:
// ladder, vertical motion, standing still, walking.
func SelectAnimation(prev component.Animator, dx, dy float64, onLadder bool) component.Animator {
	next := prev

	if dx < 0 && next.Facing == component.FacingRight {
		next.Facing = component.FacingLeft
	} else if dx > 0 && next.Facing == component.FacingLeft {
		next.Facing = component.FacingRight
	}

	if onLadder {
		next.Mode = component.ModeClimbing
		if math.Abs(dy) > 1 {
			next.Frame++
			if next.Frame >= climbCycle {
				next.Frame = 0
			}
		}
		if next.Frame < 0 || next.Frame >= climbCycle {
			next.Frame = 0
		}
		if next.Frame/climbHold == 0 {
			next.Visual = component.VisualClimb0
		} else {
			next.Visual = component.VisualClimb1
		}
		return next
	}

	switch {
	case dy > 0:
		next.Mode = component.ModeJumping
		next.Visual = component.VisualJump
		return next
	case dy < 0:
		next.Mode = component.ModeFalling
		next.Visual = component.VisualFall
		return next
	}

	if dx == 0 {
		next.Mode = component.ModeIdle
		next.Visual = component.VisualIdle
		return next
	}

	next.Mode = component.ModeWalking
	next.Frame++
	if next.Frame < 0 || next.Frame >= walkCycle {
		next.Frame = 0
	}
	next.Visual = component.VisualWalk0 + component.Visual(next.Frame)
	return next
}

// Mirrored reports whether a visual is drawn flipped. Climb textures face
// the ladder and never flip.
func Mirrored(a component.Animator) bool {
	if a.Visual == component.VisualClimb0 || a.Visual == component.VisualClimb1 {
		return false
	}
	return a.Facing == component.FacingLeft
}

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

// Update advances every animator and points its sprite at the chosen
// texture. The ladder flag only counts while the entity cannot jump.
func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimatorComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, anim *component.Animator, vel *component.Velocity) {
		onLadder := false
		if c, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
			onLadder = c.OnLadder && !c.CanJump
		}
		*anim = SelectAnimation(*anim, vel.X, vel.Y, onLadder)

		sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			return
		}
		if set, ok := ecs.Get(w, e, component.AnimationSetComponent.Kind()); ok {
			if tex, ok := set.Textures[anim.Visual]; ok {
				sprite.Texture = tex
			}
		}
		sprite.FlipX = Mirrored(*anim)
	})
}
