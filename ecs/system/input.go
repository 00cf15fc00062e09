package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ApplyKey records a press or release. Releasing up clears the jump latch.
func ApplyKey(in *component.Input, key component.Key, pressed bool) {
	if in == nil {
		return
	}
	switch key {
	case component.KeyUp:
		in.Up = pressed
		if !pressed {
			in.JumpNeedsReset = false
		}
	case component.KeyDown:
		in.Down = pressed
	case component.KeyLeft:
		in.Left = pressed
	case component.KeyRight:
		in.Right = pressed
	}
}

// ResolveVelocity derives the intended velocity from held keys and the
// current contacts. It returns true when a jump impulse was applied.
// Calling it again with the same input never jumps twice.
func ResolveVelocity(in *component.Input, vel *component.Velocity, contacts component.Contacts, p component.Player) bool {
	if in == nil || vel == nil {
		return false
	}

	jumped := false
	switch {
	case in.Up && !in.Down:
		if contacts.OnLadder {
			vel.Y = p.ClimbSpeed
		} else if contacts.CanJump && !in.JumpNeedsReset {
			vel.Y = p.JumpSpeed
			in.JumpNeedsReset = true
			jumped = true
		}
	case in.Down && !in.Up:
		if contacts.OnLadder {
			vel.Y = -p.ClimbSpeed
		}
	}
	if contacts.OnLadder && in.Up == in.Down {
		vel.Y = 0
	}

	switch {
	case in.Right && !in.Left:
		vel.X = p.MoveSpeed
	case in.Left && !in.Right:
		vel.X = -p.MoveSpeed
	default:
		vel.X = 0
	}
	return jumped
}

// KeyEvent is one press or release delivered by the host.
type KeyEvent struct {
	Key     component.Key
	Pressed bool
}

// InputSystem applies queued key events to every Input and re-resolves
// velocity, queueing the jump cue when a jump fires.
type InputSystem struct {
	pending ecs.Queue[KeyEvent]
}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Push queues an event for the next Update.
func (s *InputSystem) Push(ev KeyEvent) {
	if s == nil || ev.Key == component.KeyNone {
		return
	}
	s.pending.Push(ev)
}

// Clear drops queued events and releases every key.
func (s *InputSystem) Clear(w *ecs.World) {
	if s == nil {
		return
	}
	s.pending.Clear()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		*in = component.Input{}
	})
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	events := s.pending.Drain()

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		for _, ev := range events {
			ApplyKey(in, ev.Key, ev.Pressed)
			s.resolve(w, e, in)
		}
	})
}

// Resolve recomputes velocity for every controllable entity without
// applying new key events.
func (s *InputSystem) Resolve(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, in *component.Input) {
		s.resolve(w, e, in)
	})
}

func (s *InputSystem) resolve(w *ecs.World, e ecs.Entity, in *component.Input) {
	vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return
	}
	var contacts component.Contacts
	if c, ok := ecs.Get(w, e, component.ContactsComponent.Kind()); ok {
		contacts = *c
	}
	var tuning component.Player
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		tuning = *p
	}
	if ResolveVelocity(in, vel, contacts, tuning) {
		PlayCue(w, e, common.CueJump)
	}
}
