package system

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var testTuning = component.Player{MoveSpeed: 5, JumpSpeed: 8, ClimbSpeed: 5, JumpProbe: 10}

func TestApplyKey(t *testing.T) {
	in := &component.Input{}
	ApplyKey(in, component.KeyUp, true)
	ApplyKey(in, component.KeyLeft, true)
	if !in.Up || !in.Left || in.Down || in.Right {
		t.Fatalf("unexpected state after presses: %+v", *in)
	}

	in.JumpNeedsReset = true
	ApplyKey(in, component.KeyDown, false)
	if !in.JumpNeedsReset {
		t.Fatalf("releasing down must not clear the jump latch")
	}
	ApplyKey(in, component.KeyUp, false)
	if in.Up || in.JumpNeedsReset {
		t.Fatalf("releasing up must clear up and the jump latch: %+v", *in)
	}
}

func TestResolveVelocity(t *testing.T) {
	ground := component.Contacts{CanJump: true}
	ladder := component.Contacts{OnLadder: true}
	air := component.Contacts{}

	cases := []struct {
		name       string
		in         component.Input
		contacts   component.Contacts
		startY     float64
		wantX      float64
		wantY      float64
		wantJumped bool
		wantLatch  bool
	}{
		{"right_only", component.Input{Right: true}, ground, 0, 5, 0, false, false},
		{"left_only", component.Input{Left: true}, ground, 0, -5, 0, false, false},
		{"both_horizontal", component.Input{Left: true, Right: true}, ground, 0, 0, 0, false, false},
		{"jump_from_ground", component.Input{Up: true}, ground, 0, 0, 8, true, true},
		{"jump_latched", component.Input{Up: true, JumpNeedsReset: true}, ground, 0, 0, 0, false, true},
		{"jump_in_air_keeps_dy", component.Input{Up: true}, air, -3, 0, -3, false, false},
		{"up_and_down_off_ladder", component.Input{Up: true, Down: true}, ground, 2, 0, 2, false, false},
		{"climb_up", component.Input{Up: true}, ladder, 0, 0, 5, false, false},
		{"climb_down", component.Input{Down: true}, ladder, 0, 0, -5, false, false},
		{"ladder_both", component.Input{Up: true, Down: true}, ladder, 3, 0, 0, false, false},
		{"ladder_neither", component.Input{}, ladder, -4, 0, 0, false, false},
		{"down_off_ladder", component.Input{Down: true}, air, -1, 0, -1, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := c.in
			vel := &component.Velocity{Y: c.startY}
			jumped := ResolveVelocity(&in, vel, c.contacts, testTuning)
			if vel.X != c.wantX || vel.Y != c.wantY {
				t.Fatalf("expected (%v,%v), got (%v,%v)", c.wantX, c.wantY, vel.X, vel.Y)
			}
			if jumped != c.wantJumped {
				t.Fatalf("expected jumped=%v", c.wantJumped)
			}
			if in.JumpNeedsReset != c.wantLatch {
				t.Fatalf("expected latch=%v", c.wantLatch)
			}
		})
	}
}

func TestResolveVelocityIdempotent(t *testing.T) {
	in := &component.Input{Up: true, Right: true}
	vel := &component.Velocity{}
	contacts := component.Contacts{CanJump: true}

	if !ResolveVelocity(in, vel, contacts, testTuning) {
		t.Fatalf("first resolve should jump")
	}
	first := *vel
	if ResolveVelocity(in, vel, contacts, testTuning) {
		t.Fatalf("second resolve with the key still held must not jump")
	}
	if *vel != first {
		t.Fatalf("velocity changed on repeat: %+v vs %+v", *vel, first)
	}

	ApplyKey(in, component.KeyUp, false)
	ApplyKey(in, component.KeyUp, true)
	if !ResolveVelocity(in, vel, contacts, testTuning) {
		t.Fatalf("release and re-press should jump again")
	}
}

func TestInputSystemQueuesJumpCue(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	mustAdd(t, ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{CanJump: true}))
	p := testTuning
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &p))
	mustAdd(t, ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{
		Names: []string{"jump", "coin"},
		Play:  make([]bool, 2),
	}))

	s := NewInputSystem()
	s.Push(KeyEvent{Key: component.KeyUp, Pressed: true})
	s.Push(KeyEvent{Key: component.KeyRight, Pressed: true})
	s.Update(w)

	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if vel.X != 5 || vel.Y != 8 {
		t.Fatalf("expected (5,8), got (%v,%v)", vel.X, vel.Y)
	}
	cues := PendingCues(w, e)
	if len(cues) != 1 || cues[0] != "jump" {
		t.Fatalf("expected only the jump cue, got %v", cues)
	}

	s.Clear(w)
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	if *in != (component.Input{}) {
		t.Fatalf("Clear should release every key, got %+v", *in)
	}
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}
