package system

import (
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/prefabs"
)

var bounceCases = []struct {
	name string
	x    float64
	vx   float64
	want float64
}{
	{"inside_moving_right", 100, 2, 2},
	{"inside_moving_left", 100, -2, -2},
	{"past_right_moving_right", 195, 2, -2},
	{"past_right_moving_left", 195, -2, -2},
	{"past_left_moving_left", 45, -2, 2},
	{"past_left_moving_right", 45, 2, 2},
}

func TestBounce(t *testing.T) {
	for _, c := range bounceCases {
		t.Run(c.name, func(t *testing.T) {
			if got := Bounce(c.x, 10, c.vx, 50, 200); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}

	if got := Bounce(5000, 10, 2, 0, 0); got != 2 {
		t.Fatalf("open boundaries should never bounce, got %v", got)
	}
}

func TestPatrolScriptMatchesBounce(t *testing.T) {
	ps, err := NewPatrolSystem("patrol.tengo")
	if err != nil {
		t.Fatalf("NewPatrolSystem: %v", err)
	}
	for _, c := range bounceCases {
		t.Run(c.name, func(t *testing.T) {
			if got := ps.next(0, c.x, 10, c.vx, 50, 200); got != c.want {
				t.Fatalf("script returned %v, want %v", got, c.want)
			}
		})
	}
	if ps.failed {
		t.Fatalf("script should not have failed")
	}
}

func TestCompilePatrolScriptRequiresNext(t *testing.T) {
	if _, err := CompilePatrolScript([]byte(`other := vx`)); err == nil {
		t.Fatalf("expected an error for a script without next")
	}
	if _, err := CompilePatrolScript([]byte(`next := `)); err == nil {
		t.Fatalf("expected a compile error")
	}
}

func TestPatrolSystemReversesAtBoundary(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: 195}))
	mustAdd(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: 2}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyKinematic, Width: 20, Height: 10}))
	mustAdd(t, ecs.Add(w, e, component.PatrolComponent.Kind(), &component.Patrol{BoundaryLeft: 50, BoundaryRight: 200, Speed: 2}))

	ps, err := NewPatrolSystem("")
	if err != nil {
		t.Fatalf("NewPatrolSystem: %v", err)
	}
	ps.Update(w)

	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	if vel.X != -2 {
		t.Fatalf("expected reversal to -2, got %v", vel.X)
	}
}

func TestPatrolScriptMissing(t *testing.T) {
	dir := t.TempDir()
	prev := prefabs.DiskRoot
	prefabs.DiskRoot = dir
	t.Cleanup(func() { prefabs.DiskRoot = prev })

	if _, err := NewPatrolSystem("missing.tengo"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}
