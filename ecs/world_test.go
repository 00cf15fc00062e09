package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/platformer/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should be dead after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should report false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities left, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestWorldRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected the slot to be reused")
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("components must not leak into a reused slot")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for a stale handle, got %v", err)
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle should not read components")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	hi := component.NewComponent[int]()
	hs := component.NewComponent[string]()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int",
			setup: func() error { return Add(w, e1, hi.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hi.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, hi.Kind()) },
		},
		{
			name: "write_through_pointer",
			setup: func() error {
				if err := Add(w, e2, hi.Kind(), intPtr(1)); err != nil {
					return err
				}
				v, _ := Get(w, e2, hi.Kind())
				*v = 7
				return nil
			},
			check: func(t *testing.T) {
				if v, _ := Get(w, e2, hi.Kind()); *v != 7 {
					t.Fatalf("expected 7 after write, got %d", *v)
				}
			},
			teardown: func() bool { return Remove(w, e2, hi.Kind()) },
		},
		{
			name: "replace_value",
			setup: func() error {
				if err := Add(w, e1, hs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e1, hs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if v, _ := Get(w, e1, hs.Kind()); *v != "b" {
					t.Fatalf("expected replaced value b, got %q", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, hs.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil_value", Add(w, e, h.Kind(), nil), component.ErrNilComponent},
		{"zero_kind", Add(w, e, component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind},
		{"nil_world", Add(nil, e, h.Kind(), intPtr(1)), component.ErrEntityNotAlive},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, c.err)
			}
		})
	}
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited++
		if *v%2 == 0 {
			DestroyEntity(w, e)
		}
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	left := 0
	ForEach(w, h.Kind(), func(Entity, *int) { left++ })
	if left != 2 {
		t.Fatalf("expected 2 survivors, got %d", left)
	}
}

func TestForEachJoins(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	adds := []struct {
		e    Entity
		kind component.ComponentKind[int]
	}{
		{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb}, {e3, kc},
	}
	for _, a := range adds {
		if err := Add(w, a.e, a.kind, intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var two []Entity
	ForEach2(w, kb, kc, func(e Entity, _, _ *int) { two = append(two, e) })
	if len(two) != 2 {
		t.Fatalf("expected e2 and e3 in ForEach2, got %v", two)
	}

	var three []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	if len(three) != 1 || three[0] != e2 {
		t.Fatalf("expected only e2 in ForEach3, got %v", three)
	}

	DestroyEntity(w, e2)
	three = three[:0]
	ForEach3(w, ka, kb, kc, func(e Entity, _, _, _ *int) { three = append(three, e) })
	if len(three) != 0 {
		t.Fatalf("dead entities must not be visited, got %v", three)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()
	if _, ok := First(w, h.Kind()); ok {
		t.Fatalf("empty world should have no first entity")
	}
	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), stringPtr("cam")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	got, ok := First(w, h.Kind())
	if !ok || got != e {
		t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
	}
}
