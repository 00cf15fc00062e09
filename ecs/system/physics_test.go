package system

import (
	"math"
	"testing"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func addStatic(t *testing.T, w *ecs.World, x, y, width, height float64, layer uint, sensor bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyStatic,
		Layer:  layer,
		Sensor: sensor,
		Width:  width,
		Height: height,
	}))
	return e
}

func addTestPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	p := testTuning
	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &p))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	mustAdd(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	mustAdd(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	mustAdd(t, ecs.Add(w, e, component.ContactsComponent.Kind(), &component.Contacts{}))
	mustAdd(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyDynamic,
		Layer:  component.LayerPlayer,
		Width:  24,
		Height: 32,
	}))
	mustAdd(t, ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{
		Names: []string{"jump", "coin", "gameover", "teleport"},
		Play:  make([]bool, 4),
	}))
	return e
}

// floorWorld has a 540 wide floor whose top surface is at y = 27.
func floorWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	addStatic(t, w, 270, 13.5, 540, 27, component.LayerSolid, false)
	return w
}

func TestPhysicsPlayerLandsOnFloor(t *testing.T) {
	w := floorWorld(t)
	player := addTestPlayer(t, w, 100, 120)
	ps := NewPhysicsSystem(DefaultPhysicsConfig())

	for i := 0; i < 120; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.Y < 40 || tr.Y > 45 {
		t.Fatalf("expected the player to rest on the floor near y=43, got %v", tr.Y)
	}
	vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
	if vel.Y != 0 {
		t.Fatalf("expected resting vertical velocity 0, got %v", vel.Y)
	}
	c, _ := ecs.Get(w, player, component.ContactsComponent.Kind())
	if !c.CanJump {
		t.Fatalf("expected CanJump while standing")
	}
	if c.OnLadder {
		t.Fatalf("no ladder in this world")
	}
}

func TestPhysicsCanJumpOnlyNearGround(t *testing.T) {
	w := floorWorld(t)
	player := addTestPlayer(t, w, 100, 200)
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	ps.Sync(w)

	c, _ := ecs.Get(w, player, component.ContactsComponent.Kind())
	if c.CanJump {
		t.Fatalf("player high above the floor must not be able to jump")
	}

	ps.SetPosition(w, player, 100, 27+16+5)
	ps.RefreshContacts(w)
	if !c.CanJump {
		t.Fatalf("player within the probe distance should be able to jump")
	}
}

func TestPhysicsLadderCancelsGravity(t *testing.T) {
	w := ecs.NewWorld()
	addStatic(t, w, 100, 300, 27, 200, component.LayerLadder, true)
	player := addTestPlayer(t, w, 100, 300)
	ps := NewPhysicsSystem(DefaultPhysicsConfig())

	for i := 0; i < 30; i++ {
		ps.Update(w)
	}

	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if math.Abs(tr.Y-300) > 1e-6 {
		t.Fatalf("expected the player to hang on the ladder at y=300, got %v", tr.Y)
	}
	c, _ := ecs.Get(w, player, component.ContactsComponent.Kind())
	if !c.OnLadder {
		t.Fatalf("expected OnLadder")
	}
}

func TestPhysicsOverlapsFiltersByLayer(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)
	coin := addStatic(t, w, 105, 100, 13.5, 13.5, component.LayerCoin, true)
	hazard := addStatic(t, w, 95, 100, 23, 23, component.LayerHazard, true)
	addStatic(t, w, 400, 100, 13.5, 13.5, component.LayerCoin, true)

	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	ps.Sync(w)

	coins := ps.Overlaps(w, player, component.LayerCoin)
	if len(coins) != 1 || coins[0] != coin {
		t.Fatalf("expected only the near coin, got %v", coins)
	}
	hazards := ps.Overlaps(w, player, component.LayerHazard)
	if len(hazards) != 1 || hazards[0] != hazard {
		t.Fatalf("expected the hazard, got %v", hazards)
	}
	both := ps.Overlaps(w, player, component.LayerCoin|component.LayerHazard)
	if len(both) != 2 {
		t.Fatalf("expected two overlaps for the combined mask, got %v", both)
	}

	ps.Remove(coin)
	ps.Remove(coin)
	if got := ps.Overlaps(w, player, component.LayerCoin); len(got) != 0 {
		t.Fatalf("removed coin still reported: %v", got)
	}
}

func TestPhysicsSyncDropsDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	player := addTestPlayer(t, w, 100, 100)
	coin := addStatic(t, w, 100, 100, 13.5, 13.5, component.LayerCoin, true)
	ps := NewPhysicsSystem(DefaultPhysicsConfig())
	ps.Sync(w)

	ecs.DestroyEntity(w, coin)
	ps.Sync(w)
	if got := ps.Overlaps(w, player, component.LayerCoin); len(got) != 0 {
		t.Fatalf("destroyed coin still in the space: %v", got)
	}
}

func TestPhysicsKinematicPlatformCarriesPlayer(t *testing.T) {
	w := ecs.NewWorld()
	platform := ecs.CreateEntity(w)
	mustAdd(t, ecs.Add(w, platform, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 100}))
	mustAdd(t, ecs.Add(w, platform, component.VelocityComponent.Kind(), &component.Velocity{X: 1}))
	mustAdd(t, ecs.Add(w, platform, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyKinematic,
		Layer:  component.LayerPlatform,
		Width:  81,
		Height: 14,
	}))
	// platform top at 107, player half height 16
	player := addTestPlayer(t, w, 100, 123)
	ps := NewPhysicsSystem(DefaultPhysicsConfig())

	for i := 0; i < 20; i++ {
		ps.Update(w)
	}

	pt, _ := ecs.Get(w, platform, component.TransformComponent.Kind())
	if pt.X <= 100 {
		t.Fatalf("platform should have moved right, got x=%v", pt.X)
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tr.X <= 105 {
		t.Fatalf("player should ride the platform to the right, got x=%v", tr.X)
	}
	if tr.Y < 115 {
		t.Fatalf("player fell through the platform: y=%v", tr.Y)
	}
}

func TestPhysicsWorldBoundsStopPlayer(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		vx     float64
		check  func(x float64) bool
	}{
		{name: "left_wall", startX: 20, vx: -5, check: func(x float64) bool { return x >= 12 }},
		{name: "right_wall", startX: 520, vx: 5, check: func(x float64) bool { return x <= 528 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := floorWorld(t)
			bounds := ecs.CreateEntity(w)
			mustAdd(t, ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 540, Height: 300}))
			player := addTestPlayer(t, w, tt.startX, 44)
			ps := NewPhysicsSystem(DefaultPhysicsConfig())

			for i := 0; i < 30; i++ {
				vel, _ := ecs.Get(w, player, component.VelocityComponent.Kind())
				vel.X = tt.vx
				ps.Update(w)
			}

			tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
			if !tt.check(tr.X) {
				t.Fatalf("player walked through the wall: x=%v", tr.X)
			}
		})
	}
}
