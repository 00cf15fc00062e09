package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	// velocities below this are solver noise and snap to zero
	velocityEpsilon = 1e-3
	// height of the strip under the feet used to find a carrying platform
	carryProbe = 2.0
)

// PhysicsConfig tunes the Chipmunk space.
type PhysicsConfig struct {
	Gravity          float64
	MaxFallSpeed     float64
	SpatialHashDim   float64
	SpatialHashCount int
}

// DefaultPhysicsConfig matches the values shipped in world.yaml.
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:          common.Gravity,
		MaxFallSpeed:     20,
		SpatialHashDim:   common.TileSize * common.TileScaling,
		SpatialHashCount: 4000,
	}
}

// PhysicsSystem owns the cp space. Entities with a PhysicsBody get a body
// the first time the system sees them; Transform is the source of truth for
// static geometry, and is written back from the body for everything else.
type PhysicsSystem struct {
	cfg   PhysicsConfig
	space *cp.Space

	entities map[ecs.Entity]*bodyInfo
	owners   map[*cp.Shape]ecs.Entity

	bounds      component.LevelBounds
	boundShapes []*cp.Shape
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	kind     component.BodyKind
	floating bool
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	ps := &PhysicsSystem{cfg: cfg}
	ps.Reset()
	return ps
}

// Reset throws away the space and every body in it. Used when a level is
// rebuilt.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: 0, Y: ps.cfg.Gravity})
	if ps.cfg.SpatialHashDim > 0 && ps.cfg.SpatialHashCount > 0 {
		space.UseSpatialHash(ps.cfg.SpatialHashDim, ps.cfg.SpatialHashCount)
	}
	ps.space = space
	ps.entities = make(map[ecs.Entity]*bodyInfo)
	ps.owners = make(map[*cp.Shape]ecs.Entity)
	ps.bounds = component.LevelBounds{}
	ps.boundShapes = nil
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Update advances the simulation by one frame and refreshes Contacts.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.pushVelocities(w)
	ps.markFloating(w)

	ps.space.Step(1.0)

	ps.syncTransforms(w)
	ps.carryRiders(w)
	ps.RefreshContacts(w)
}

// Sync creates bodies for new entities and refreshes Contacts without
// stepping the simulation.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.RefreshContacts(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			ps.removeInfo(e, info)
		}
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		if pb.Width <= 0 || pb.Height <= 0 {
			return
		}
		ps.addBody(e, pb, t)
	})
}

func (ps *PhysicsSystem) addBody(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	info := &bodyInfo{kind: pb.Kind}
	hw, hh := pb.Width/2, pb.Height/2

	var body *cp.Body
	var shape *cp.Shape
	switch pb.Kind {
	case component.BodyStatic:
		body = ps.space.StaticBody
		shape = cp.NewBox2(body, cp.BB{L: t.X - hw, B: t.Y - hh, R: t.X + hw, T: t.Y + hh}, 0)
	case component.BodyKinematic:
		body = ps.space.AddBody(cp.NewKinematicBody())
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	default:
		body = ps.space.AddBody(cp.NewBody(1, math.Inf(1)))
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			if info.floating {
				gravity = cp.Vector{}
			}
			cp.BodyUpdateVelocity(b, gravity, damping, dt)
			if v := b.Velocity(); ps.cfg.MaxFallSpeed > 0 && v.Y < -ps.cfg.MaxFallSpeed {
				b.SetVelocity(v.X, -ps.cfg.MaxFallSpeed)
			}
		})
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	}

	shape.SetSensor(pb.Sensor)
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, layerOrSolid(pb.Layer), cp.ALL_CATEGORIES))
	ps.space.AddShape(shape)

	info.body = body
	info.shape = shape
	pb.Body = body
	pb.Shape = shape
	ps.entities[e] = info
	ps.owners[shape] = e
}

func layerOrSolid(layer uint) uint {
	if layer == 0 {
		return component.LayerSolid
	}
	return layer
}

// Remove drops e's body and shape from the space. Safe to call twice.
func (ps *PhysicsSystem) Remove(e ecs.Entity) {
	if ps == nil {
		return
	}
	if info, ok := ps.entities[e]; ok {
		ps.removeInfo(e, info)
	}
}

func (ps *PhysicsSystem) removeInfo(e ecs.Entity, info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.owners, info.shape)
	}
	if info.body != nil && info.body != ps.space.StaticBody {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.entities, e)
}

// syncWorldBounds walls off the left, right and bottom edges of the level.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	ent, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, ent, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 || *bounds == ps.bounds {
		return
	}
	for _, s := range ps.boundShapes {
		ps.space.RemoveShape(s)
	}
	ps.boundShapes = ps.boundShapes[:0]

	static := ps.space.StaticBody
	top := bounds.Height * 4
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: 0, Y: top}},
		{{X: bounds.Width, Y: 0}, {X: bounds.Width, Y: top}},
		{{X: 0, Y: 0}, {X: bounds.Width, Y: 0}},
	}
	for _, seg := range segments {
		s := cp.NewSegment(static, seg[0], seg[1], 0)
		s.SetFriction(0)
		s.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, component.LayerSolid, cp.ALL_CATEGORIES))
		ps.space.AddShape(s)
		ps.boundShapes = append(ps.boundShapes, s)
	}
	ps.bounds = *bounds
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, _ *component.PhysicsBody, v *component.Velocity) {
		info, ok := ps.entities[e]
		if !ok || info.kind == component.BodyStatic {
			return
		}
		info.body.SetVelocity(v.X, v.Y)
	})
}

// markFloating turns gravity off for bodies touching a ladder.
func (ps *PhysicsSystem) markFloating(w *ecs.World) {
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(e ecs.Entity, _ *component.Contacts) {
		info, ok := ps.entities[e]
		if !ok {
			return
		}
		info.floating = len(ps.Overlaps(w, e, component.LayerLadder)) > 0
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.kind == component.BodyStatic {
			return
		}
		if info.kind == component.BodyDynamic {
			ps.clampToBounds(info.body, pb.Width/2)
		}
		pos := info.body.Position()
		t.X, t.Y = pos.X, pos.Y
		if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vel := info.body.Velocity()
			v.X = snap(vel.X)
			v.Y = snap(vel.Y)
		}
	})
}

// clampToBounds keeps a body of half width hw between the side walls.
func (ps *PhysicsSystem) clampToBounds(body *cp.Body, hw float64) {
	if ps.bounds.Width <= 0 {
		return
	}
	pos, vel := body.Position(), body.Velocity()
	switch {
	case pos.X < hw:
		body.SetPosition(cp.Vector{X: hw, Y: pos.Y})
		if vel.X < 0 {
			body.SetVelocity(0, vel.Y)
		}
	case pos.X > ps.bounds.Width-hw:
		body.SetPosition(cp.Vector{X: ps.bounds.Width - hw, Y: pos.Y})
		if vel.X > 0 {
			body.SetVelocity(0, vel.Y)
		}
	}
}

func snap(v float64) float64 {
	if math.Abs(v) < velocityEpsilon {
		return 0
	}
	return v
}

// carryRiders moves dynamic bodies standing on a kinematic platform along
// with it.
func (ps *PhysicsSystem) carryRiders(w *ecs.World) {
	ecs.ForEach2(w, component.ContactsComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Contacts, t *component.Transform) {
		info, ok := ps.entities[e]
		if !ok || info.kind != component.BodyDynamic {
			return
		}
		for _, other := range ps.below(w, e, carryProbe, component.LayerPlatform) {
			support, ok := ps.entities[other]
			if !ok || support.kind != component.BodyKinematic {
				continue
			}
			dx := support.body.Velocity().X
			if dx == 0 {
				continue
			}
			t.X += dx
			info.body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
			return
		}
	})
}

// RefreshContacts recomputes OnLadder and CanJump for every entity carrying
// Contacts. CanJump probes Player.JumpProbe below the feet.
func (ps *PhysicsSystem) RefreshContacts(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.ContactsComponent.Kind(), func(e ecs.Entity, c *component.Contacts) {
		probe := 5.0
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.JumpProbe > 0 {
			probe = p.JumpProbe
		}
		c.OnLadder = len(ps.Overlaps(w, e, component.LayerLadder)) > 0
		c.CanJump = len(ps.below(w, e, probe, component.LayerSolid|component.LayerPlatform)) > 0
	})
}

// Overlaps returns the entities whose shapes intersect e's box and belong to
// one of the layers in mask, sorted for deterministic processing.
func (ps *PhysicsSystem) Overlaps(w *ecs.World, e ecs.Entity, mask uint) []ecs.Entity {
	bb, ok := entityBB(w, e)
	if !ok {
		return nil
	}
	return ps.query(e, bb, mask)
}

// below queries a strip of the given depth under e's feet.
func (ps *PhysicsSystem) below(w *ecs.World, e ecs.Entity, depth float64, mask uint) []ecs.Entity {
	bb, ok := entityBB(w, e)
	if !ok {
		return nil
	}
	return ps.query(e, cp.BB{L: bb.L + 1, B: bb.B - depth, R: bb.R - 1, T: bb.B}, mask)
}

func (ps *PhysicsSystem) query(self ecs.Entity, bb cp.BB, mask uint) []ecs.Entity {
	if ps == nil || ps.space == nil {
		return nil
	}
	seen := make(map[ecs.Entity]struct{})
	var out []ecs.Entity
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, mask)
	ps.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		e, ok := ps.owners[shape]
		if !ok || e == self {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func entityBB(w *ecs.World, e ecs.Entity) (cp.BB, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}, false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Width <= 0 || pb.Height <= 0 {
		return cp.BB{}, false
	}
	hw, hh := pb.Width/2, pb.Height/2
	return cp.BB{L: t.X - hw, B: t.Y - hh, R: t.X + hw, T: t.Y + hh}, true
}

// SetPosition moves e and its body, keeping velocity.
func (ps *PhysicsSystem) SetPosition(w *ecs.World, e ecs.Entity, x, y float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
	if ps == nil {
		return
	}
	if info, ok := ps.entities[e]; ok && info.kind != component.BodyStatic {
		info.body.SetPosition(cp.Vector{X: x, Y: y})
	}
}
