package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/prefabs"
)

// hazard hitboxes are shrunk by this much on each side of the tile
const hazardInset = 2.0

// LoadLevelToWorld creates every entity of a level: bounds and background,
// tiles per layer, the merged solid geometry of the Platforms layer, and the
// patrolling movers.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, spec *prefabs.WorldSpec) error {
	if lvl == nil || spec == nil {
		return fmt.Errorf("level: nil level or world spec")
	}

	width, height := lvl.WorldSize()
	b := newBuilder(w, "level bounds")
	add(b, "bounds", component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: width, Height: height})
	add(b, "background", component.BackgroundComponent.Kind(), &component.Background{
		Texture:   lvl.Background,
		Alt:       lvl.BackgroundAlt,
		AltBelowY: lvl.BackgroundAltBelowY,
	})
	if _, err := b.done(); err != nil {
		return err
	}

	for _, layer := range lvl.Layers {
		if err := addLayer(w, lvl, layer, spec); err != nil {
			return err
		}
	}
	if err := addSolidRuns(w, lvl); err != nil {
		return err
	}

	for i, ent := range lvl.Entities {
		if _, err := NewMover(w, ent, spec); err != nil {
			return fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
		}
	}
	return nil
}

func addLayer(w *ecs.World, lvl *levels.Level, layer levels.Layer, spec *prefabs.WorldSpec) error {
	order := spec.LayerOrder[layer.Name]
	for _, tile := range lvl.Tiles(layer.Name) {
		b := newBuilder(w, "tile "+layer.Name)
		add(b, "transform", component.TransformComponent.Kind(), &component.Transform{X: tile.CenterX, Y: tile.CenterY, ScaleX: 1, ScaleY: 1})
		add(b, "render layer", component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: order})

		size := tile.Size
		switch layer.Name {
		case common.LayerCoins:
			scale := spec.CoinScale
			if scale <= 0 {
				scale = 1
			}
			size = tile.Size * scale
			add(b, "coin tag", component.CoinTagComponent.Kind(), &component.CoinTag{})
			add(b, "physics body", component.PhysicsBodyComponent.Kind(), sensorBody(component.LayerCoin, size, size))
		case common.LayerLadders:
			add(b, "ladder tag", component.LadderTagComponent.Kind(), &component.LadderTag{})
			add(b, "physics body", component.PhysicsBodyComponent.Kind(), sensorBody(component.LayerLadder, size, size))
		case common.LayerDontTouch:
			add(b, "hazard", component.HazardComponent.Kind(), &component.Hazard{Source: component.HazardDontTouch})
			inner := tile.Size - 2*hazardInset
			add(b, "physics body", component.PhysicsBodyComponent.Kind(), sensorBody(component.LayerHazard, inner, inner))
		case common.LayerTeleport:
			add(b, "teleporter", component.TeleporterComponent.Kind(), &component.Teleporter{
				TargetX: lvl.Teleport.FrontTarget.X,
				TargetY: lvl.Teleport.FrontTarget.Y,
			})
			add(b, "physics body", component.PhysicsBodyComponent.Kind(), sensorBody(component.LayerTeleport, size, size))
		case common.LayerTeleportBack:
			add(b, "teleporter", component.TeleporterComponent.Kind(), &component.Teleporter{
				TargetX: lvl.Teleport.BackTarget.X,
				TargetY: lvl.Teleport.BackTarget.Y,
				Back:    true,
			})
			add(b, "physics body", component.PhysicsBodyComponent.Kind(), sensorBody(component.LayerTeleport, size, size))
		}

		if layer.Tile != "" {
			add(b, "sprite", component.SpriteComponent.Kind(), &component.Sprite{Texture: layer.Tile, Width: size, Height: size})
		}
		if _, err := b.done(); err != nil {
			return err
		}
	}
	return nil
}

func sensorBody(layer uint, width, height float64) *component.PhysicsBody {
	return &component.PhysicsBody{
		Kind:   component.BodyStatic,
		Layer:  layer,
		Sensor: true,
		Width:  width,
		Height: height,
	}
}

// SolidRun is a horizontal stretch of adjacent platform tiles in one row.
type SolidRun struct {
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// SolidRuns merges the Platforms layer row by row so the player slides
// along floors without catching on tile seams.
func SolidRuns(lvl *levels.Level) []SolidRun {
	tiles := lvl.Tiles(common.LayerPlatforms)
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].CenterY != tiles[j].CenterY {
			return tiles[i].CenterY < tiles[j].CenterY
		}
		return tiles[i].CenterX < tiles[j].CenterX
	})

	var runs []SolidRun
	for i := 0; i < len(tiles); {
		start := tiles[i]
		end := start
		j := i + 1
		for j < len(tiles) && tiles[j].CenterY == start.CenterY && math.Abs(tiles[j].CenterX-end.CenterX-start.Size) < 1e-6 {
			end = tiles[j]
			j++
		}
		left := start.CenterX - start.Size/2
		right := end.CenterX + end.Size/2
		runs = append(runs, SolidRun{
			CenterX: (left + right) / 2,
			CenterY: start.CenterY,
			Width:   right - left,
			Height:  start.Size,
		})
		i = j
	}
	return runs
}

func addSolidRuns(w *ecs.World, lvl *levels.Level) error {
	for _, run := range SolidRuns(lvl) {
		b := newBuilder(w, "solid")
		add(b, "transform", component.TransformComponent.Kind(), &component.Transform{X: run.CenterX, Y: run.CenterY, ScaleX: 1, ScaleY: 1})
		add(b, "physics body", component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Kind:   component.BodyStatic,
			Layer:  component.LayerSolid,
			Width:  run.Width,
			Height: run.Height,
		})
		if _, err := b.done(); err != nil {
			return err
		}
	}
	return nil
}

// NewMover builds a patrolling enemy or moving platform from level data.
func NewMover(w *ecs.World, ent levels.Entity, spec *prefabs.WorldSpec) (ecs.Entity, error) {
	mover, ok := spec.Movers[ent.Type]
	if !ok {
		return 0, fmt.Errorf("mover: unknown type %q", ent.Type)
	}

	b := newBuilder(w, ent.Type)
	add(b, "transform", component.TransformComponent.Kind(), &component.Transform{X: ent.X, Y: ent.Y, ScaleX: 1, ScaleY: 1})
	add(b, "sprite", component.SpriteComponent.Kind(), &component.Sprite{
		Texture: mover.Texture,
		Width:   mover.Collider.Width,
		Height:  mover.Collider.Height,
	})
	add(b, "render layer", component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: mover.RenderLayer.Index})
	add(b, "velocity", component.VelocityComponent.Kind(), &component.Velocity{X: ent.PropFloat("change_x", 0)})
	add(b, "patrol", component.PatrolComponent.Kind(), &component.Patrol{
		BoundaryLeft:  ent.PropFloat("boundary_left", 0),
		BoundaryRight: ent.PropFloat("boundary_right", 0),
		Speed:         ent.PropFloat("change_x", 0),
	})

	body := &component.PhysicsBody{
		Kind:   component.BodyKinematic,
		Width:  mover.Collider.Width,
		Height: mover.Collider.Height,
	}
	switch ent.Type {
	case "enemy":
		body.Layer = component.LayerHazard
		body.Sensor = true
		add(b, "hazard", component.HazardComponent.Kind(), &component.Hazard{Source: component.HazardEnemy})
	default:
		body.Layer = component.LayerPlatform
		body.Friction = 1
	}
	add(b, "physics body", component.PhysicsBodyComponent.Kind(), body)
	return b.done()
}
