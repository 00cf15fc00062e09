// Package render draws the ECS world, the HUD and plays audio cues with
// ebiten.
package render

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
)

type drawItem struct {
	e     ecs.Entity
	layer int
}

// WorldRenderer draws the backdrop and every sprite, lowest render layer
// first.
type WorldRenderer struct {
	textures *Textures
	logger   *log.Logger
	warned   map[string]bool
	items    []drawItem
}

func NewWorldRenderer(textures *Textures) *WorldRenderer {
	if textures == nil {
		textures = NewTextures()
	}
	return &WorldRenderer{
		textures: textures,
		logger:   common.Logger("render"),
		warned:   make(map[string]bool),
	}
}

func (r *WorldRenderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	vp, ok := system.CurrentViewport(w)
	if !ok {
		return
	}

	r.drawBackground(w, screen)

	r.items = r.items[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, _ *component.Transform, _ *component.Sprite) {
		layer := 0
		if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			layer = rl.Index
		}
		r.items = append(r.items, drawItem{e: e, layer: layer})
	})
	sort.Slice(r.items, func(i, j int) bool {
		if r.items[i].layer != r.items[j].layer {
			return r.items[i].layer < r.items[j].layer
		}
		return r.items[i].e < r.items[j].e
	})

	for _, item := range r.items {
		t, _ := ecs.Get(w, item.e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, item.e, component.SpriteComponent.Kind())
		img := r.texture(s.Texture)
		if img == nil {
			continue
		}
		texW, texH := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		width, height := system.SpriteSize(*s, *t, texW, texH)
		if !vp.Visible(t.X, t.Y, width, height) {
			continue
		}
		left, top, sw, sh := vp.Rect(t.X, t.Y, width, height)

		op := &ebiten.DrawImageOptions{}
		if s.FlipX {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(texW, 0)
		}
		op.GeoM.Scale(sw/texW, sh/texH)
		op.GeoM.Translate(left, top)
		screen.DrawImage(img, op)
	}
}

func (r *WorldRenderer) drawBackground(w *ecs.World, screen *ebiten.Image) {
	img := r.texture(system.BackgroundTexture(w))
	if img == nil {
		return
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx())/float64(img.Bounds().Dx()), float64(b.Dy())/float64(img.Bounds().Dy()))
	screen.DrawImage(img, op)
}

func (r *WorldRenderer) texture(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	img, err := r.textures.Get(key)
	if err != nil {
		if !r.warned[key] {
			r.warned[key] = true
			r.logger.Warn("missing texture", "texture", key, "error", err)
		}
		return nil
	}
	return img
}
