package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// Viewport maps y-up world coordinates onto a y-down screen. X and Y are the
// world position of the screen's bottom-left corner.
type Viewport struct {
	X, Y float64
	W, H float64
	Zoom float64
}

// CurrentViewport reads the first camera in w.
func CurrentViewport(w *ecs.World) (Viewport, bool) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return Viewport{}, false
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	vp := Viewport{W: cam.ViewportW, H: cam.ViewportH, Zoom: cam.Zoom}
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		vp.X, vp.Y = t.X, t.Y
	}
	return vp, true
}

func (v Viewport) ToScreen(x, y float64) (float64, float64) {
	return (x - v.X) * v.Zoom, v.H - (y-v.Y)*v.Zoom
}

// Rect returns the screen-space top-left corner and size of a world box
// centered on (cx, cy).
func (v Viewport) Rect(cx, cy, w, h float64) (left, top, sw, sh float64) {
	left, top = v.ToScreen(cx-w/2, cy+h/2)
	return left, top, w * v.Zoom, h * v.Zoom
}

// Visible reports whether the world box touches the screen.
func (v Viewport) Visible(cx, cy, w, h float64) bool {
	left, top, sw, sh := v.Rect(cx, cy, w, h)
	return left+sw >= 0 && left <= v.W && top+sh >= 0 && top <= v.H
}

// SpriteSize resolves the world size of a sprite whose texture is texW by
// texH pixels.
func SpriteSize(s component.Sprite, t component.Transform, texW, texH float64) (float64, float64) {
	w, h := s.Width, s.Height
	if w == 0 {
		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		w = texW * sx
	}
	if h == 0 {
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		h = texH * sy
	}
	return w, h
}

// BackgroundTexture picks the backdrop for the player's current height.
func BackgroundTexture(w *ecs.World) string {
	bgEntity, ok := ecs.First(w, component.BackgroundComponent.Kind())
	if !ok {
		return ""
	}
	bg, _ := ecs.Get(w, bgEntity, component.BackgroundComponent.Kind())
	if bg.Alt == "" {
		return bg.Texture
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return bg.Texture
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok && t.Y < bg.AltBelowY {
		return bg.Alt
	}
	return bg.Texture
}
