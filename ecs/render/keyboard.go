package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/ecs/component"
)

// KeySink receives movement key edges.
type KeySink interface {
	PushKey(key component.Key, pressed bool)
}

var keyBindings = []struct {
	key ebiten.Key
	to  component.Key
}{
	{ebiten.KeyW, component.KeyUp},
	{ebiten.KeyArrowUp, component.KeyUp},
	{ebiten.KeyS, component.KeyDown},
	{ebiten.KeyArrowDown, component.KeyDown},
	{ebiten.KeyA, component.KeyLeft},
	{ebiten.KeyArrowLeft, component.KeyLeft},
	{ebiten.KeyD, component.KeyRight},
	{ebiten.KeyArrowRight, component.KeyRight},
}

// PollKeyboard forwards this frame's press and release edges to sink.
func PollKeyboard(sink KeySink) {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			sink.PushKey(b.to, true)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			sink.PushKey(b.to, false)
		}
	}
}
