package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	hudShadowOffset = 3
	hudScale        = 2
	hudLineHeight   = 30
	hudMargin       = 10
)

// HUDState is the text shown over the level.
type HUDState struct {
	Score   int
	Deaths  int
	Elapsed string
}

func (s HUDState) Lines() []string {
	return []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Deaths: %d", s.Deaths),
		"Time: " + s.Elapsed,
	}
}

// HUD draws screen-space text with a black drop shadow.
type HUD struct {
	face text.Face
}

func NewHUD() *HUD {
	return &HUD{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *HUD) Draw(screen *ebiten.Image, s HUDState) {
	for i, line := range s.Lines() {
		y := float64(hudMargin + i*hudLineHeight)
		h.drawText(screen, line, hudMargin+hudShadowOffset, y+hudShadowOffset, colornames.Black)
		h.drawText(screen, line, hudMargin, y, colornames.White)
	}
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(hudScale, hudScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}
