package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/gameplay"
	"golang.org/x/image/font/basicfont"
)

var (
	white      = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	panelColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	btnColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	btnHover   = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func centered() widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
}

func newButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	img := imageui.NewNineSliceColor(btnColor)
	hover := imageui.NewNineSliceColor(btnHover)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Hover: hover, Pressed: img}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(centered(), widget.WidgetOpts.MinSize(160, 32)),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// newPanelUI centers a vertical panel holding children in the window.
func newPanelUI(children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewMenuUI shows the title and a Start button under the instructions image.
func NewMenuUI(onStart func()) *ebitenui.UI {
	face := uiFace()
	title := widget.NewText(
		widget.TextOpts.Text(common.Title, face, white),
		widget.TextOpts.WidgetOpts(centered()),
	)
	return newPanelUI(title, newButton("Start", face, onStart))
}

// NewCompleteUI shows the final result. onCopy receives the result text.
func NewCompleteUI(totals gameplay.Totals, onCopy func(string)) *ebitenui.UI {
	face := uiFace()
	message := gameplay.CompletionMessage(totals)
	heading := widget.NewText(
		widget.TextOpts.Text("Congratulations!!!", face, white),
		widget.TextOpts.WidgetOpts(centered()),
	)
	body := widget.NewText(
		widget.TextOpts.Text(message, face, white),
		widget.TextOpts.WidgetOpts(centered()),
	)
	children := []widget.PreferredSizeLocateableWidget{heading, body}
	for i, secs := range totals.LevelTimes {
		children = append(children, widget.NewText(
			widget.TextOpts.Text(levelLine(i+1, secs), face, white),
			widget.TextOpts.WidgetOpts(centered()),
		))
	}
	if onCopy != nil {
		children = append(children, newButton("Copy result", face, func() { onCopy(message) }))
	}
	return newPanelUI(children...)
}

func levelLine(level int, secs float64) string {
	return fmt.Sprintf("Level %d: %s", level, gameplay.FormatElapsed(secs))
}
