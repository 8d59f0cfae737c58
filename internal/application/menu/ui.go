package menu

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	colorPanel  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	colorButton = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	colorHover  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}
	colorText   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type button struct {
	label   string
	onClick func()
}

func newMainMenuUI(m *Manager) *ebitenui.UI {
	return newMenuUI("levelkeeper", []button{
		{"Start", m.onStart},
		{"Quit", m.onQuit},
	})
}

func newPauseMenuUI(m *Manager) *ebitenui.UI {
	return newMenuUI("Paused", []button{
		{"Resume", m.onResume},
		{"Restart", m.onRestart},
		{"Quit", m.onQuit},
	})
}

// newMenuUI builds a centered panel with a title and a column of buttons.
// Buttons use colored nine-slices and the built-in basic font, so no theme
// assets need to be loaded.
func newMenuUI(title string, buttons []button) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(colorPanel)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(colorButton),
		Hover:   imageui.NewNineSliceColor(colorHover),
		Pressed: imageui.NewNineSliceColor(colorButton),
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	btnTextColor := &widget.ButtonTextColor{Idle: colorText}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &face, colorText),
		widget.TextOpts.WidgetOpts(centered),
	))

	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
