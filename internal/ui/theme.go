package ui

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

// Palette holds the colors shared by both surfaces.
type Palette struct {
	Background color.NRGBA
	Panel      color.NRGBA
	Text       color.NRGBA
	TextDim    color.NRGBA
	Accent     color.NRGBA
	Recording  color.NRGBA
	Error      color.NRGBA
}

// DefaultPalette returns the dark palette.
func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		Panel:      color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		Text:       color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		TextDim:    color.NRGBA{R: 140, G: 140, B: 150, A: 255},
		Accent:     color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		Recording:  color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		Error:      color.NRGBA{R: 230, G: 120, B: 80, A: 255},
	}
}

func newTheme(p Palette) *material.Theme {
	th := material.NewTheme()
	th.Palette.Fg = p.Text
	th.Palette.Bg = p.Background
	th.Palette.ContrastBg = p.Accent
	th.Palette.ContrastFg = p.Text
	return th
}

func fill(gtx layout.Context, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Rect{Max: gtx.Constraints.Max}.Op())
}
