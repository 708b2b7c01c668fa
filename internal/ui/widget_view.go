package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"voxbar/internal/i18n"
	"voxbar/internal/session"
	"voxbar/internal/shortcut"
)

// WidgetTitle is the title of the floating widget.
const WidgetTitle = "Voxbar Widget"

// WidgetRefresh is the redraw interval of the widget animations.
const WidgetRefresh = 33 * time.Millisecond

// WidgetView shows whether push-to-talk is held and for how long.
type WidgetView struct {
	palette Palette
	th      *material.Theme
	hint    string
	now     func() time.Time

	mu        sync.Mutex
	recording bool
	since     time.Time
}

// NewWidgetView creates the widget view. hint names the hold combination.
func NewWidgetView(p Palette, hint string) *WidgetView {
	return &WidgetView{
		palette: p,
		th:      newTheme(p),
		hint:    hint,
		now:     time.Now,
	}
}

// Apply tracks push-to-talk from a session event.
func (v *WidgetView) Apply(ev session.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch ev.Action {
	case shortcut.PushToTalkStart:
		v.recording = true
		v.since = ev.At
	case shortcut.PushToTalkStop:
		v.recording = false
	}
}

// Recording reports whether push-to-talk is held and since when.
func (v *WidgetView) Recording() (bool, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recording, v.since
}

// Layout draws the view.
func (v *WidgetView) Layout(gtx layout.Context) layout.Dimensions {
	recording, since := v.Recording()
	fill(gtx, v.palette.Background)

	layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if !recording {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(v.th, fmt.Sprintf(i18n.T("widget_idle"), v.hint))
				lbl.Color = v.palette.TextDim
				return lbl.Layout(gtx)
			})
		}
		elapsed := v.now().Sub(since)
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return drawRecordingDot(gtx, elapsed, v.palette.Recording)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Label(v.th, unit.Sp(14), i18n.T("widget_recording"))
				lbl.Font.Weight = font.Medium
				return lbl.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return drawTimerBadge(gtx, v.th, elapsed, v.palette.Panel)
			}),
		)
	})
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// drawRecordingDot draws a pulsing recording indicator.
func drawRecordingDot(gtx layout.Context, elapsed time.Duration, col color.NRGBA) layout.Dimensions {
	size := gtx.Dp(unit.Dp(10))

	pulse := float32(math.Sin(float64(elapsed.Milliseconds())/200.0)*0.3 + 0.7)
	col.A = uint8(float32(col.A) * pulse)

	circle := clip.Ellipse{Max: image.Pt(size, size)}
	paint.FillShape(gtx.Ops, col, circle.Op(gtx.Ops))

	return layout.Dimensions{Size: image.Pt(size, size)}
}

// drawTimerBadge draws the elapsed time in a badge.
func drawTimerBadge(gtx layout.Context, th *material.Theme, elapsed time.Duration, bg color.NRGBA) layout.Dimensions {
	macro := op.Record(gtx.Ops)
	dims := layout.Inset{
		Top: unit.Dp(4), Bottom: unit.Dp(4),
		Left: unit.Dp(10), Right: unit.Dp(10),
	}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Label(th, unit.Sp(13), formatElapsed(elapsed))
		lbl.Font.Weight = font.Bold
		return lbl.Layout(gtx)
	})
	call := macro.Stop()

	rr := gtx.Dp(unit.Dp(6))
	rect := clip.RRect{
		Rect: image.Rectangle{Max: dims.Size},
		NE:   rr, NW: rr, SE: rr, SW: rr,
	}
	paint.FillShape(gtx.Ops, bg, rect.Op(gtx.Ops))

	call.Add(gtx.Ops)
	return dims
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
