package ui

import (
	"fmt"
	"sync"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"voxbar/internal/i18n"
	"voxbar/internal/session"
	"voxbar/internal/shortcut"
)

// MainTitle is the title of the main window.
const MainTitle = "Voxbar"

// MainView shows the shortcut state and the paste and hide controls.
type MainView struct {
	palette Palette
	th      *material.Theme

	mu       sync.Mutex
	status   string
	statuses []shortcut.Status

	pasteBtn widget.Clickable
	hideBtn  widget.Clickable
	onPaste  func()
	onHide   func()
}

// NewMainView creates the main view. onPaste and onHide run on their own
// goroutine when the buttons are clicked.
func NewMainView(p Palette, onPaste, onHide func()) *MainView {
	return &MainView{
		palette: p,
		th:      newTheme(p),
		status:  i18n.T("main_status_idle"),
		onPaste: onPaste,
		onHide:  onHide,
	}
}

// Apply updates the status line from a session event.
func (v *MainView) Apply(ev session.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch ev.Action {
	case shortcut.PushToTalkStart:
		v.status = i18n.T("main_status_talking")
	case shortcut.PushToTalkStop:
		v.status = i18n.T("main_status_idle")
	case shortcut.TriggerPaste:
		v.status = i18n.T("main_status_pasted")
	}
}

// SetStatuses replaces the registration state shown for each binding.
func (v *MainView) SetStatuses(statuses []shortcut.Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.statuses = append([]shortcut.Status(nil), statuses...)
}

// Status returns the current status line.
func (v *MainView) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Layout draws the view.
func (v *MainView) Layout(gtx layout.Context) layout.Dimensions {
	if v.pasteBtn.Clicked(gtx) && v.onPaste != nil {
		go v.onPaste()
	}
	if v.hideBtn.Clicked(gtx) && v.onHide != nil {
		go v.onHide()
	}

	v.mu.Lock()
	status := v.status
	lines := shortcutLines(v.statuses)
	v.mu.Unlock()

	fill(gtx, v.palette.Background)

	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.H6(v.th, i18n.T("main_title"))
				lbl.Font.Weight = font.Bold
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body1(v.th, status)
				lbl.Color = v.palette.Accent
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(v.th, i18n.T("main_shortcuts"))
				lbl.Color = v.palette.TextDim
				return lbl.Layout(gtx)
			}),
		}
		for _, line := range lines {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(v.th, line.text)
				if line.inert {
					lbl.Color = v.palette.Error
				}
				return lbl.Layout(gtx)
			}))
		}
		children = append(children,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(v.layoutButtons),
		)
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

func (v *MainView) layoutButtons(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceStart}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			btn := material.Button(v.th, &v.hideBtn, i18n.T("main_hide"))
			btn.Background = v.palette.Panel
			return btn.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(v.th, &v.pasteBtn, i18n.T("main_paste")).Layout(gtx)
		}),
	)
}

type shortcutLine struct {
	text  string
	inert bool
}

func shortcutLines(statuses []shortcut.Status) []shortcutLine {
	lines := make([]shortcutLine, 0, len(statuses))
	for _, st := range statuses {
		key := "main_shortcut_press"
		if st.Binding.Mode == shortcut.Hold {
			key = "main_shortcut_hold"
		}
		line := shortcutLine{text: fmt.Sprintf(i18n.T(key), st.Binding.Combination)}
		if !st.Active {
			line.text += " " + i18n.T("main_shortcut_inert")
			line.inert = true
		}
		lines = append(lines, line)
	}
	return lines
}
