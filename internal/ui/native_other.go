//go:build !linux

package ui

import (
	"errors"

	"gioui.org/app"
	"gioui.org/io/system"

	"voxbar/internal/window"
)

var errPlacementUnsupported = errors.New("ui: window placement unsupported on this platform")

// gioWindow maps visibility onto window modes and actions gio supports.
type gioWindow struct {
	w *app.Window
}

func newNative(_ string, w *app.Window) nativeWindow {
	return gioWindow{w: w}
}

func (g gioWindow) show() error {
	g.w.Option(app.Windowed.Option())
	g.w.Perform(system.ActionRaise)
	return nil
}

func (g gioWindow) hide() error {
	g.w.Perform(system.ActionMinimize)
	return nil
}

func (g gioWindow) focus() error {
	g.w.Perform(system.ActionRaise)
	return nil
}

func (gioWindow) move(int, int) error { return errPlacementUnsupported }

func (gioWindow) display() (window.Display, bool) { return window.Display{}, false }
