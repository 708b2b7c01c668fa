//go:build linux

package ui

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"gioui.org/app"

	"voxbar/internal/window"
)

// xdoWindow drives an X11 window through xdotool, found by its title.
type xdoWindow struct {
	title string
	run   func(args ...string) ([]byte, error)

	mu sync.Mutex
	id string
}

func newNative(title string, _ *app.Window) nativeWindow {
	return &xdoWindow{title: title, run: xdotool}
}

func xdotool(args ...string) ([]byte, error) {
	out, err := exec.Command("xdotool", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("xdotool %s: %w", args[0], err)
	}
	return out, nil
}

func (w *xdoWindow) windowID() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.id != "" {
		return w.id, nil
	}
	out, err := w.run("search", "--name", "^"+w.title+"$")
	if err != nil {
		return "", err
	}
	id, ok := firstWindowID(out)
	if !ok {
		return "", fmt.Errorf("window %q: %w", w.title, window.ErrWindowNotFound)
	}
	w.id = id
	return id, nil
}

func (w *xdoWindow) do(cmd string, extra ...string) error {
	id, err := w.windowID()
	if err != nil {
		return err
	}
	_, err = w.run(append([]string{cmd, id}, extra...)...)
	return err
}

func (w *xdoWindow) show() error  { return w.do("windowmap") }
func (w *xdoWindow) hide() error  { return w.do("windowunmap") }
func (w *xdoWindow) focus() error { return w.do("windowactivate") }

func (w *xdoWindow) move(x, y int) error {
	return w.do("windowmove", strconv.Itoa(x), strconv.Itoa(y))
}

func (w *xdoWindow) display() (window.Display, bool) {
	out, err := w.run("getdisplaygeometry")
	if err != nil {
		return window.Display{}, false
	}
	width, height, err := parseGeometry(out)
	if err != nil {
		return window.Display{}, false
	}
	return window.Display{Width: width, Height: height, Scale: 1}, true
}

func firstWindowID(out []byte) (string, bool) {
	ids := strings.Fields(string(out))
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// parseGeometry parses "WIDTH HEIGHT" as printed by getdisplaygeometry.
func parseGeometry(out []byte) (width, height int, err error) {
	parts := strings.Fields(string(out))
	if len(parts) != 2 {
		return 0, 0, errors.New("unexpected display geometry")
	}
	if width, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, err
	}
	if height, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
