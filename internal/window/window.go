// Package window owns the visibility lifecycle of the named application
// windows. Windows themselves belong to the windowing system; the
// controller keeps only a name to handle lookup table.
package window

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Window names.
const (
	Main   = "main"
	Widget = "widget"
)

// DefaultBottomMargin is the widget's distance from the bottom edge of its
// display, in logical pixels.
const DefaultBottomMargin = 110

var (
	// ErrWindowNotFound means no live handle is registered under a name.
	ErrWindowNotFound = errors.New("window: not found")
	// ErrTerminated is returned once Quit has run.
	ErrTerminated = errors.New("window: terminated")
)

// State is the visibility of one window.
type State int

const (
	Visible State = iota
	Hidden
)

func (s State) String() string {
	if s == Hidden {
		return "hidden"
	}
	return "visible"
}

// Handle is a borrowed reference to an OS window.
type Handle interface {
	Show() error
	Hide() error
	Focus() error
}

// Display describes the monitor a window is on, in physical pixels.
type Display struct {
	Width  int
	Height int
	Scale  float64
}

// Placer is implemented by handles that can report geometry and move.
type Placer interface {
	// Size returns the outer window size in physical pixels.
	Size() (width, height int, ok bool)
	// Display returns the display the window currently occupies.
	Display() (Display, bool)
	Move(x, y int) error
}

// Controller tracks visibility per window and mediates close, show and quit.
type Controller struct {
	mu         sync.Mutex
	handles    map[string]Handle
	states     map[string]State
	terminated bool
	onQuit     []func()
	exit       func(code int)
	margin     float64
}

// NewController creates a controller. exit is called by Quit with code 0.
func NewController(exit func(code int)) *Controller {
	return &Controller{
		handles: make(map[string]Handle),
		states:  make(map[string]State),
		exit:    exit,
		margin:  DefaultBottomMargin,
	}
}

// SetBottomMargin overrides the widget's bottom margin.
func (c *Controller) SetBottomMargin(margin float64) {
	c.mu.Lock()
	c.margin = margin
	c.mu.Unlock()
}

// Open shows a window and registers it as Visible.
func (c *Controller) Open(name string, h Handle) error {
	if err := c.checkOpen(name); err != nil {
		return err
	}
	if err := h.Show(); err != nil {
		return fmt.Errorf("window %q: show: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return ErrTerminated
	}
	if _, ok := c.handles[name]; ok {
		return fmt.Errorf("window %q: already open", name)
	}
	c.handles[name] = h
	c.states[name] = Visible
	return nil
}

func (c *Controller) checkOpen(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return ErrTerminated
	}
	if _, ok := c.handles[name]; ok {
		return fmt.Errorf("window %q: already open", name)
	}
	return nil
}

// State reports the visibility of a window.
func (c *Controller) State(name string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.states[name]
	return s, ok
}

// OnCloseRequested handles a close request and reports whether the default
// close must be suppressed. The main window is hidden instead of destroyed;
// other windows close normally.
func (c *Controller) OnCloseRequested(name string) bool {
	c.mu.Lock()
	if c.terminated || name != Main {
		c.mu.Unlock()
		return false
	}
	h, ok := c.handles[name]
	if !ok {
		c.mu.Unlock()
		return false
	}
	visible := c.states[name] == Visible
	c.states[name] = Hidden
	c.mu.Unlock()

	// Handles talk to the windowing system; never call them under c.mu.
	if visible {
		if err := h.Hide(); err != nil {
			slog.Warn("hide window failed", "window", name, "error", err)
		}
	}
	return true
}

// Forget drops a window that was actually closed.
func (c *Controller) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handles, name)
	delete(c.states, name)
}

// ShowAndFocus makes a window visible and asks for focus. Calling it on a
// visible window only re-asserts focus.
func (c *Controller) ShowAndFocus(name string) error {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return ErrTerminated
	}
	h, ok := c.handles[name]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrWindowNotFound, name)
	}
	hidden := c.states[name] == Hidden
	c.mu.Unlock()

	if hidden {
		if err := h.Show(); err != nil {
			return fmt.Errorf("window %q: show: %w", name, err)
		}
		c.mu.Lock()
		if _, ok := c.handles[name]; ok && !c.terminated {
			c.states[name] = Visible
		}
		c.mu.Unlock()
	}
	if err := h.Focus(); err != nil {
		return fmt.Errorf("window %q: focus: %w", name, err)
	}
	return nil
}

// WidgetPosition centers a window horizontally on d and keeps it margin
// logical pixels above the bottom edge. Coordinates truncate toward zero.
func WidgetPosition(d Display, width, height int, margin float64) (x, y int) {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	fx := (float64(d.Width) - float64(width)) / 2
	fy := float64(d.Height) - float64(height) - margin*scale
	return int(fx), int(fy)
}

// PositionWidget places the named window using WidgetPosition. Missing
// window, size or display information skips silently.
func (c *Controller) PositionWidget(name string) {
	c.mu.Lock()
	h, ok := c.handles[name]
	margin := c.margin
	terminated := c.terminated
	c.mu.Unlock()

	if terminated || !ok {
		slog.Debug("widget placement skipped", "window", name, "reason", "no handle")
		return
	}
	p, ok := h.(Placer)
	if !ok {
		slog.Debug("widget placement skipped", "window", name, "reason", "not placeable")
		return
	}
	d, ok := p.Display()
	if !ok {
		slog.Debug("widget placement skipped", "window", name, "reason", "no display")
		return
	}
	w, hgt, ok := p.Size()
	if !ok {
		slog.Debug("widget placement skipped", "window", name, "reason", "no size")
		return
	}

	x, y := WidgetPosition(d, w, hgt, margin)
	if err := p.Move(x, y); err != nil {
		slog.Debug("widget placement failed", "window", name, "error", err)
		return
	}
	slog.Debug("widget placed", "window", name, "x", x, "y", y)
}

// OnQuit registers a hook run by Quit before the process exits.
func (c *Controller) OnQuit(fn func()) {
	c.mu.Lock()
	c.onQuit = append(c.onQuit, fn)
	c.mu.Unlock()
}

// Quit runs the quit hooks once and exits with code 0. Later calls to any
// method are no-ops or return ErrTerminated.
func (c *Controller) Quit() {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return
	}
	c.terminated = true
	hooks := c.onQuit
	c.onQuit = nil
	c.handles = make(map[string]Handle)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	if c.exit != nil {
		c.exit(0)
	}
}

// Terminated reports whether Quit has run.
func (c *Controller) Terminated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminated
}
