// Package ui renders the main window and the floating widget with gio.
package ui

import (
	"errors"
	"image"
	"log/slog"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"voxbar/internal/window"
)

// ErrNotOpen is returned by native operations before the first frame.
var ErrNotOpen = errors.New("ui: window not open")

// View draws the content of a surface.
type View interface {
	Layout(gtx layout.Context) layout.Dimensions
}

// Options configures a surface.
type Options struct {
	Title  string
	Width  int // Dp
	Height int // Dp
	// Refresh > 0 redraws the surface periodically, for animations.
	Refresh time.Duration
}

// Surface is one undecorated gio window. It implements window.Handle and
// window.Placer.
type Surface struct {
	opts Options
	view View

	mu        sync.Mutex
	win       *app.Window
	native    nativeWindow
	hidden    bool
	closing   bool
	size      image.Point
	pxPerDp   float32
	ready     chan struct{}
	readyDone bool
	onClose   func()
}

var (
	_ window.Handle = (*Surface)(nil)
	_ window.Placer = (*Surface)(nil)
)

// NewSurface creates a surface. The OS window is created by the first Show.
func NewSurface(opts Options, view View) *Surface {
	return &Surface{
		opts:    opts,
		view:    view,
		pxPerDp: 1,
		ready:   make(chan struct{}),
	}
}

// OnCloseRequested sets the callback for a close the user or window
// manager initiated.
func (s *Surface) OnCloseRequested(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = fn
}

// Show creates the window on first use and maps it afterwards.
func (s *Surface) Show() error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return window.ErrTerminated
	}
	if s.win == nil {
		s.hidden = false
		s.open()
		s.mu.Unlock()
		return nil
	}
	wasHidden := s.hidden
	s.hidden = false
	s.mu.Unlock()

	if !wasHidden {
		return nil
	}
	n := s.nativeHandle()
	if n == nil {
		return ErrNotOpen
	}
	return n.show()
}

// Hide unmaps the window without destroying it.
func (s *Surface) Hide() error {
	s.mu.Lock()
	if s.win == nil || s.hidden {
		s.hidden = true
		s.mu.Unlock()
		return nil
	}
	s.hidden = true
	n := s.native
	s.mu.Unlock()
	return n.hide()
}

// Focus raises the window and gives it keyboard focus. A window that was
// just created is given a moment to draw its first frame.
func (s *Surface) Focus() error {
	s.WaitReady(time.Second)
	n := s.nativeHandle()
	if n == nil {
		return ErrNotOpen
	}
	return n.focus()
}

// Size returns the last rendered size in physical pixels.
func (s *Surface) Size() (width, height int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.size == (image.Point{}) {
		return 0, 0, false
	}
	return s.size.X, s.size.Y, true
}

// Display returns the geometry of the display the window is on.
func (s *Surface) Display() (window.Display, bool) {
	s.mu.Lock()
	scale := s.pxPerDp
	n := s.native
	s.mu.Unlock()
	if n == nil {
		return window.Display{}, false
	}
	d, ok := n.display()
	if !ok {
		return window.Display{}, false
	}
	d.Scale = float64(scale)
	return d, true
}

// Move places the window's top left corner at x, y.
func (s *Surface) Move(x, y int) error {
	n := s.nativeHandle()
	if n == nil {
		return ErrNotOpen
	}
	return n.move(x, y)
}

// WaitReady blocks until the first frame is drawn or the timeout expires.
func (s *Surface) WaitReady(timeout time.Duration) bool {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()
	select {
	case <-ready:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Invalidate schedules a redraw.
func (s *Surface) Invalidate() {
	s.mu.Lock()
	w := s.win
	s.mu.Unlock()
	if w != nil {
		w.Invalidate()
	}
}

// Close destroys the window for good.
func (s *Surface) Close() {
	s.mu.Lock()
	s.closing = true
	w := s.win
	s.mu.Unlock()
	if w != nil {
		w.Perform(system.ActionClose)
	}
}

// open starts the event loop. Called with s.mu held.
func (s *Surface) open() {
	w := new(app.Window)
	w.Option(
		app.Title(s.opts.Title),
		app.Size(unit.Dp(s.opts.Width), unit.Dp(s.opts.Height)),
		app.Decorated(false),
	)
	s.win = w
	s.native = newNative(s.opts.Title, w)
	go s.run(w)
}

func (s *Surface) run(w *app.Window) {
	stop := make(chan struct{})
	defer close(stop)

	if s.opts.Refresh > 0 {
		go func() {
			ticker := time.NewTicker(s.opts.Refresh)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					w.Invalidate()
				}
			}
		}()
	}

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			s.destroyed(e.Err)
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			s.view.Layout(gtx)
			e.Frame(gtx.Ops)

			s.mu.Lock()
			s.size = e.Size
			s.pxPerDp = e.Metric.PxPerDp
			s.mu.Unlock()
			s.markReady()
		}
	}
}

// destroyed handles the end of the event loop. Unless Close was called the
// window manager closed the window: the next Show recreates it.
func (s *Surface) destroyed(err error) {
	s.mu.Lock()
	closing := s.closing
	s.win = nil
	s.native = nil
	s.hidden = true
	s.size = image.Point{}
	s.ready = make(chan struct{})
	s.readyDone = false
	onClose := s.onClose
	s.mu.Unlock()

	if err != nil {
		slog.Warn("window destroyed", "title", s.opts.Title, "error", err)
	}
	if !closing && onClose != nil {
		onClose()
	}
}

func (s *Surface) markReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.readyDone {
		s.readyDone = true
		close(s.ready)
	}
}

func (s *Surface) nativeHandle() nativeWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.native
}

// nativeWindow performs the operations gio does not expose portably.
type nativeWindow interface {
	show() error
	hide() error
	focus() error
	move(x, y int) error
	display() (window.Display, bool)
}
