package window

import (
	"errors"
	"testing"
	"time"
)

type fakeWindow struct {
	shows, hides, focuses int
	destroyed             bool
	marker                string

	display    Display
	hasDisplay bool
	width      int
	height     int
	hasSize    bool
	moves      [][2]int
}

func (w *fakeWindow) Show() error  { w.shows++; return nil }
func (w *fakeWindow) Hide() error  { w.hides++; return nil }
func (w *fakeWindow) Focus() error { w.focuses++; return nil }

func (w *fakeWindow) Size() (int, int, bool)   { return w.width, w.height, w.hasSize }
func (w *fakeWindow) Display() (Display, bool) { return w.display, w.hasDisplay }
func (w *fakeWindow) Move(x, y int) error {
	w.moves = append(w.moves, [2]int{x, y})
	return nil
}

func openController(t *testing.T, names ...string) (*Controller, map[string]*fakeWindow) {
	t.Helper()
	c := NewController(func(int) {})
	windows := make(map[string]*fakeWindow)
	for _, name := range names {
		w := &fakeWindow{}
		if err := c.Open(name, w); err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		windows[name] = w
	}
	return c, windows
}

func TestOpenStartsVisible(t *testing.T) {
	c, windows := openController(t, Main, Widget)
	for name, w := range windows {
		if s, ok := c.State(name); !ok || s != Visible {
			t.Errorf("State(%q) = %v, %v, want visible", name, s, ok)
		}
		if w.shows != 1 {
			t.Errorf("%q shown %d times, want 1", name, w.shows)
		}
	}
	if err := c.Open(Main, &fakeWindow{}); err == nil {
		t.Fatal("second Open(main) succeeded")
	}
}

func TestCloseMainHidesAndShowRestoresSameWindow(t *testing.T) {
	c, windows := openController(t, Main)
	w := windows[Main]
	w.marker = "draft-42"

	if !c.OnCloseRequested(Main) {
		t.Fatal("close of main was not suppressed")
	}
	if s, _ := c.State(Main); s != Hidden {
		t.Fatalf("state after close = %v, want hidden", s)
	}
	if w.hides != 1 {
		t.Fatalf("hides = %d, want 1", w.hides)
	}

	if err := c.ShowAndFocus(Main); err != nil {
		t.Fatalf("ShowAndFocus: %v", err)
	}
	if s, _ := c.State(Main); s != Visible {
		t.Fatalf("state after show = %v, want visible", s)
	}
	if w.destroyed || w.marker != "draft-42" {
		t.Fatalf("window was recreated: destroyed=%v marker=%q", w.destroyed, w.marker)
	}
	if w.shows != 2 || w.focuses != 1 {
		t.Fatalf("shows = %d, focuses = %d, want 2, 1", w.shows, w.focuses)
	}
}

func TestCloseOtherWindowsUsesDefault(t *testing.T) {
	c, windows := openController(t, Main, Widget)

	if c.OnCloseRequested(Widget) {
		t.Fatal("close of widget was suppressed")
	}
	if windows[Widget].hides != 0 {
		t.Fatal("widget was hidden by the controller")
	}
	if c.OnCloseRequested("settings") {
		t.Fatal("close of unknown window was suppressed")
	}
}

func TestForgetClosedWindow(t *testing.T) {
	c, _ := openController(t, Main, Widget)

	c.Forget(Widget)
	if _, ok := c.State(Widget); ok {
		t.Fatal("forgotten widget still has a state")
	}
	if err := c.ShowAndFocus(Widget); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("ShowAndFocus(widget) error = %v, want ErrWindowNotFound", err)
	}
	if err := c.Open(Widget, &fakeWindow{}); err != nil {
		t.Fatalf("reopen widget: %v", err)
	}
}

func TestShowAndFocusIdempotent(t *testing.T) {
	c, windows := openController(t, Main)
	w := windows[Main]

	for i := 0; i < 2; i++ {
		if err := c.ShowAndFocus(Main); err != nil {
			t.Fatalf("ShowAndFocus #%d: %v", i+1, err)
		}
	}
	if s, _ := c.State(Main); s != Visible {
		t.Fatalf("state = %v, want visible", s)
	}
	if w.shows != 1 {
		t.Fatalf("shows = %d, want 1 (no re-show while visible)", w.shows)
	}
	if w.focuses != 2 {
		t.Fatalf("focuses = %d, want 2", w.focuses)
	}
}

func TestShowAndFocusUnknownWindow(t *testing.T) {
	c := NewController(nil)
	if err := c.ShowAndFocus(Main); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("ShowAndFocus error = %v, want ErrWindowNotFound", err)
	}
}

func TestWidgetPosition(t *testing.T) {
	tests := []struct {
		name   string
		d      Display
		w, h   int
		wantX  int
		wantY  int
		margin float64
	}{
		{"full hd", Display{Width: 1920, Height: 1080, Scale: 1}, 300, 80, 810, 890, 110},
		{"hidpi", Display{Width: 2880, Height: 1800, Scale: 2}, 600, 160, 1140, 1420, 110},
		{"fractional", Display{Width: 1366, Height: 768, Scale: 1.25}, 301, 80, 532, 550, 110},
		{"zero scale", Display{Width: 1920, Height: 1080}, 300, 80, 810, 890, 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := WidgetPosition(tt.d, tt.w, tt.h, tt.margin)
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("WidgetPosition = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPositionWidgetMovesWindow(t *testing.T) {
	c := NewController(nil)
	w := &fakeWindow{
		display:    Display{Width: 1920, Height: 1080, Scale: 1},
		hasDisplay: true,
		width:      300,
		height:     80,
		hasSize:    true,
	}
	if err := c.Open(Widget, w); err != nil {
		t.Fatalf("Open: %v", err)
	}

	c.PositionWidget(Widget)
	if len(w.moves) != 1 || w.moves[0] != [2]int{810, 890} {
		t.Fatalf("moves = %v, want [[810 890]]", w.moves)
	}
}

func TestPositionWidgetSkipsSilently(t *testing.T) {
	c := NewController(nil)
	c.PositionWidget(Widget) // нет окна

	noDisplay := &fakeWindow{width: 300, height: 80, hasSize: true}
	if err := c.Open(Widget, noDisplay); err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.PositionWidget(Widget)
	if len(noDisplay.moves) != 0 {
		t.Fatalf("moved without display info: %v", noDisplay.moves)
	}

	noSize := &fakeWindow{display: Display{Width: 1920, Height: 1080, Scale: 1}, hasDisplay: true}
	if err := c.Open(Main, noSize); err != nil {
		t.Fatalf("Open: %v", err)
	}
	c.PositionWidget(Main)
	if len(noSize.moves) != 0 {
		t.Fatalf("moved without size info: %v", noSize.moves)
	}
}

func TestQuitIsTerminal(t *testing.T) {
	var codes []int
	c := NewController(func(code int) { codes = append(codes, code) })
	w := &fakeWindow{}
	if err := c.Open(Main, w); err != nil {
		t.Fatalf("Open: %v", err)
	}

	hooks := 0
	c.OnQuit(func() { hooks++ })

	c.Quit()
	c.Quit()

	if len(codes) != 1 || codes[0] != 0 {
		t.Fatalf("exit codes = %v, want [0]", codes)
	}
	if hooks != 1 {
		t.Fatalf("quit hooks ran %d times, want 1", hooks)
	}
	if !c.Terminated() {
		t.Fatal("Terminated() = false after Quit")
	}
	if err := c.ShowAndFocus(Main); !errors.Is(err, ErrTerminated) {
		t.Fatalf("ShowAndFocus after Quit = %v, want ErrTerminated", err)
	}
	if c.OnCloseRequested(Main) {
		t.Fatal("close handled after Quit")
	}
	if w.shows != 1 || w.hides != 0 || w.focuses != 0 {
		t.Fatalf("window touched after Quit: %+v", w)
	}
}

// slowWindow blocks in Hide and Focus until released.
type slowWindow struct {
	fakeWindow
	entered chan string
	release chan struct{}
}

func (w *slowWindow) Hide() error {
	w.entered <- "hide"
	<-w.release
	return nil
}

func (w *slowWindow) Focus() error {
	w.entered <- "focus"
	<-w.release
	return nil
}

func TestHandleCallsDoNotHoldController(t *testing.T) {
	c := NewController(func(int) {})
	w := &slowWindow{entered: make(chan string), release: make(chan struct{})}
	if err := c.Open(Main, w); err != nil {
		t.Fatal(err)
	}

	calls := []struct {
		name string
		call func()
	}{
		{"hide", func() { c.OnCloseRequested(Main) }},
		{"focus", func() { _ = c.ShowAndFocus(Main) }},
	}
	for _, tt := range calls {
		done := make(chan struct{})
		go func() {
			tt.call()
			close(done)
		}()
		if got := <-w.entered; got != tt.name {
			t.Fatalf("entered %q, want %q", got, tt.name)
		}

		// the controller stays usable while the handle is busy
		stateDone := make(chan struct{})
		go func() {
			c.State(Main)
			c.PositionWidget(Widget)
			close(stateDone)
		}()
		select {
		case <-stateDone:
		case <-time.After(time.Second):
			t.Fatalf("controller blocked during %s", tt.name)
		}

		w.release <- struct{}{}
		<-done
	}
	if s, _ := c.State(Main); s != Visible {
		t.Fatalf("state = %v, want visible after show", s)
	}
}
