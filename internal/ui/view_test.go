package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"voxbar/internal/hotkey"
	"voxbar/internal/i18n"
	"voxbar/internal/session"
	"voxbar/internal/shortcut"
)

func TestWidgetViewTracksPushToTalk(t *testing.T) {
	v := NewWidgetView(DefaultPalette(), "ctrl+shift+space")
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	v.Apply(session.Event{Name: session.EventPressed, Action: shortcut.PushToTalkStart, At: start})
	recording, since := v.Recording()
	if !recording || !since.Equal(start) {
		t.Fatalf("after press: recording = %v, since = %v", recording, since)
	}

	// paste does not touch push-to-talk
	v.Apply(session.Event{Name: session.EventPaste, Action: shortcut.TriggerPaste, At: start.Add(time.Second)})
	if recording, _ := v.Recording(); !recording {
		t.Fatal("paste stopped push-to-talk")
	}

	v.Apply(session.Event{Name: session.EventReleased, Action: shortcut.PushToTalkStop, At: start.Add(2 * time.Second)})
	if recording, _ := v.Recording(); recording {
		t.Fatal("still recording after release")
	}
}

func TestMainViewStatus(t *testing.T) {
	v := NewMainView(DefaultPalette(), nil, nil)
	tests := []struct {
		action shortcut.Action
		want   string
	}{
		{shortcut.PushToTalkStart, i18n.T("main_status_talking")},
		{shortcut.PushToTalkStop, i18n.T("main_status_idle")},
		{shortcut.TriggerPaste, i18n.T("main_status_pasted")},
	}
	for _, tt := range tests {
		v.Apply(session.Event{Action: tt.action})
		if got := v.Status(); got != tt.want {
			t.Errorf("after %v: status = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestShortcutLines(t *testing.T) {
	hold := shortcut.Binding{Combination: hotkey.Combo(hotkey.KeySpace, hotkey.ModCtrl, hotkey.ModShift), Mode: shortcut.Hold}
	paste := shortcut.Binding{Combination: hotkey.Combo(hotkey.KeyV, hotkey.ModShift, hotkey.ModAlt), Mode: shortcut.Press}

	lines := shortcutLines([]shortcut.Status{
		{Binding: hold, Active: true},
		{Binding: paste, Active: false, Err: errors.New("taken")},
	})
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].inert || !strings.Contains(lines[0].text, "ctrl+shift+space") {
		t.Errorf("hold line = %+v", lines[0])
	}
	if !lines[1].inert || !strings.Contains(lines[1].text, i18n.T("main_shortcut_inert")) {
		t.Errorf("paste line = %+v", lines[1])
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{61500 * time.Millisecond, "1:01"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSurfaceBeforeOpen(t *testing.T) {
	s := NewSurface(Options{Title: "test", Width: 100, Height: 50}, NewWidgetView(DefaultPalette(), "x"))

	if err := s.Hide(); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}
	if _, _, ok := s.Size(); ok {
		t.Error("Size() ok before first frame")
	}
	if _, ok := s.Display(); ok {
		t.Error("Display() ok before open")
	}
	if err := s.Move(1, 2); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Move() error = %v, want ErrNotOpen", err)
	}
	if s.WaitReady(10 * time.Millisecond) {
		t.Error("WaitReady() = true before first frame")
	}
}
