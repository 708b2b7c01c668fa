// Package shortcut owns the global shortcut bindings and classifies raw key
// transitions into logical actions.
package shortcut

import (
	"errors"
	"fmt"

	"voxbar/internal/hotkey"
)

// Action is a logical action produced by a binding.
type Action int

const (
	PushToTalkStart Action = iota + 1
	PushToTalkStop
	TriggerPaste
)

func (a Action) String() string {
	switch a {
	case PushToTalkStart:
		return "push-to-talk-start"
	case PushToTalkStop:
		return "push-to-talk-stop"
	case TriggerPaste:
		return "trigger-paste"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Mode decides which edges of a combination produce an action.
type Mode int

const (
	// Hold is edge-driven: Pressed starts push-to-talk, Released stops it.
	Hold Mode = iota
	// Press fires TriggerPaste on Pressed only.
	Press
)

func (m Mode) String() string {
	if m == Press {
		return "press"
	}
	return "hold"
}

// Binding maps one combination to its actions.
type Binding struct {
	Combination hotkey.Combination
	Mode        Mode
}

// actionFor returns the action the binding yields for an edge.
func (b Binding) actionFor(e hotkey.Edge) (Action, bool) {
	switch b.Mode {
	case Hold:
		if e == hotkey.Pressed {
			return PushToTalkStart, true
		}
		return PushToTalkStop, true
	case Press:
		if e == hotkey.Pressed {
			return TriggerPaste, true
		}
	}
	return 0, false
}

// DefaultBindings returns the bindings registered at startup:
// Ctrl+Shift+Space for push-to-talk and Shift+Alt+V for paste.
func DefaultBindings() []Binding {
	return []Binding{
		{Combination: hotkey.Combo(hotkey.KeySpace, hotkey.ModCtrl, hotkey.ModShift), Mode: Hold},
		{Combination: hotkey.Combo(hotkey.KeyV, hotkey.ModShift, hotkey.ModAlt), Mode: Press},
	}
}

// ErrCombinationUnavailable means the combination is already held, either by
// another process or by another binding of this registry.
var ErrCombinationUnavailable = errors.New("shortcut: combination unavailable")

// RegistrationError reports a failed registration of one combination.
type RegistrationError struct {
	Combination hotkey.Combination
	Err         error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("shortcut %s: %v", e.Combination, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
