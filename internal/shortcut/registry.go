package shortcut

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voxbar/internal/hotkey"
)

// transitionBuffer absorbs short bursts while the dispatcher is busy.
const transitionBuffer = 16

// Status describes one binding for display.
type Status struct {
	Binding Binding
	Active  bool
	Err     error
}

// Registry holds the active bindings and their OS grabs.
type Registry struct {
	grabber     hotkey.Grabber
	transitions chan hotkey.Transition

	mu       sync.RWMutex
	bindings map[hotkey.Combination]Binding
	grabs    map[hotkey.Combination]hotkey.Grab
	statuses []Status
}

// NewRegistry creates an empty registry backed by g.
func NewRegistry(g hotkey.Grabber) *Registry {
	return &Registry{
		grabber:     g,
		transitions: make(chan hotkey.Transition, transitionBuffer),
		bindings:    make(map[hotkey.Combination]Binding),
		grabs:       make(map[hotkey.Combination]hotkey.Grab),
	}
}

// Transitions delivers raw transitions of every registered combination.
func (r *Registry) Transitions() <-chan hotkey.Transition {
	return r.transitions
}

// Register asks the OS to reserve each combination. Every binding is
// attempted; failures are collected into the returned error as
// *RegistrationError values wrapping ErrCombinationUnavailable. A duplicate
// combination never replaces the binding that already holds it.
func (r *Registry) Register(bindings []Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, b := range bindings {
		err := r.register(b)
		r.statuses = append(r.statuses, Status{Binding: b, Active: err == nil, Err: err})
		if err != nil {
			slog.Warn("shortcut registration failed", "combination", b.Combination.String(), "error", err)
			errs = append(errs, err)
			continue
		}
		slog.Info("shortcut registered", "combination", b.Combination.String(), "mode", b.Mode.String())
	}
	return errors.Join(errs...)
}

func (r *Registry) register(b Binding) error {
	if _, taken := r.bindings[b.Combination]; taken {
		return &RegistrationError{
			Combination: b.Combination,
			Err:         fmt.Errorf("%w: already bound", ErrCombinationUnavailable),
		}
	}

	grab, err := r.grabber.Grab(b.Combination, r.transitions)
	if err != nil {
		return &RegistrationError{
			Combination: b.Combination,
			Err:         fmt.Errorf("%w: %v", ErrCombinationUnavailable, err),
		}
	}

	r.bindings[b.Combination] = b
	r.grabs[b.Combination] = grab
	return nil
}

// Classify maps a transition to an action. Transitions of unknown
// combinations and edges a binding ignores yield false.
func (r *Registry) Classify(t hotkey.Transition) (Action, bool) {
	r.mu.RLock()
	b, ok := r.bindings[t.Combination]
	r.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return b.actionFor(t.Edge)
}

// Statuses returns the outcome of every registration attempt, in order.
func (r *Registry) Statuses() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

// Close releases every grab. Called once at shutdown.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for combo, g := range r.grabs {
		if err := g.Release(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", combo, err))
		}
	}
	r.grabs = make(map[hotkey.Combination]hotkey.Grab)
	r.bindings = make(map[hotkey.Combination]Binding)
	return errors.Join(errs...)
}
