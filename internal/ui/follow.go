package ui

import "voxbar/internal/session"

// Applier consumes session events.
type Applier interface {
	Apply(ev session.Event)
}

// Follow applies events to view and redraws the surface until events is
// closed.
func Follow(events <-chan session.Event, view Applier, s *Surface) {
	for ev := range events {
		view.Apply(ev)
		s.Invalidate()
	}
}
