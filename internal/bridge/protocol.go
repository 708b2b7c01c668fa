package bridge

import (
	"time"

	"voxbar/internal/session"
)

// Message types sent by the bridge.
const (
	typeHello  = "hello"
	typeEvent  = "event"
	typeResult = "result"
)

// Commands accepted from clients.
const (
	CommandPasteTranscript = "paste_transcript"
	CommandShowWindow      = "show_window"
	CommandCloseWindow     = "close_window"
)

// helloMsg is sent once when a client connects.
type helloMsg struct {
	Type     string   `json:"type"`
	ClientID string   `json:"clientId"`
	Events   []string `json:"events"`
}

// eventMsg carries one session event.
type eventMsg struct {
	Type  string    `json:"type"`
	Event string    `json:"event"`
	At    time.Time `json:"at"`
}

// request is a command sent by a client. ID is echoed in the result.
type request struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	Window  string `json:"window,omitempty"`
}

// result answers one request.
type result struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	Command   string `json:"command"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	Prevented *bool  `json:"prevented,omitempty"`
}

func newEventMsg(ev session.Event) eventMsg {
	return eventMsg{Type: typeEvent, Event: ev.Name, At: ev.At}
}

func eventNames() []string {
	return []string{session.EventPressed, session.EventReleased, session.EventPaste}
}
