// Package bridge exposes session events and window commands to local
// clients over a WebSocket.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"voxbar/internal/session"
)

const (
	writeDeadline      = 5 * time.Second
	readDeadline       = 90 * time.Second
	pingInterval       = 30 * time.Second
	maxReadMessageSize = 4 * 1024
	sendBuffer         = 32
)

// ErrUnknownCommand is reported for requests naming no known command.
var ErrUnknownCommand = errors.New("bridge: unknown command")

// ErrOriginNotAllowed is logged for browser handshakes from unlisted origins.
var ErrOriginNotAllowed = errors.New("bridge: origin not allowed")

// Options configures a Hub.
type Options struct {
	// Addr defaults to an OS-assigned loopback port.
	Addr string
	// AllowedOrigins lists the browser origins that may connect, e.g.
	// "http://localhost:5173". Handshakes without an Origin header come from
	// native clients and are accepted. Any other origin is refused.
	AllowedOrigins []string
}

// Commander executes client commands.
type Commander interface {
	PasteTranscript() error
	ShowWindow(name string) error
	// CloseWindow asks to close a window and reports whether the close was
	// turned into a hide.
	CloseWindow(name string) (prevented bool, err error)
}

// Hub serves any number of clients. Every client receives every event.
type Hub struct {
	addr     string
	origins  map[string]bool
	upgrader websocket.Upgrader
	cmd      Commander

	mu      sync.RWMutex
	clients map[string]*client

	listener  net.Listener
	server    *http.Server
	url       string
	closeOnce sync.Once
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.done) })
}

// NewHub creates a hub.
func NewHub(opts Options, cmd Commander) *Hub {
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:0"
	}
	h := &Hub{
		addr:    opts.Addr,
		origins: make(map[string]bool, len(opts.AllowedOrigins)),
		cmd:     cmd,
		clients: make(map[string]*client),
	}
	for _, o := range opts.AllowedOrigins {
		h.origins[strings.TrimRight(strings.ToLower(o), "/")] = true
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin:     h.checkOrigin,
		ReadBufferSize:  1024,
		WriteBufferSize: 4 * 1024,
	}
	return h
}

// checkOrigin accepts native clients and listed browser origins only.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if h.origins[strings.ToLower(origin)] {
		return true
	}
	slog.Warn("bridge handshake refused", "origin", origin, "error", ErrOriginNotAllowed)
	return false
}

// Handler returns the HTTP handler serving /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	return mux
}

// Start listens on the configured address.
func (h *Hub) Start(ctx context.Context) error {
	if h.server != nil {
		return errors.New("bridge: already started")
	}
	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("bridge: listen: %w", err)
	}
	h.listener = ln
	h.url = fmt.Sprintf("ws://%s/ws", ln.Addr().String())
	h.server = &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("bridge server error", "error", err)
		}
	}()

	slog.Info("bridge started", "url", h.url)
	return nil
}

// Stop closes all clients and shuts the server down. Idempotent.
func (h *Hub) Stop() error {
	var stopErr error
	h.closeOnce.Do(func() {
		h.mu.Lock()
		clients := h.clients
		h.clients = make(map[string]*client)
		h.mu.Unlock()

		for _, c := range clients {
			c.close()
			_ = c.conn.Close()
		}

		if h.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := h.server.Shutdown(ctx); err != nil {
				stopErr = fmt.Errorf("bridge: shutdown: %w", err)
			}
		}
		slog.Info("bridge stopped")
	})
	return stopErr
}

// URL returns the WebSocket URL, or "" before Start.
func (h *Hub) URL() string {
	return h.url
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Forward broadcasts events until the channel is closed or ctx is done.
func (h *Hub) Forward(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.Broadcast(ev)
		}
	}
}

// Broadcast sends ev to every client. A client whose queue is full misses
// the event.
func (h *Hub) Broadcast(ev session.Event) {
	payload, err := json.Marshal(newEventMsg(ev))
	if err != nil {
		slog.Warn("bridge encode failed", "event", ev.Name, "error", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slog.Debug("bridge client slow, event dropped", "client", c.id, "event", ev.Name)
		}
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("bridge upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxReadMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		_ = conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	hello, _ := json.Marshal(helloMsg{Type: typeHello, ClientID: c.id, Events: eventNames()})
	c.send <- hello

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	slog.Info("bridge client connected", "client", c.id, "remoteAddr", conn.RemoteAddr())

	go h.writePump(c)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		c.close()
		_ = conn.Close()
		slog.Info("bridge client disconnected", "client", c.id)
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("bridge read error", "client", c.id, "error", err)
			}
			return
		}
		res := h.dispatch(msg)
		payload, err := json.Marshal(res)
		if err != nil {
			continue
		}
		select {
		case c.send <- payload:
		case <-c.done:
			return
		}
	}
}

// writePump owns all writes to the connection.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			if err := write(c.conn, websocket.TextMessage, payload); err != nil {
				slog.Debug("bridge write failed", "client", c.id, "error", err)
				c.close()
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			if err := write(c.conn, websocket.PingMessage, nil); err != nil {
				c.close()
				_ = c.conn.Close()
				return
			}
		}
	}
}

func write(conn *websocket.Conn, kind int, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
		return err
	}
	return conn.WriteMessage(kind, payload)
}

// dispatch runs one request and builds its result.
func (h *Hub) dispatch(msg []byte) result {
	var req request
	if err := json.Unmarshal(msg, &req); err != nil {
		return result{Type: typeResult, Error: "invalid request: " + err.Error()}
	}
	res := result{Type: typeResult, ID: req.ID, Command: req.Command}

	var err error
	switch req.Command {
	case CommandPasteTranscript:
		err = h.cmd.PasteTranscript()
	case CommandShowWindow:
		err = h.cmd.ShowWindow(req.Window)
	case CommandCloseWindow:
		var prevented bool
		prevented, err = h.cmd.CloseWindow(req.Window)
		res.Prevented = &prevented
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, req.Command)
	}
	if err != nil {
		res.Error = err.Error()
		slog.Debug("bridge command failed", "command", req.Command, "error", err)
	} else {
		res.OK = true
	}
	return res
}
