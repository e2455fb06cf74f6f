package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/infrastructure/config"
	"github.com/posdesk/core/internal/infrastructure/logging"
)

// wireMessage is the JSON envelope delivered to WebSocket clients.
// For deleted events Data carries the removed identifier string instead
// of a record.
type wireMessage struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// wsConn is the subset of *websocket.Conn the hub needs. Tests substitute
// a fake implementation.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
	Close() error
}

// Session is one connected WebSocket client. Its send channel is drained
// by a single writer goroutine, which gives per-session FIFO delivery.
type Session struct {
	id   string
	hub  *Hub
	conn wsConn
	send chan []byte
}

// ID returns the session identifier. Identifiers are UUIDs and are never
// reused across the life of the hub.
func (s *Session) ID() string {
	return s.id
}

// trySend enqueues data without blocking. When the session's buffer is
// full the message is dropped for that session; existing queued messages
// keep their order. A send on a closed channel (concurrent unregister)
// is absorbed.
func (s *Session) trySend(data []byte) {
	defer func() {
		recover() //nolint:errcheck // Absorb send-on-closed-channel during unregister
	}()

	select {
	case s.send <- data:
	default:
		// Slow client; drop the newest message rather than block.
	}
}

// Hub is the connection registry and broadcaster. It owns the set of
// live sessions and fans committed change events out to all of them.
type Hub struct {
	cfg    config.WebSocketConfig
	logger *logging.Logger

	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub(cfg config.WebSocketConfig, logger *logging.Logger) *Hub {
	return &Hub{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Run blocks until the context is cancelled, then disconnects every
// session.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.closeAll()
}

// Register creates a session for the connection and adds it to the
// registry. The caller starts the session's read and write pumps.
func (h *Hub) Register(conn wsConn) *Session {
	session := &Session{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.cfg.SendBuffer),
	}

	h.mu.Lock()
	h.sessions[session.id] = session
	h.mu.Unlock()

	h.logger.Debug("websocket session registered", "session_id", session.id, "sessions", h.SessionCount())
	return session
}

// Unregister removes a session from the registry. Idempotent: only the
// caller that actually deletes the entry closes the send channel, so
// concurrent unregisters (read pump and shutdown racing) are safe.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	session, existed := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if existed {
		close(session.send)
		h.logger.Debug("websocket session unregistered", "session_id", id, "sessions", h.SessionCount())
	}
}

// Broadcast delivers a change event to every registered session. The
// envelope is marshalled once, the membership is snapshotted under the
// read lock, and enqueueing happens outside any lock so a slow client
// never stalls the caller or its peers. Broadcast never fails from the
// producer's point of view.
func (h *Hub) Broadcast(ev events.ChangeEvent) {
	msg := wireMessage{
		Type:      ev.Kind(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      ev.Payload,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal change event", "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	h.mu.RUnlock()

	for _, session := range sessions {
		session.trySend(data)
	}

	if len(sessions) > 0 {
		h.logger.Debug("change event broadcast", "type", msg.Type, "recipients", len(sessions))
	}
}

// SessionCount returns the number of registered sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// closeAll disconnects every session and closes the send channels so
// writer goroutines exit.
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, session := range h.sessions {
		close(session.send)
		if session.conn != nil {
			session.conn.Close()
		}
		delete(h.sessions, id)
	}
}

// upgrader configures the WebSocket upgrader. Origin checking is handled
// by the CORS middleware.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// handleWebSocket upgrades the connection and registers it with the hub.
// The endpoint is open: register terminals connect before any staff
// member has authenticated.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	session := s.hub.Register(conn)
	go session.writePump(s.wsCfg)
	go session.readPump(s.wsCfg)
}

// readPump consumes inbound frames. Clients are listen-only; inbound
// payloads are discarded, but the read loop detects closure and keeps
// the pong deadline fresh.
func (s *Session) readPump(cfg config.WebSocketConfig) {
	defer func() {
		s.hub.Unregister(s.id)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(int64(cfg.MaxMessageSize))
	deadline := time.Duration(cfg.PingInterval+cfg.PongTimeout) * time.Second
	//nolint:errcheck // Best-effort deadline on connection setup
	s.conn.SetReadDeadline(time.Now().Add(deadline))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(deadline))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.logger.Warn("websocket read error", "session_id", s.id, "error", err)
			} else {
				s.hub.logger.Debug("websocket closed", "session_id", s.id)
			}
			return
		}
		//nolint:errcheck // Best-effort deadline reset on any client traffic
		s.conn.SetReadDeadline(time.Now().Add(deadline))
	}
}

// writePump drains the send channel onto the wire and pings on an
// interval. A failed write tears down only this session.
func (s *Session) writePump(cfg config.WebSocketConfig) {
	ticker := time.NewTicker(time.Duration(cfg.PingInterval) * time.Second)
	writeWait := time.Duration(cfg.PongTimeout) * time.Second

	defer func() {
		ticker.Stop()
		s.hub.Unregister(s.id)
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				// Hub closed the channel.
				//nolint:errcheck // Best-effort close message
				s.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			//nolint:errcheck // Best-effort deadline; write error caught below
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // Best-effort deadline; ping error caught below
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
