// Package hub keeps the registry of authenticated live dashboard connections
// and fans server events out to them.
//
// Broadcast is fire-and-forget: it never blocks on a slow peer and keeps no
// backlog. A connection whose buffer is full is dropped, and a peer that was
// not connected at broadcast time misses the event until it re-fetches a snapshot.
package hub

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/metrics"
)

// ErrClosed is returned by Register after Close.
var ErrClosed = errors.New("hub is closed")

// Connection is one registered live connection, tagged with the session that opened it.
type Connection struct {
	ID        string
	SessionID string
	Username  string
	Conn      *websocket.Conn
	Send      chan []byte

	// mu serialises writes on Conn between the write pump and close frames.
	mu sync.Mutex
}

// Hub manages all live connections.
type Hub struct {
	mu sync.RWMutex

	// Connections indexed by connection ID
	connections map[string]*Connection

	// Sessions maps session ID to its connections
	sessions map[string]map[string]*Connection

	sendBuffer int
	closed     bool
}

func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}

	return &Hub{
		connections: make(map[string]*Connection),
		sessions:    make(map[string]map[string]*Connection),
		sendBuffer:  sendBuffer,
	}
}

// NewConnection wraps ws for the given session. It is not registered yet.
func (h *Hub) NewConnection(ws *websocket.Conn, session *domain.Session) *Connection {
	return &Connection{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Username:  session.Username,
		Conn:      ws,
		Send:      make(chan []byte, h.sendBuffer),
	}
}

func (h *Hub) Register(conn *Connection) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	h.connections[conn.ID] = conn
	if h.sessions[conn.SessionID] == nil {
		h.sessions[conn.SessionID] = make(map[string]*Connection)
	}
	h.sessions[conn.SessionID][conn.ID] = conn

	metrics.LiveConnections.Set(float64(len(h.connections)))
	logger.Infof("Live connection registered: %s (user: %s, total: %d)", conn.ID, conn.Username, len(h.connections))

	return nil
}

// Unregister removes conn and closes its Send channel. Safe to call more than once.
func (h *Hub) Unregister(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeLocked(conn) {
		logger.Infof("Live connection unregistered: %s (total: %d)", conn.ID, len(h.connections))
	}
}

func (h *Hub) removeLocked(conn *Connection) bool {
	if _, ok := h.connections[conn.ID]; !ok {
		return false
	}

	delete(h.connections, conn.ID)
	if conns := h.sessions[conn.SessionID]; conns != nil {
		delete(conns, conn.ID)
		if len(conns) == 0 {
			delete(h.sessions, conn.SessionID)
		}
	}
	close(conn.Send)

	metrics.LiveConnections.Set(float64(len(h.connections)))
	return true
}

// Broadcast delivers the event to every registered connection without
// blocking. The only error is a payload that cannot be marshalled.
func (h *Hub) Broadcast(eventType string, payload any) error {
	event, err := domain.NewEvent(eventType, payload)
	if err != nil {
		return err
	}

	data, err := marshalEvent(event)
	if err != nil {
		return err
	}

	var slow []*Connection

	h.mu.RLock()
	for _, conn := range h.connections {
		select {
		case conn.Send <- data:
		default:
			slow = append(slow, conn)
		}
	}
	delivered := len(h.connections) - len(slow)
	h.mu.RUnlock()

	for _, conn := range slow {
		logger.Warnf("Live connection %s buffer full, dropping", conn.ID)
		metrics.DroppedConnections.Inc()
		h.Unregister(conn)
	}

	metrics.Broadcasts.WithLabelValues(eventType).Inc()
	logger.Debugf("Broadcast %s to %d connection(s)", eventType, delivered)

	return nil
}

// CloseSession drops every connection opened by sessionID. Used on logout.
func (h *Hub) CloseSession(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	closed := 0
	for _, conn := range h.sessions[sessionID] {
		if h.removeLocked(conn) {
			closed++
		}
	}

	if closed > 0 {
		logger.Infof("Closed %d live connection(s) for ended session", closed)
	}
	return closed
}

// Close drops all connections and rejects further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, conn := range h.connections {
		h.removeLocked(conn)
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// SessionCount returns the number of sessions with at least one connection.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
