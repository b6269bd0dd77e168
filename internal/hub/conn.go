package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/internal/domain"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

func marshalEvent(event domain.Event) ([]byte, error) {
	return json.Marshal(event)
}

// WriteMessage writes a frame with the connection's write lock held.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Serve runs the connection until the peer goes away or the hub drops it.
// The caller has already registered conn.
func (h *Hub) Serve(conn *Connection, cfg environments.RealtimeConfig) {
	go h.writePump(conn, cfg)
	h.readPump(conn, cfg)
}

// readPump only watches for pongs and disconnects; dashboards send nothing
// the server acts on.
func (h *Hub) readPump(conn *Connection, cfg environments.RealtimeConfig) {
	defer func() {
		h.Unregister(conn)
		_ = conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(cfg.MaxMessageSize)
	_ = conn.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		return conn.Conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("Live connection %s read error: %v", conn.ID, err)
			}
			return
		}
	}
}

func (h *Hub) writePump(conn *Connection, cfg environments.RealtimeConfig) {
	ticker := time.NewTicker(cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if !ok {
				// Hub closed the channel
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warnf("Live connection %s write failed: %v", conn.ID, err)
				return
			}

		case <-ticker.C:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
