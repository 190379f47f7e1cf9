package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// stateMessage is pushed to every live client when the engine notifies a
// state change.
type stateMessage struct {
	Type   string   `json:"type"`
	States []string `json:"states"`
}

// hub tracks live WebSocket clients and fans state changes out to them.
type hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		clients: make(map[*client]struct{}),
		logger:  logger,
	}
}

func (h *hub) add(conn *websocket.Conn) *client {
	c := &client{
		hub:  h,
		conn: conn,
		out:  make(chan stateMessage, 8),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.out)
	}
	h.mu.Unlock()
}

// broadcast queues the new state on every client. A client whose queue is
// full is dropped rather than allowed to stall the engine's notification.
func (h *hub) broadcast(paths []string) {
	msg := stateMessage{Type: "stateChanged", States: paths}
	h.mu.Lock()
	var stalled []*client
	for c := range h.clients {
		select {
		case c.out <- msg:
		default:
			stalled = append(stalled, c)
		}
	}
	for _, c := range stalled {
		delete(h.clients, c)
		close(c.out)
	}
	h.mu.Unlock()
	if len(stalled) > 0 {
		h.logger.Warn("dropped stalled live clients", "count", len(stalled))
	}
}

func (h *hub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.out)
	}
	h.mu.Unlock()
}

const writeWait = 10 * time.Second

// client is one live WebSocket connection.
type client struct {
	hub  *hub
	conn *websocket.Conn
	out  chan stateMessage
}

// send queues one message, dropping it if the client is stalled.
func (c *client) send(states []string) {
	select {
	case c.out <- stateMessage{Type: "stateChanged", States: states}:
	default:
	}
}

// writePump drains the outbound queue onto the connection. It exits when the
// hub closes the queue or a write fails.
func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.out {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.hub.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readPump discards inbound messages; the live socket is one-directional.
// Reading is still required to notice the peer closing.
func (c *client) readPump() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				c.hub.logger.Debug("live client read error", "error", err)
			}
			c.hub.remove(c)
			return
		}
	}
}
