package notifications

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// Hub maps userID -> active websocket connections and fans incoming
// notification events out to them.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
}

// Client is a single registered websocket connection.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Client]struct{})}
}

// Register adds a connection for a user. The returned handle must be passed
// back to Unregister when the connection closes.
func (h *Hub) Register(userID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	c := &Client{conn: conn}
	m[c] = struct{}{}
	h.totalConns++
	return c, nil
}

// Unregister removes a connection previously added with Register.
func (h *Hub) Unregister(userID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if m, ok := h.conns[userID]; ok {
		if _, exists := m[c]; exists {
			delete(m, c)
			h.totalConns--
		}
		if len(m) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Broadcast sends payload to every connection registered for userID.
// Write failures are ignored; the reader goroutine notices the dead
// connection and unregisters it.
func (h *Hub) Broadcast(userID, payload string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	data := []byte(payload)
	for _, c := range clients {
		if c.conn == nil {
			continue
		}
		c.writeMu.Lock()
		_ = c.conn.WriteMessage(websocket.TextMessage, data)
		c.writeMu.Unlock()
	}
}

// ConnectionCount reports the number of active connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

// StartWiring subscribes the hub to the notifier's Redis channels so events
// published by any instance reach this instance's websocket clients.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(userID, payload string) {
		h.Broadcast(userID, payload)
	})
}

// Shutdown closes every registered connection.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, m := range h.conns {
		for c := range m {
			if c.conn == nil {
				continue
			}
			c.writeMu.Lock()
			_ = c.conn.Close()
			c.writeMu.Unlock()
		}
		delete(h.conns, userID)
	}
	h.totalConns = 0
	return nil
}
