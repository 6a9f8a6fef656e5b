package server

import (
	"net"
	"sync"

	"go.uber.org/zap"
)

// Client represents a connected console.
type Client struct {
	ID       string
	Conn     net.Conn
	Outgoing chan []byte
}

// Hub tracks connected consoles and fans encoded events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client from the hub. The client's outgoing
// channel must only be closed after Unregister returns, so no
// broadcast can still be writing to it.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues data for every connected client. Clients with a
// full outgoing channel are skipped rather than blocking the rest.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Outgoing <- data:
		default:
			h.logger.Warn("client channel full, skipping", zap.String("client", c.ID))
		}
	}
}

// CloseAll closes every client connection. The per-client read loops
// observe the closed connections and clean up.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		c.Conn.Close()
	}
}
