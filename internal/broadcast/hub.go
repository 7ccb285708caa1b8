// Package broadcast fans out real-time alert events to connected WebSocket
// clients. Delivery is best effort: clients with a full send buffer are
// skipped and there is no replay.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

// Event is the wire shape pushed to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Publisher is the narrow interface services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Client represents a single WebSocket connection.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub tracks connected clients. All operations are thread-safe via
// sync.RWMutex.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logg    *logger.Logger
}

// NewHub creates a Hub ready to manage WebSocket clients.
func NewHub(logg *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logg:    logg,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}

// Publish marshals the event once and sends it to every connected client.
func (h *Hub) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		if h.logg != nil {
			h.logg.Error(ctx, "broadcast.marshal", err)
		}
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
