package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lorrc/support-analytics/internal/core/domain"
	"github.com/lorrc/support-analytics/internal/core/ports"
)

// Hub maintains the set of active Clients and delivers in-app
// notifications to them by device token.
type Hub struct {
	// devices maps device tokens to their active connections
	// A single device token can have multiple connections (multiple tabs)
	devices map[string]map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// done is closed when Run returns
	done chan struct{}

	// mu protects the devices map
	mu sync.RWMutex

	logger *slog.Logger
}

var _ ports.InAppBroadcaster = (*Hub)(nil)

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		devices:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With("component", "websocket_hub"),
	}
}

// Run starts the hub's registration loop until ctx is cancelled, then
// closes every remaining client. This MUST be run as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		}
	}
}

// Add hands a new client to the Run loop. It reports false when the hub
// has already stopped; the caller then owns the connection.
func (h *Hub) Add(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// unregister hands client to the Run loop, or closes it directly once the
// hub has stopped.
func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
		client.CloseSend()
	}
}

// DeliverToDevice queues n for every connection registered with the
// device token. Connections with a full buffer are skipped.
func (h *Hub) DeliverToDevice(deviceToken string, n domain.InAppNotification) int {
	h.mu.RLock()
	conns, ok := h.devices[deviceToken]
	if !ok {
		h.mu.RUnlock()
		return 0
	}

	// Copy client list
	clients := make([]*Client, 0, len(conns))
	for client := range conns {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, client := range clients {
		if client.enqueue(n) {
			delivered++
			continue
		}
		h.logger.Warn("client send buffer full, dropping notification",
			"user_id", client.UserID,
			"message_id", n.MessageID,
		)
	}
	return delivered
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.devices[client.DeviceToken] == nil {
		h.devices[client.DeviceToken] = make(map[*Client]bool)
	}
	h.devices[client.DeviceToken][client] = true

	h.logger.Info("client registered",
		"user_id", client.UserID,
		"device_connections", len(h.devices[client.DeviceToken]),
	)
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.devices[client.DeviceToken]; ok {
		if _, exists := conns[client]; exists {
			delete(conns, client)
			if len(conns) == 0 {
				delete(h.devices, client.DeviceToken)
			}
		}
	}

	client.CloseSend()

	h.logger.Info("client unregistered",
		"user_id", client.UserID,
	)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for token, conns := range h.devices {
		for client := range conns {
			client.CloseSend()
		}
		delete(h.devices, token)
	}
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, conns := range h.devices {
		count += len(conns)
	}
	return count
}

// IsDeviceConnected checks if a device token has any active connections
func (h *Hub) IsDeviceConnected(deviceToken string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.devices[deviceToken]
	return ok && len(conns) > 0
}
