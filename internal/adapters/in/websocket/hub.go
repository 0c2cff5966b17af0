// Package websocket pushes committed notifications and messages to connected
// dashboards and driver apps, and takes live positions from drivers.
//
// Clients connect to /ws?user=admin or /ws?user=<driverId>. Every outbound
// frame is a JSON envelope {"type": ..., "data": ...}.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/ports"
)

// Outbound frame types.
const (
	TypeNotification = "notification"
	TypeMessage      = "message"
	TypePong         = "pong"
)

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub keeps the open connections per user. It implements ports.EventPublisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  logger.With("component", "websocket_hub"),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
	h.logger.Info("Client connected", "user", c.userID, "connections", len(set))
}

// unregister is safe to call more than once.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok = set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	h.logger.Info("Client disconnected", "user", c.userID, "connections", len(set))
}

// Publish delivers notifications to their recipient and messages to both
// parties of the conversation. Slow clients lose frames instead of blocking.
func (h *Hub) Publish(_ context.Context, batch ports.CommittedBatch) {
	for _, n := range batch.Notifications {
		h.sendTo(TypeNotification, queries.NewNotificationView(n), n.Recipient())
	}
	for _, m := range batch.Messages {
		h.sendTo(TypeMessage, queries.NewMessageView(m), m.SenderID(), m.ReceiverID())
	}
}

func (h *Hub) sendTo(frameType string, data any, userIDs ...string) {
	payload, err := json.Marshal(envelope{Type: frameType, Data: data})
	if err != nil {
		h.logger.Error("Failed to marshal frame", "error", err, "type", frameType)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		for c := range h.clients[userID] {
			select {
			case c.send <- payload:
			default:
				h.logger.Warn("Client buffer full, dropping frame", "user", userID, "type", frameType)
			}
		}
	}
}

// IsConnected reports whether the user has at least one open connection.
func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

// Run blocks until ctx is cancelled and then closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
	return nil
}

func isDriver(userID string) bool {
	return userID != journal.Admin
}
