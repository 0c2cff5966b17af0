package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 2048

	sendBufferSize = 256
)

// Inbound frame types.
const (
	typePing           = "ping"
	typeLocationUpdate = "location_update"
	typeLocationError  = "location_error"
)

type incomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type locationUpdate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type locationError struct {
	Kind commands.LocationFailure `json:"kind"`
}

// Client is one websocket connection.
type Client struct {
	userID string
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte

	locations commands.UpdateDriverLocationCommandHandler
	failures  commands.ReportLocationFailureCommandHandler
	// reported holds the failure kinds already turned into a notification
	// during this session. Only the read pump touches it.
	reported map[commands.LocationFailure]bool
	logger   *slog.Logger
}

// ReadPump handles inbound frames until the connection fails.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("Websocket read failed", "error", err)
			}
			return
		}

		var msg incomingMessage
		if err = json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warn("Invalid frame", "error", err)
			continue
		}
		c.handle(ctx, msg)
	}
}

func (c *Client) handle(ctx context.Context, msg incomingMessage) {
	switch msg.Type {
	case typePing:
		c.reply(envelope{Type: TypePong, Data: map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)}})

	case typeLocationUpdate:
		if !isDriver(c.userID) {
			return
		}
		c.handleLocationUpdate(ctx, msg.Data)

	case typeLocationError:
		if !isDriver(c.userID) {
			return
		}
		c.handleLocationError(ctx, msg.Data)

	default:
		c.logger.Debug("Ignoring frame", "type", msg.Type)
	}
}

func (c *Client) handleLocationUpdate(ctx context.Context, data json.RawMessage) {
	var update locationUpdate
	if err := json.Unmarshal(data, &update); err != nil || update.Lat == nil || update.Lng == nil {
		c.logger.Warn("Invalid location update", "driver_id", c.userID)
		return
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(c.userID, *update.Lat, *update.Lng)
	if err != nil {
		c.logger.Warn("Rejected location update", "driver_id", c.userID, "error", err)
		return
	}
	if err = c.locations.Handle(ctx, cmd); err != nil {
		c.logger.Error("Failed to apply location update", "driver_id", c.userID, "error", err)
	}
}

func (c *Client) handleLocationError(ctx context.Context, data json.RawMessage) {
	var report locationError
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("Invalid location error", "driver_id", c.userID)
		return
	}

	cmd, err := commands.NewReportLocationFailureCommand(c.userID, report.Kind)
	if err != nil {
		c.logger.Warn("Rejected location error", "driver_id", c.userID, "error", err)
		return
	}

	if !report.Kind.IsPermanent() {
		c.logger.Info("Location fix timed out", "driver_id", c.userID)
		return
	}
	if c.reported[report.Kind] {
		return
	}

	if err = c.failures.Handle(ctx, cmd); err != nil {
		c.logger.Error("Failed to report location failure", "driver_id", c.userID, "error", err)
		return
	}
	c.reported[report.Kind] = true
	c.logger.Warn("Location unavailable", "driver_id", c.userID, "reason", report.Kind.Err())
}

func (c *Client) reply(frame envelope) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c.userID][c]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// WritePump writes queued frames and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
