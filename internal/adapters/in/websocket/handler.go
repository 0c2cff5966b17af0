package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LiveTracker marks drivers whose positions come from a device.
type LiveTracker interface {
	Acquire(driverID string)
	Release(driverID string)
}

// Handler upgrades /ws requests.
type Handler struct {
	hub       *Hub
	live      LiveTracker
	locations commands.UpdateDriverLocationCommandHandler
	failures  commands.ReportLocationFailureCommandHandler
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

func NewHandler(
	hub *Hub,
	live LiveTracker,
	locations commands.UpdateDriverLocationCommandHandler,
	failures commands.ReportLocationFailureCommandHandler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:       hub,
		live:      live,
		locations: locations,
		failures:  failures,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// No authentication in this service, any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "websocket"),
	}
}

// Serve blocks for the lifetime of the connection. A driver connection keeps
// the driver live-tracked until it closes.
func (h *Handler) Serve(c echo.Context) error {
	userID := strings.TrimSpace(c.QueryParam("user"))
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user query parameter is required")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return nil
	}

	client := &Client{
		userID:    userID,
		conn:      conn,
		hub:       h.hub,
		send:      make(chan []byte, sendBufferSize),
		locations: h.locations,
		failures:  h.failures,
		reported:  make(map[commands.LocationFailure]bool),
		logger:    h.logger.With("user", userID),
	}
	h.hub.register(client)

	if isDriver(userID) {
		h.live.Acquire(userID)
		defer h.live.Release(userID)
	}

	go client.WritePump()
	client.ReadPump(context.WithoutCancel(c.Request().Context()))
	return nil
}
