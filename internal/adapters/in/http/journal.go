package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type MessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}

type MarkReadRequest struct {
	Recipient string `json:"recipient"`
	ID        string `json:"id,omitempty"`
}

type MarkReadResponse struct {
	Marked int `json:"marked"`
}

// GetConversation handles GET /api/v1/drivers/:id/messages.
func (s *Server) GetConversation(ctx echo.Context) error {
	query, err := queries.NewGetConversationQuery(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.h.GetConversation.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// SendMessage handles POST /api/v1/messages.
func (s *Server) SendMessage(ctx echo.Context) error {
	var req MessageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSendMessageCommand(req.SenderID, req.ReceiverID, req.Text)
	if err != nil {
		return writeError(ctx, err)
	}

	m, err := s.h.SendMessage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewMessageView(m))
}

// GetNotifications handles GET /api/v1/notifications?recipient=admin&unread=true.
func (s *Server) GetNotifications(ctx echo.Context) error {
	unreadOnly := false
	if raw := ctx.QueryParam("unread"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest(ctx, "unread must be a boolean")
		}
		unreadOnly = parsed
	}

	query, err := queries.NewGetNotificationsQuery(ctx.QueryParam("recipient"), unreadOnly)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.h.GetNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationsRead handles POST /api/v1/notifications/read. Without an
// id every unread notification of the recipient is marked.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	var req MarkReadRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var id *kernel.UUID
	if req.ID != "" {
		parsed, err := kernel.UUIDFromString(req.ID)
		if err != nil {
			return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("notification id", err))
		}
		id = &parsed
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(req.Recipient, id)
	if err != nil {
		return writeError(ctx, err)
	}

	marked, err := s.h.MarkNotificationsRead.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, MarkReadResponse{Marked: marked})
}
