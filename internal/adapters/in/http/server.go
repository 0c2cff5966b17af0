// Package http exposes the dispatch use cases as a JSON API on echo.
//
// Handlers translate requests into commands and queries, and map the error
// taxonomy of internal/pkg/errs onto status codes:
//
//	ObjectNotFound          404
//	InvalidTransition       409
//	MissingEvidence         422
//	validation errors       400
//	OracleUnavailable       502
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder            commands.CreateOrderCommandHandler
	AssignOrder            commands.AssignOrderCommandHandler
	UpdateOrderStatus      commands.UpdateOrderStatusCommandHandler
	SubmitProofOfDelivery  commands.SubmitProofOfDeliveryCommandHandler
	RateDelivery           commands.RateDeliveryCommandHandler
	AddCustomerInstruction commands.AddCustomerInstructionCommandHandler
	SmartAssign            commands.SmartAssignCommandHandler
	RegisterDriver         commands.RegisterDriverCommandHandler
	ChangeDriverAccount    commands.ChangeDriverAccountCommandHandler
	ChangeDriverStatus     commands.ChangeDriverStatusCommandHandler
	OptimizeRoute          commands.OptimizeRouteCommandHandler
	SendMessage            commands.SendMessageCommandHandler
	MarkNotificationsRead  commands.MarkNotificationsReadCommandHandler
	AskCoPilot             commands.AskCoPilotCommandHandler

	GetFleet         queries.GetFleetQueryHandler
	GetDriverHistory queries.GetDriverHistoryQueryHandler
	GetConversation  queries.GetConversationQueryHandler
	GetNotifications queries.GetNotificationsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/fleet", s.GetFleet)

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/bulk", s.CreateOrders)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/proof", s.SubmitProofOfDelivery)
	api.POST("/orders/:id/rating", s.RateDelivery)
	api.POST("/orders/:id/instructions", s.AddCustomerInstruction)
	api.POST("/dispatch/smart-assign", s.SmartAssign)

	api.POST("/drivers", s.RegisterDriver)
	api.POST("/drivers/:id/approve", s.ApproveDriver)
	api.POST("/drivers/:id/reject", s.RejectDriver)
	api.DELETE("/drivers/:id", s.DeleteDriver)
	api.POST("/drivers/:id/status", s.ChangeDriverStatus)
	api.POST("/drivers/:id/route/optimize", s.OptimizeRoute)
	api.GET("/drivers/:id/history", s.GetDriverHistory)
	api.GET("/drivers/:id/messages", s.GetConversation)
	api.POST("/drivers/:id/copilot", s.AskCoPilot)

	api.POST("/messages", s.SendMessage)
	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/read", s.MarkNotificationsRead)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetFleet handles GET /api/v1/fleet - all drivers and orders.
func (s *Server) GetFleet(ctx echo.Context) error {
	response, err := s.h.GetFleet.Handle(ctx.Request().Context(), queries.NewGetFleetQuery())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}
