package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/labstack/echo/v4"
)

type VehicleRequest struct {
	Type       string `json:"type"`
	Plate      string `json:"plate"`
	CapacityKg int    `json:"capacityKg"`
	Fuel       string `json:"fuel"`
}

type NewDriverRequest struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Vehicle     VehicleRequest `json:"vehicle"`
	DeviceToken string         `json:"deviceToken"`
}

type DriverStatusRequest struct {
	Status string `json:"status"`
}

type CoPilotRequest struct {
	History []ports.CoPilotTurn `json:"history"`
}

// RouteResponse is the outcome of a route optimisation.
type RouteResponse struct {
	Orders    []queries.OrderView    `json:"orders"`
	Waypoints []queries.LocationView `json:"waypoints"`
	TotalKm   float64                `json:"totalKm"`
}

func newRouteResponse(route services.SequencedRoute) RouteResponse {
	response := RouteResponse{
		Orders:    orderViews(route.Orders),
		Waypoints: make([]queries.LocationView, 0, len(route.Waypoints)),
		TotalKm:   route.TotalKm,
	}
	for _, w := range route.Waypoints {
		response.Waypoints = append(response.Waypoints, queries.NewLocationView(w))
	}
	return response
}

// RegisterDriver handles POST /api/v1/drivers - signs up a Pending driver.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var req NewDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRegisterDriverCommand(req.Name, req.Email, commands.VehicleInput{
		Type:       req.Vehicle.Type,
		Plate:      req.Vehicle.Plate,
		CapacityKg: req.Vehicle.CapacityKg,
		Fuel:       req.Vehicle.Fuel,
	}, req.DeviceToken)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.h.RegisterDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewDriverView(d))
}

// ApproveDriver handles POST /api/v1/drivers/:id/approve.
func (s *Server) ApproveDriver(ctx echo.Context) error {
	return s.changeAccount(ctx, commands.ApproveAccount)
}

// RejectDriver handles POST /api/v1/drivers/:id/reject.
func (s *Server) RejectDriver(ctx echo.Context) error {
	return s.changeAccount(ctx, commands.RejectAccount)
}

// DeleteDriver handles DELETE /api/v1/drivers/:id. InProgress orders go back to Pending.
func (s *Server) DeleteDriver(ctx echo.Context) error {
	return s.changeAccount(ctx, commands.DeleteAccount)
}

func (s *Server) changeAccount(ctx echo.Context, action commands.AccountAction) error {
	cmd, err := commands.NewChangeDriverAccountCommand(ctx.Param("id"), action)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.ChangeDriverAccount.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeDriverStatus handles POST /api/v1/drivers/:id/status.
func (s *Server) ChangeDriverStatus(ctx echo.Context) error {
	var req DriverStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := driver.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewChangeDriverStatusCommand(ctx.Param("id"), status)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.h.ChangeDriverStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewDriverView(d))
}

// OptimizeRoute handles POST /api/v1/drivers/:id/route/optimize.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	cmd, err := commands.NewOptimizeRouteCommand(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	route, err := s.h.OptimizeRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newRouteResponse(route))
}

// GetDriverHistory handles GET /api/v1/drivers/:id/history.
func (s *Server) GetDriverHistory(ctx echo.Context) error {
	query, err := queries.NewGetDriverHistoryQuery(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.h.GetDriverHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AskCoPilot handles POST /api/v1/drivers/:id/copilot.
func (s *Server) AskCoPilot(ctx echo.Context) error {
	var req CoPilotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAskCoPilotCommand(ctx.Param("id"), req.History)
	if err != nil {
		return writeError(ctx, err)
	}

	answer, err := s.h.AskCoPilot.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, answer)
}
