package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type ItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type NewOrderRequest struct {
	CustomerName    string        `json:"customerName"`
	PickupAddress   string        `json:"pickupAddress"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Items           []ItemRequest `json:"items"`
}

func (r NewOrderRequest) command() (commands.CreateOrderCommand, error) {
	items := make([]commands.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, commands.ItemInput{Name: item.Name, Quantity: item.Quantity})
	}
	return commands.NewCreateOrderCommand(r.CustomerName, r.PickupAddress, r.DeliveryAddress, items)
}

type NewOrdersRequest struct {
	Orders []NewOrderRequest `json:"orders"`
}

type AssignOrderRequest struct {
	DriverID string `json:"driverId"`
}

type OrderStatusRequest struct {
	Status string `json:"status"`
}

type ProofOfDeliveryRequest struct {
	Signature string `json:"signature"`
	PhotoURL  string `json:"photoUrl"`
	Notes     string `json:"notes"`
}

type RatingRequest struct {
	Rating int `json:"rating"`
}

type InstructionRequest struct {
	Text string `json:"text"`
}

// CreateOrder handles POST /api/v1/orders - creates a Pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := req.command()
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, queries.NewOrderView(o))
}

// CreateOrders handles POST /api/v1/orders/bulk - creates all orders or none.
func (s *Server) CreateOrders(ctx echo.Context) error {
	var req NewOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	batch := make([]commands.CreateOrderCommand, 0, len(req.Orders))
	for _, r := range req.Orders {
		cmd, err := r.command()
		if err != nil {
			return writeError(ctx, err)
		}
		batch = append(batch, cmd)
	}
	cmd, err := commands.NewCreateOrdersCommand(batch)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.h.CreateOrder.HandleBatch(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, orderViews(created))
}

// AssignOrder handles POST /api/v1/orders/:id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignOrderCommand(ctx.Param("id"), req.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.AssignOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// UpdateOrderStatus handles POST /api/v1/orders/:id/status with Delivered or Failed.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	var req OrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(ctx.Param("id"), status)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// SubmitProofOfDelivery handles POST /api/v1/orders/:id/proof.
func (s *Server) SubmitProofOfDelivery(ctx echo.Context) error {
	var req ProofOfDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSubmitProofOfDeliveryCommand(ctx.Param("id"), req.Signature, req.PhotoURL, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.SubmitProofOfDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// RateDelivery handles POST /api/v1/orders/:id/rating.
func (s *Server) RateDelivery(ctx echo.Context) error {
	var req RatingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRateDeliveryCommand(ctx.Param("id"), req.Rating)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.RateDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// AddCustomerInstruction handles POST /api/v1/orders/:id/instructions.
func (s *Server) AddCustomerInstruction(ctx echo.Context) error {
	var req InstructionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddCustomerInstructionCommand(ctx.Param("id"), req.Text)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.h.AddCustomerInstruction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, queries.NewOrderView(o))
}

// SmartAssign handles POST /api/v1/dispatch/smart-assign.
func (s *Server) SmartAssign(ctx echo.Context) error {
	result, err := s.h.SmartAssign.Handle(ctx.Request().Context(), commands.NewSmartAssignCommand())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, result)
}

func orderViews(orders []*order.Order) []queries.OrderView {
	views := make([]queries.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, queries.NewOrderView(o))
	}
	return views
}
