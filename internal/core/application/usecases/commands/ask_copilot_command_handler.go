package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Functions the co-pilot may call.
const (
	FuncGetNextStop              = "getNextStop"
	FuncOptimizeMyRoute          = "optimizeMyRoute"
	FuncReadCustomerInstructions = "readCustomerInstructions"
	FuncMarkOrderAsDelivered     = "markOrderAsDelivered"
	FuncSendMessageToDispatch    = "sendMessageToDispatch"
)

const unsupportedActionReply = "Sorry, I cannot perform that action."

// CoPilotAnswer is what the driver sees. Action names the executed function,
// if any; OrderID is set when the driver must confirm a delivery for that order.
type CoPilotAnswer struct {
	Text    string `json:"text"`
	Action  string `json:"action,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// AskCoPilotCommandHandler converses with the co-pilot oracle on behalf of a driver.
//
// The oracle never changes state. Function calls it returns are executed
// here against current state: route optimisation and messages go through the
// regular command handlers, and delivery is only prepared since it needs a
// proof of delivery from the driver.
type AskCoPilotCommandHandler struct {
	uowFactory UoWFactory
	oracle     ports.CoPilotOracle
	timeout    time.Duration
	optimize   OptimizeRouteCommandHandler
	messages   SendMessageCommandHandler
}

func NewAskCoPilotCommandHandler(
	uowFactory UoWFactory,
	oracle ports.CoPilotOracle,
	timeout time.Duration,
	optimize OptimizeRouteCommandHandler,
	messages SendMessageCommandHandler,
) AskCoPilotCommandHandler {
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return AskCoPilotCommandHandler{
		uowFactory: uowFactory,
		oracle:     oracle,
		timeout:    timeout,
		optimize:   optimize,
		messages:   messages,
	}
}

func (h AskCoPilotCommandHandler) Handle(ctx context.Context, cmd AskCoPilotCommand) (CoPilotAnswer, error) {
	if err := cmd.Validate(); err != nil {
		return CoPilotAnswer{}, err
	}

	fleet, err := h.buildContext(ctx, cmd.DriverID())
	if err != nil {
		return CoPilotAnswer{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	reply, err := h.oracle.Converse(callCtx, fleet, cmd.History())
	if err != nil {
		if errors.Is(err, errs.ErrOracleUnavailable) {
			return CoPilotAnswer{}, err
		}
		return CoPilotAnswer{}, errs.NewOracleUnavailableError("copilot", err)
	}

	if reply.FunctionCall == nil {
		return CoPilotAnswer{Text: reply.Text}, nil
	}
	return h.execute(ctx, fleet, *reply.FunctionCall)
}

// buildContext reads the driver and its stops in visiting order. The
// transaction is released before the oracle is called.
func (h AskCoPilotCommandHandler) buildContext(ctx context.Context, driverID string) (ports.CoPilotContext, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.CoPilotContext{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DriverRepository().Get(ctx, driverID)
	if err != nil {
		return ports.CoPilotContext{}, err
	}

	active, err := uow.OrderRepository().GetActiveByDriver(ctx, driverID)
	if err != nil {
		return ports.CoPilotContext{}, err
	}

	fleet := ports.CoPilotContext{
		DriverID:   d.ID(),
		DriverName: d.Name(),
		Status:     d.Status().String(),
		Location:   d.Location(),
		Stops:      make([]ports.CoPilotStop, 0, len(active)),
	}
	for _, o := range active {
		fleet.Stops = append(fleet.Stops, ports.CoPilotStop{
			OrderID:         o.ID(),
			CustomerName:    o.CustomerName(),
			DeliveryAddress: o.Delivery().Text(),
			Instructions:    o.Instructions(),
		})
	}
	return fleet, nil
}

func (h AskCoPilotCommandHandler) execute(
	ctx context.Context,
	fleet ports.CoPilotContext,
	call ports.FunctionCall,
) (CoPilotAnswer, error) {
	answer := CoPilotAnswer{Action: call.Name}

	var next *ports.CoPilotStop
	if len(fleet.Stops) > 0 {
		next = &fleet.Stops[0]
	}

	switch call.Name {
	case FuncGetNextStop:
		if next == nil {
			answer.Text = "You have no more stops on your current route."
			break
		}
		answer.Text = fmt.Sprintf("Your next stop is %s for customer %s.", next.DeliveryAddress, next.CustomerName)

	case FuncOptimizeMyRoute:
		if len(fleet.Stops) <= 1 {
			answer.Text = "No need to optimize, you have one delivery left or none."
			break
		}
		cmd, err := NewOptimizeRouteCommand(fleet.DriverID)
		if err != nil {
			return CoPilotAnswer{}, err
		}
		route, err := h.optimize.Handle(ctx, cmd)
		if err != nil {
			return CoPilotAnswer{}, err
		}
		answer.Text = fmt.Sprintf("Done, your route has been optimized: %d stops, %.1f km.", len(route.Orders), route.TotalKm)

	case FuncReadCustomerInstructions:
		switch {
		case next == nil:
			answer.Text = "There is no active order to read instructions for."
		case next.Instructions == "":
			answer.Text = fmt.Sprintf("There are no special instructions for %s's order.", next.CustomerName)
		default:
			answer.Text = next.Instructions
		}

	case FuncMarkOrderAsDelivered:
		if next == nil {
			answer.Text = "There is no active order to mark as delivered."
			break
		}
		answer.OrderID = next.OrderID
		answer.Text = fmt.Sprintf("Ok, opening the delivery confirmation for order %s. Please add a signature or a photo.", next.OrderID)

	case FuncSendMessageToDispatch:
		text, _ := call.Args["message"].(string)
		if text == "" {
			answer.Text = "I did not understand the message you wanted to send."
			break
		}
		cmd, err := NewSendMessageCommand(fleet.DriverID, journal.Admin, text)
		if err != nil {
			return CoPilotAnswer{}, err
		}
		if _, err = h.messages.Handle(ctx, cmd); err != nil {
			return CoPilotAnswer{}, err
		}
		answer.Text = fmt.Sprintf("Ok, I sent the message %q to dispatch.", text)

	default:
		return CoPilotAnswer{Text: unsupportedActionReply}, nil
	}

	return answer, nil
}
