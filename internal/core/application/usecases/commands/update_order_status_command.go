package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand closes an InProgress order as Delivered or Failed.
// Any other target status is rejected by the handler as an invalid transition.
type UpdateOrderStatusCommand struct {
	orderID string
	status  order.Status

	guard guard.ConstructorGuard
}

func NewUpdateOrderStatusCommand(orderID string, status order.Status) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		orderID: strings.TrimSpace(orderID),
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderID == "" {
		errList = append(errList, ErrOrderIDIsRequired)
	}
	errList = append(errList, status.Validate())
	if err := errors.Join(errList...); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() string {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}
