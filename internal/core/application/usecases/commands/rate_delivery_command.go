package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand stores the customer's rating of a delivered order.
type RateDeliveryCommand struct {
	orderID string
	rating  int

	guard guard.ConstructorGuard
}

func NewRateDeliveryCommand(orderID string, rating int) (RateDeliveryCommand, error) {
	cmd := RateDeliveryCommand{
		orderID: strings.TrimSpace(orderID),
		rating:  rating,
		guard:   guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.orderID == "" {
		errList = append(errList, ErrOrderIDIsRequired)
	}
	if rating < order.MinRating || rating > order.MaxRating {
		errList = append(errList, errs.NewValueIsOutOfRangeError("rating", rating, order.MinRating, order.MaxRating))
	}
	if err := errors.Join(errList...); err != nil {
		return RateDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

func (c RateDeliveryCommand) OrderID() string {
	return c.orderID
}

func (c RateDeliveryCommand) Rating() int {
	return c.rating
}
