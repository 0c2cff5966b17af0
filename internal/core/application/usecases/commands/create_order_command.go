package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCreateOrdersCommandIsNotConstructed = errors.New(
		"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
	)
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("orders")
)

// ItemInput is one line of an order as submitted by the dispatcher.
type ItemInput struct {
	Name     string
	Quantity int
}

// CreateOrderCommand represents a request to create a new delivery order.
// Addresses are geocoded by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    "Oficina Legal Diaz",
//	    "Av. Corrientes 1234, CABA",
//	    "Florida 550, CABA",
//	    []ItemInput{{Name: "Documents", Quantity: 1}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	customerName    string
	pickupAddress   string
	deliveryAddress string
	items           []ItemInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that the customer, both addresses and at
// least one item are present. Item quantities are checked by the domain.
func NewCreateOrderCommand(customerName, pickupAddress, deliveryAddress string, items []ItemInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName:    strings.TrimSpace(customerName),
		pickupAddress:   strings.TrimSpace(pickupAddress),
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		items:           append([]ItemInput(nil), items...),
		guard:           guard.NewConstructorGuard(),
	}

	var errList []error
	if cmd.customerName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer name"))
	}
	if cmd.pickupAddress == "" || cmd.deliveryAddress == "" {
		errList = append(errList, ErrAddressIsRequired)
	}
	if len(cmd.items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

// CreateOrdersCommand creates several orders at once. Either every order is
// created or none is.
type CreateOrdersCommand struct {
	orders []CreateOrderCommand

	guard guard.ConstructorGuard
}

func NewCreateOrdersCommand(orders []CreateOrderCommand) (CreateOrdersCommand, error) {
	if len(orders) == 0 {
		return CreateOrdersCommand{}, ErrOrdersAreRequired
	}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return CreateOrdersCommand{}, err
		}
	}
	return CreateOrdersCommand{
		orders: append([]CreateOrderCommand(nil), orders...),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

func (c CreateOrdersCommand) Orders() []CreateOrderCommand {
	return append([]CreateOrderCommand(nil), c.orders...)
}
