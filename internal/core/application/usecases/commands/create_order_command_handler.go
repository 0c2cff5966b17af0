package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// maxIDAttempts bounds the retries when a generated id is already taken.
const maxIDAttempts = 16

var ErrIDSpaceExhausted = errors.New("could not generate a unique identifier")

// CreateOrderCommandHandler creates Pending orders with geocoded addresses.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// o is Pending and waits for assignment
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle creates a single order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	batch, err := NewCreateOrdersCommand([]CreateOrderCommand{cmd})
	if err != nil {
		return nil, err
	}

	created, err := h.HandleBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// HandleBatch creates every order of cmd in one transaction.
func (h CreateOrderCommandHandler) HandleBatch(ctx context.Context, cmd CreateOrdersCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := h.clock.Now()

	created := make([]*order.Order, 0, len(cmd.orders))
	for i, c := range cmd.orders {
		o, err := h.newOrder(ctx, orderRepo, c, now)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i+1, err)
		}
		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
		created = append(created, o)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (h CreateOrderCommandHandler) newOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	cmd CreateOrderCommand,
	now time.Time,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	pickup, err := kernel.NewAddress(cmd.PickupAddress())
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewAddress(cmd.DeliveryAddress())
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(cmd.items))
	for _, in := range cmd.items {
		item, itemErr := order.NewItem(in.Name, in.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	id, err := uniqueID(ctx, order.NewID, func(ctx context.Context, id string) error {
		_, getErr := repo.Get(ctx, id)
		return getErr
	})
	if err != nil {
		return nil, err
	}

	return order.NewOrder(id, cmd.CustomerName(), pickup, delivery, items, now)
}

// uniqueID draws ids until lookup reports one as not found.
func uniqueID(ctx context.Context, next func() string, lookup func(context.Context, string) error) (string, error) {
	for range maxIDAttempts {
		id := next()
		err := lookup(ctx, id)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrIDSpaceExhausted
}
