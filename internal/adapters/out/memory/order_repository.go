package memory

import (
	"context"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r orderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.lookupOrder(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%s already exists", aggregate.ID()))
	}

	r.uow.orders[aggregate.ID()] = aggregate.Clone()
	r.uow.newOrderIDs = append(r.uow.newOrderIDs, aggregate.ID())
	return nil
}

func (r orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.lookupOrder(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.uow.orders[aggregate.ID()] = aggregate.Clone()
	return nil
}

func (r orderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	o, ok := r.uow.lookupOrder(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o.Clone(), nil
}

func (r orderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.filter(ctx, func(o *order.Order) bool {
		return o.Status() == status
	})
}

func (r orderRepository) GetActiveByDriver(ctx context.Context, driverID string) ([]*order.Order, error) {
	return r.filter(ctx, func(o *order.Order) bool {
		return o.Status() == order.InProgress && o.IsAssignedTo(driverID)
	})
}

// Resequence validates that every id is an active order of driverID.
func (r orderRepository) Resequence(ctx context.Context, driverID string, orderedIDs []string) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	for _, id := range orderedIDs {
		o, ok := r.uow.lookupOrder(id)
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		if !o.IsAssignedTo(driverID) {
			return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%s is not assigned to %s", id, driverID))
		}
	}
	r.uow.resequences = append(r.uow.resequences, slices.Clone(orderedIDs))
	return nil
}

func (r orderRepository) filter(ctx context.Context, keep func(*order.Order) bool) ([]*order.Order, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	out := make([]*order.Order, 0)
	for _, id := range r.uow.orderIDs() {
		o, _ := r.uow.lookupOrder(id)
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r orderRepository) check(ctx context.Context) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	return ctx.Err()
}
