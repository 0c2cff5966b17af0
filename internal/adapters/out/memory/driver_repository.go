package memory

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/pkg/errs"
)

type driverRepository struct {
	uow *UnitOfWork
}

func (r driverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.lookupDriver(aggregate.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%s already exists", aggregate.ID()))
	}
	if _, deleted := r.uow.deletedDrivers[aggregate.ID()]; deleted {
		return errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%s was deleted in this transaction", aggregate.ID()))
	}

	r.uow.drivers[aggregate.ID()] = aggregate.Clone()
	r.uow.newDriverIDs = append(r.uow.newDriverIDs, aggregate.ID())
	return nil
}

func (r driverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, exists := r.uow.lookupDriver(aggregate.ID()); !exists {
		return errs.NewObjectNotFoundError("driver", aggregate.ID())
	}

	r.uow.drivers[aggregate.ID()] = aggregate.Clone()
	return nil
}

func (r driverRepository) Get(ctx context.Context, id string) (*driver.Driver, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	d, ok := r.uow.lookupDriver(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return d.Clone(), nil
}

func (r driverRepository) Delete(ctx context.Context, id string) error {
	if err := r.check(ctx); err != nil {
		return err
	}
	if _, ok := r.uow.lookupDriver(id); !ok {
		return errs.NewObjectNotFoundError("driver", id)
	}

	delete(r.uow.drivers, id)
	r.uow.newDriverIDs = removeID(r.uow.newDriverIDs, id)
	r.uow.deletedDrivers[id] = struct{}{}
	return nil
}

func (r driverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(r.uow.store.driverIDs)+len(r.uow.newDriverIDs))
	ids = append(ids, r.uow.store.driverIDs...)
	ids = append(ids, r.uow.newDriverIDs...)

	out := make([]*driver.Driver, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.uow.lookupDriver(id); ok {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (r driverRepository) check(ctx context.Context) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	return ctx.Err()
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
