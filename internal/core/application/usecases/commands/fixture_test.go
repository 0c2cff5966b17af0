package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var startTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type memoryUoWFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

type capturingPublisher struct {
	mu      sync.Mutex
	batches []ports.CommittedBatch
}

func (p *capturingPublisher) Publish(_ context.Context, batch ports.CommittedBatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, batch)
}

// fixture wires handlers to a real in-memory store.
type fixture struct {
	ctx       context.Context
	store     *memory.Store
	factory   commands.UoWFactory
	clock     *kernel.FixedClock
	publisher *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	publisher := &capturingPublisher{}
	store := memory.NewStore(publisher)
	return &fixture{
		ctx:       t.Context(),
		store:     store,
		factory:   memoryUoWFactory{factory: memory.NewUnitOfWorkFactory(store)},
		clock:     kernel.NewFixedClock(startTime),
		publisher: publisher,
	}
}

func (f *fixture) add(t *testing.T, fn func(uow commands.UoW) error) {
	t.Helper()
	uow := f.factory.Create()
	require.NoError(t, uow.Begin(f.ctx))
	require.NoError(t, fn(uow))
	require.NoError(t, uow.Commit(f.ctx))
}

func (f *fixture) seedDriver(
	t *testing.T,
	id string,
	status driver.Status,
	account driver.AccountStatus,
	location kernel.Location,
) *driver.Driver {
	t.Helper()
	vehicle, err := driver.NewVehicle("Moto Honda Wave", "A123BCC", 20, driver.Gasoline)
	require.NoError(t, err)
	d, err := driver.RestoreDriver(driver.State{
		ID:            id,
		Name:          "Driver " + id,
		Email:         id + "@fleet.test",
		Vehicle:       vehicle,
		Location:      location,
		Status:        status,
		AccountStatus: account,
		LastMovedAt:   startTime,
	})
	require.NoError(t, err)
	f.add(t, func(uow commands.UoW) error {
		return uow.DriverRepository().Add(f.ctx, d)
	})
	return d
}

func (f *fixture) seedOnlineDriver(t *testing.T, id string, location kernel.Location) *driver.Driver {
	t.Helper()
	return f.seedDriver(t, id, driver.Online, driver.AccountApproved, location)
}

func (f *fixture) seedOrder(t *testing.T, id string, delivery kernel.Location, driverID string) *order.Order {
	t.Helper()
	pickup, err := kernel.NewAddressAt("Pickup "+id, kernel.MustNewLocation(0, 0))
	require.NoError(t, err)
	dropoff, err := kernel.NewAddressAt("Dropoff "+id, delivery)
	require.NoError(t, err)
	item, err := order.NewItem("Package", 1)
	require.NoError(t, err)

	state := order.State{
		ID:           id,
		CustomerName: "Customer " + id,
		Pickup:       pickup,
		Delivery:     dropoff,
		Items:        []order.Item{item},
		Status:       order.Pending,
		CreatedAt:    startTime,
	}
	if driverID != "" {
		state.Status = order.InProgress
		state.DriverID = &driverID
	}
	o, err := order.RestoreOrder(state)
	require.NoError(t, err)
	f.add(t, func(uow commands.UoW) error {
		return uow.OrderRepository().Add(f.ctx, o)
	})
	return o
}

func (f *fixture) setRoute(t *testing.T, driverID string) {
	t.Helper()
	f.add(t, func(uow commands.UoW) error {
		d, err := uow.DriverRepository().Get(f.ctx, driverID)
		if err != nil {
			return err
		}
		d.SetRoute([]kernel.Location{d.Location(), kernel.MustNewLocation(1, 1)})
		return uow.DriverRepository().Update(f.ctx, d)
	})
}

func (f *fixture) order(t *testing.T, id string) *order.Order {
	t.Helper()
	for _, o := range f.store.Snapshot().Orders {
		if o.ID() == id {
			return o
		}
	}
	require.Failf(t, "order not found", "order %s", id)
	return nil
}

func (f *fixture) driver(t *testing.T, id string) *driver.Driver {
	t.Helper()
	for _, d := range f.store.Snapshot().Drivers {
		if d.ID() == id {
			return d
		}
	}
	require.Failf(t, "driver not found", "driver %s", id)
	return nil
}

func (f *fixture) notificationsFor(recipient string) []*journal.Notification {
	var out []*journal.Notification
	for _, n := range f.store.Snapshot().Notifications {
		if n.Recipient() == recipient {
			out = append(out, n)
		}
	}
	return out
}

func (f *fixture) orderIDs() []string {
	var out []string
	for _, o := range f.store.Snapshot().Orders {
		out = append(out, o.ID())
	}
	return out
}

func loc(lat, lng float64) kernel.Location {
	return kernel.MustNewLocation(lat, lng)
}
