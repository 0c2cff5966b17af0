package memory

import (
	"context"
	"errors"
	"slices"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin/Commit.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates UnitOfWork instances bound to one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork. Each instance holds its own staged changes.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return newUnitOfWork(f.store)
}

// UnitOfWork stages changes against a Store and applies them atomically.
// It holds the store's write lock between Begin and Commit/Rollback, so
// operations are serialized.
type UnitOfWork struct {
	store  *Store
	active bool

	drivers        map[string]*driver.Driver
	newDriverIDs   []string
	deletedDrivers map[string]struct{}

	orders      map[string]*order.Order
	newOrderIDs []string // insertion order
	resequences [][]string

	notifications        []*journal.Notification // insertion order
	updatedNotifications map[kernel.UUID]*journal.Notification
	messages             []*journal.Message
	auditLogs            []*journal.AuditLog
	statusLogs           []*journal.StatusLog
}

func newUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.reset()
	return uow
}

func (uow *UnitOfWork) reset() {
	uow.drivers = make(map[string]*driver.Driver)
	uow.newDriverIDs = nil
	uow.deletedDrivers = make(map[string]struct{})
	uow.orders = make(map[string]*order.Order)
	uow.newOrderIDs = nil
	uow.resequences = nil
	uow.notifications = nil
	uow.updatedNotifications = make(map[kernel.UUID]*journal.Notification)
	uow.messages = nil
	uow.auditLogs = nil
	uow.statusLogs = nil
}

// Begin takes the store's write lock. Multiple calls on the same instance are safe.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	uow.store.mu.Lock()
	uow.active = true
	return nil
}

// Commit applies every staged change, releases the lock and publishes the
// committed notifications and messages.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	s := uow.store

	for id, d := range uow.drivers {
		s.drivers[id] = d
	}
	s.driverIDs = append(s.driverIDs, uow.newDriverIDs...)
	if len(uow.deletedDrivers) > 0 {
		s.driverIDs = slices.DeleteFunc(s.driverIDs, func(id string) bool {
			_, deleted := uow.deletedDrivers[id]
			return deleted
		})
		for id := range uow.deletedDrivers {
			delete(s.drivers, id)
		}
	}

	for id, o := range uow.orders {
		s.orders[id] = o
	}
	s.orderIDs = uow.orderIDs()

	for i, n := range s.journal.notifications {
		if updated, ok := uow.updatedNotifications[n.ID()]; ok {
			s.journal.notifications[i] = updated
		}
	}
	s.journal.notifications = prependReversed(s.journal.notifications, uow.notifications)
	s.journal.auditLogs = prependReversed(s.journal.auditLogs, uow.auditLogs)
	s.journal.statusLogs = prependReversed(s.journal.statusLogs, uow.statusLogs)
	s.journal.messages = append(s.journal.messages, uow.messages...)

	batch := ports.CommittedBatch{
		Notifications: cloneNotifications(uow.notifications),
		Messages:      slices.Clone(uow.messages),
	}

	uow.reset()
	uow.active = false
	s.mu.Unlock()

	if publisher := s.currentPublisher(); publisher != nil && !batch.IsEmpty() {
		publisher.Publish(context.WithoutCancel(ctx), batch)
	}
	return nil
}

// Rollback discards every staged change and releases the lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.reset()
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderRepository{uow: uow}
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return driverRepository{uow: uow}
}

func (uow *UnitOfWork) JournalRepository() ports.JournalRepository {
	return journalRepository{uow: uow}
}

// orderIDs is the effective list order: staged orders newest first, then the
// committed list, with staged resequences applied.
func (uow *UnitOfWork) orderIDs() []string {
	ids := make([]string, 0, len(uow.newOrderIDs)+len(uow.store.orderIDs))
	for i := len(uow.newOrderIDs) - 1; i >= 0; i-- {
		ids = append(ids, uow.newOrderIDs[i])
	}
	ids = append(ids, uow.store.orderIDs...)
	for _, ordered := range uow.resequences {
		ids = moveToEnd(ids, ordered)
	}
	return ids
}

// lookupOrder returns the staged or committed order without copying.
func (uow *UnitOfWork) lookupOrder(id string) (*order.Order, bool) {
	if o, ok := uow.orders[id]; ok {
		return o, true
	}
	o, ok := uow.store.orders[id]
	return o, ok
}

func (uow *UnitOfWork) lookupDriver(id string) (*driver.Driver, bool) {
	if _, deleted := uow.deletedDrivers[id]; deleted {
		return nil, false
	}
	if d, ok := uow.drivers[id]; ok {
		return d, true
	}
	d, ok := uow.store.drivers[id]
	return d, ok
}

func prependReversed[T any](committed []T, staged []T) []T {
	out := make([]T, 0, len(committed)+len(staged))
	for i := len(staged) - 1; i >= 0; i-- {
		out = append(out, staged[i])
	}
	return append(out, committed...)
}

func cloneNotifications(in []*journal.Notification) []*journal.Notification {
	out := make([]*journal.Notification, 0, len(in))
	for _, n := range in {
		out = append(out, n.Clone())
	}
	return out
}
