// Package memory provides the in-process fleet state store and its Unit of Work.
//
// The Store is the single owner of drivers, orders and journal entries. It is
// guarded by one RWMutex: a UnitOfWork holds the write lock from Begin until
// Commit or Rollback, and Snapshot takes the read lock. Readers therefore never
// observe a partially applied operation.
//
// Usage:
//
//	store := memory.NewStore(publisher)
//	uow := memory.NewUnitOfWorkFactory(store).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Committed notifications and messages are handed to the EventPublisher after
// the lock is released.
package memory

import (
	"slices"
	"sync"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Store holds the committed fleet state.
type Store struct {
	mu sync.RWMutex

	drivers     map[string]*driver.Driver
	driverIDs   []string // registration order
	orders      map[string]*order.Order
	orderIDs    []string // newest first, resequenced routes at the end
	journal     journalState
	publisher   ports.EventPublisher
	publisherMu sync.RWMutex
}

type journalState struct {
	notifications []*journal.Notification // newest first
	messages      []*journal.Message      // chronological
	auditLogs     []*journal.AuditLog     // newest first
	statusLogs    []*journal.StatusLog    // newest first
}

// NewStore creates an empty store. publisher may be nil.
func NewStore(publisher ports.EventPublisher) *Store {
	return &Store{
		drivers:   make(map[string]*driver.Driver),
		orders:    make(map[string]*order.Order),
		publisher: publisher,
	}
}

// SetPublisher replaces the publisher used after commits.
func (s *Store) SetPublisher(publisher ports.EventPublisher) {
	s.publisherMu.Lock()
	defer s.publisherMu.Unlock()
	s.publisher = publisher
}

func (s *Store) currentPublisher() ports.EventPublisher {
	s.publisherMu.RLock()
	defer s.publisherMu.RUnlock()
	return s.publisher
}

// Snapshot returns a deep copy of the committed state.
func (s *Store) Snapshot() ports.FleetSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ports.FleetSnapshot{
		Drivers:       make([]*driver.Driver, 0, len(s.driverIDs)),
		Orders:        make([]*order.Order, 0, len(s.orderIDs)),
		Notifications: make([]*journal.Notification, 0, len(s.journal.notifications)),
		Messages:      slices.Clone(s.journal.messages),
		AuditLogs:     slices.Clone(s.journal.auditLogs),
		StatusLogs:    slices.Clone(s.journal.statusLogs),
	}
	for _, id := range s.driverIDs {
		snap.Drivers = append(snap.Drivers, s.drivers[id].Clone())
	}
	for _, id := range s.orderIDs {
		snap.Orders = append(snap.Orders, s.orders[id].Clone())
	}
	for _, n := range s.journal.notifications {
		snap.Notifications = append(snap.Notifications, n.Clone())
	}
	return snap
}

// DeviceToken returns the push token of a driver, if it has one.
func (s *Store) DeviceToken(driverID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drivers[driverID]
	if !ok || d.DeviceToken() == "" {
		return "", false
	}
	return d.DeviceToken(), true
}

// moveToEnd removes ordered from ids and appends them in the given order.
func moveToEnd(ids []string, ordered []string) []string {
	moving := make(map[string]struct{}, len(ordered))
	for _, id := range ordered {
		moving[id] = struct{}{}
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := moving[id]; !ok {
			out = append(out, id)
		}
	}
	return append(out, ordered...)
}
