package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu      sync.Mutex
	batches []ports.CommittedBatch
}

func (p *recordingPublisher) Publish(_ context.Context, batch ports.CommittedBatch) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, batch)
}

// UnitOfWorkTestSuite covers staging, commit visibility and ordering of the in-memory store.
type UnitOfWorkTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	publisher *recordingPublisher
	factory   *memory.UnitOfWorkFactory
}

func (s *UnitOfWorkTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.publisher = &recordingPublisher{}
	s.store = memory.NewStore(s.publisher)
	s.factory = memory.NewUnitOfWorkFactory(s.store)
}

func (s *UnitOfWorkTestSuite) newOrder(id string) *order.Order {
	pickup, err := kernel.NewAddress("Av. Corrientes 1234, CABA")
	s.Require().NoError(err)
	dropoff, err := kernel.NewAddress("Florida 550, CABA")
	s.Require().NoError(err)
	item, err := order.NewItem("Documents", 1)
	s.Require().NoError(err)
	o, err := order.NewOrder(id, "Oficina Legal Diaz", pickup, dropoff, []order.Item{item}, now)
	s.Require().NoError(err)
	return o
}

func (s *UnitOfWorkTestSuite) newDriver(id string) *driver.Driver {
	vehicle, err := driver.NewVehicle("Moto Honda Wave", "A123BCC", 20, driver.Gasoline)
	s.Require().NoError(err)
	d, err := driver.NewDriver(id, "Carlos Gomez", "carlos@email.com", vehicle, "token-"+id, now)
	s.Require().NoError(err)
	return d
}

func (s *UnitOfWorkTestSuite) commit(fn func(uow ports.UnitOfWork)) {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	fn(uow)
	s.Require().NoError(uow.Commit(s.ctx))
}

func (s *UnitOfWorkTestSuite) TestCommitMakesChangesVisible() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")))
	s.Require().NoError(uow.DriverRepository().Add(s.ctx, s.newDriver("D-0001")))

	got, err := uow.OrderRepository().Get(s.ctx, "ORD-AAAAA")
	s.Require().NoError(err, "staged order should be readable inside the transaction")
	s.Equal("ORD-AAAAA", got.ID())

	s.Require().NoError(uow.Commit(s.ctx))

	snap := s.store.Snapshot()
	s.Len(snap.Orders, 1)
	s.Len(snap.Drivers, 1)
}

func (s *UnitOfWorkTestSuite) TestRollbackDiscardsChanges() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")))
	s.Require().NoError(uow.Rollback(s.ctx))

	s.Empty(s.store.Snapshot().Orders)
}

func (s *UnitOfWorkTestSuite) TestCommitWithoutBegin() {
	uow := s.factory.Create()
	s.ErrorIs(uow.Commit(s.ctx), memory.ErrNoActiveTransaction)
	s.ErrorIs(uow.Rollback(s.ctx), memory.ErrNoActiveTransaction)
}

func (s *UnitOfWorkTestSuite) TestRollbackAfterCommitIsHarmless() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.Commit(s.ctx))
	s.Error(uow.Rollback(s.ctx))

	// the lock was released exactly once, so a new transaction can start
	next := s.factory.Create()
	s.Require().NoError(next.Begin(s.ctx))
	s.Require().NoError(next.Rollback(s.ctx))
}

func (s *UnitOfWorkTestSuite) TestRepositoriesRequireTransaction() {
	uow := s.factory.Create()
	_, err := uow.OrderRepository().Get(s.ctx, "ORD-AAAAA")
	s.ErrorIs(err, memory.ErrNoActiveTransaction)
}

func (s *UnitOfWorkTestSuite) TestOrdersAreListedNewestFirst() {
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")))
	})
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-BBBBB")))
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-CCCCC")))
	})

	var got []string
	for _, o := range s.store.Snapshot().Orders {
		got = append(got, o.ID())
	}
	s.Equal([]string{"ORD-CCCCC", "ORD-BBBBB", "ORD-AAAAA"}, got)
}

func (s *UnitOfWorkTestSuite) TestDuplicateAddIsRejected() {
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")))
	})

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	defer func() { _ = uow.Rollback(s.ctx) }()
	s.ErrorIs(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")), errs.ErrValueIsInvalid)
}

func (s *UnitOfWorkTestSuite) TestGetReturnsCopies() {
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, s.newOrder("ORD-AAAAA")))
	})

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	o, err := uow.OrderRepository().Get(s.ctx, "ORD-AAAAA")
	s.Require().NoError(err)
	s.Require().NoError(o.Assign("D-0001"))
	s.Require().NoError(uow.Rollback(s.ctx))

	s.Equal(order.Pending, s.store.Snapshot().Orders[0].Status(), "unsaved mutation must not leak")
}

func (s *UnitOfWorkTestSuite) TestResequenceMovesRouteToEnd() {
	s.commit(func(uow ports.UnitOfWork) {
		for _, id := range []string{"ORD-AAAAA", "ORD-BBBBB", "ORD-CCCCC"} {
			o := s.newOrder(id)
			s.Require().NoError(o.Assign("D-0001"))
			s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))
		}
	})
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.OrderRepository().Resequence(s.ctx, "D-0001", []string{"ORD-AAAAA", "ORD-CCCCC"}))
	})

	var got []string
	for _, o := range s.store.Snapshot().Orders {
		got = append(got, o.ID())
	}
	s.Equal([]string{"ORD-BBBBB", "ORD-AAAAA", "ORD-CCCCC"}, got)
}

func (s *UnitOfWorkTestSuite) TestResequenceRejectsForeignOrders() {
	s.commit(func(uow ports.UnitOfWork) {
		o := s.newOrder("ORD-AAAAA")
		s.Require().NoError(o.Assign("D-0002"))
		s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))
	})

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	defer func() { _ = uow.Rollback(s.ctx) }()
	s.ErrorIs(uow.OrderRepository().Resequence(s.ctx, "D-0001", []string{"ORD-AAAAA"}), errs.ErrValueIsInvalid)
}

func (s *UnitOfWorkTestSuite) TestDeleteDriver() {
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.DriverRepository().Add(s.ctx, s.newDriver("D-0001")))
		s.Require().NoError(uow.DriverRepository().Add(s.ctx, s.newDriver("D-0002")))
	})
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.DriverRepository().Delete(s.ctx, "D-0001"))
		_, err := uow.DriverRepository().Get(s.ctx, "D-0001")
		s.ErrorIs(err, errs.ErrObjectNotFound)
	})

	snap := s.store.Snapshot()
	s.Require().Len(snap.Drivers, 1)
	s.Equal("D-0002", snap.Drivers[0].ID())

	_, ok := s.store.DeviceToken("D-0001")
	s.False(ok)
	token, ok := s.store.DeviceToken("D-0002")
	s.True(ok)
	s.Equal("token-D-0002", token)
}

func (s *UnitOfWorkTestSuite) TestNotificationsArePublishedAndUpdated() {
	n, err := journal.NewNotification(journal.Admin, journal.Info, "Nuevo pedido", "ORD-AAAAA", now)
	s.Require().NoError(err)
	s.commit(func(uow ports.UnitOfWork) {
		s.Require().NoError(uow.JournalRepository().AddNotification(s.ctx, n))
	})

	s.Require().Len(s.publisher.batches, 1)
	s.Len(s.publisher.batches[0].Notifications, 1)

	s.commit(func(uow ports.UnitOfWork) {
		list, err := uow.JournalRepository().GetNotifications(s.ctx, journal.Admin)
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.True(list[0].MarkRead())
		s.Require().NoError(uow.JournalRepository().UpdateNotification(s.ctx, list[0]))
	})

	snap := s.store.Snapshot()
	s.Require().Len(snap.Notifications, 1)
	s.True(snap.Notifications[0].IsRead())
	s.Len(s.publisher.batches, 1, "updates are not republished")
}

func (s *UnitOfWorkTestSuite) TestUpdateUnknownNotification() {
	n, err := journal.NewNotification(journal.Admin, journal.Info, "Nuevo pedido", "ORD-AAAAA", now)
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))
	defer func() { _ = uow.Rollback(s.ctx) }()
	s.ErrorIs(uow.JournalRepository().UpdateNotification(s.ctx, n), errs.ErrObjectNotFound)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
