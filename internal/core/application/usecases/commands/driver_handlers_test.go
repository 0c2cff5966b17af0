package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDriverCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	cmd, err := commands.NewRegisterDriverCommand("Carlos Gomez", "carlos@email.com", commands.VehicleInput{
		Type: "Moto Honda Wave", Plate: "A123BCC", CapacityKg: 20, Fuel: "Gasoline",
	}, "device-token")
	require.NoError(t, err)

	d, err := commands.NewRegisterDriverCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	require.NoError(t, err)

	assert.Regexp(t, `^D-[0-9A-Z]{4}$`, d.ID())
	assert.Equal(t, driver.AccountPending, d.AccountStatus())
	assert.Equal(t, driver.Offline, d.Status())
	assert.Equal(t, kernel.DefaultLocation(), d.Location())

	snap := f.store.Snapshot()
	require.Len(t, snap.AuditLogs, 1)
	assert.Equal(t, journal.Registered, snap.AuditLogs[0].Action())
	notifications := f.notificationsFor(journal.Admin)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Carlos Gomez has registered and is pending approval.", notifications[0].Message())

	t.Run("should reject an unknown fuel", func(t *testing.T) {
		_, err := commands.NewRegisterDriverCommand("Ana", "ana@email.com", commands.VehicleInput{
			Type: "Van", Plate: "AB123CD", CapacityKg: 500, Fuel: "Steam",
		}, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestChangeDriverAccountCommandHandler_Handle(t *testing.T) {
	change := func(t *testing.T, f *fixture, id string, action commands.AccountAction) error {
		t.Helper()
		cmd, err := commands.NewChangeDriverAccountCommand(id, action)
		require.NoError(t, err)
		return commands.NewChangeDriverAccountCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	}

	t.Run("should approve once", func(t *testing.T) {
		f := newFixture(t)
		f.seedDriver(t, "D001", driver.Offline, driver.AccountPending, loc(0, 0))

		require.NoError(t, change(t, f, "D001", commands.ApproveAccount))
		assert.Equal(t, driver.AccountApproved, f.driver(t, "D001").AccountStatus())

		require.ErrorIs(t, change(t, f, "D001", commands.RejectAccount), errs.ErrInvalidTransition)
		assert.Len(t, f.store.Snapshot().AuditLogs, 1)
	})

	t.Run("should reject", func(t *testing.T) {
		f := newFixture(t)
		f.seedDriver(t, "D001", driver.Offline, driver.AccountPending, loc(0, 0))

		require.NoError(t, change(t, f, "D001", commands.RejectAccount))
		assert.Equal(t, driver.AccountRejected, f.driver(t, "D001").AccountStatus())
		assert.Equal(t, journal.Rejected, f.store.Snapshot().AuditLogs[0].Action())
	})

	t.Run("should release in-progress orders on delete", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
		f.seedOrder(t, "ORD-BBBBB", loc(0, 2), "D001")
		f.seedOrder(t, "ORD-CCCCC", loc(0, 3), "D001")

		pod, err := commands.NewSubmitProofOfDeliveryCommand("ORD-CCCCC", "sig", "", "")
		require.NoError(t, err)
		_, err = commands.NewSubmitProofOfDeliveryCommandHandler(f.factory, f.clock).Handle(f.ctx, pod)
		require.NoError(t, err)

		require.NoError(t, change(t, f, "D001", commands.DeleteAccount))

		for _, id := range []string{"ORD-AAAAA", "ORD-BBBBB"} {
			o := f.order(t, id)
			assert.Equal(t, order.Pending, o.Status(), id)
			assert.Nil(t, o.DriverID(), id)
		}
		delivered := f.order(t, "ORD-CCCCC")
		assert.Equal(t, order.Delivered, delivered.Status())
		assert.Equal(t, "D001", *delivered.DriverID())

		snap := f.store.Snapshot()
		assert.Empty(t, snap.Drivers)
		require.Len(t, snap.AuditLogs, 1)
		assert.Equal(t, journal.Deleted, snap.AuditLogs[0].Action())
		assert.Equal(t, "D001", snap.AuditLogs[0].DriverID())
	})

	t.Run("should report unknown drivers", func(t *testing.T) {
		f := newFixture(t)
		require.ErrorIs(t, change(t, f, "D404", commands.DeleteAccount), errs.ErrObjectNotFound)
	})
}

func TestChangeDriverStatusCommandHandler_Handle(t *testing.T) {
	change := func(t *testing.T, f *fixture, status driver.Status) (*driver.Driver, error) {
		t.Helper()
		cmd, err := commands.NewChangeDriverStatusCommand("D001", status)
		require.NoError(t, err)
		return commands.NewChangeDriverStatusCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	}

	t.Run("should log every change", func(t *testing.T) {
		f := newFixture(t)
		f.seedDriver(t, "D001", driver.Offline, driver.AccountApproved, loc(0, 0))
		f.clock.Advance(time.Hour)

		d, err := change(t, f, driver.Online)
		require.NoError(t, err)
		assert.Equal(t, driver.Online, d.Status())
		assert.Equal(t, startTime.Add(time.Hour), d.LastMovedAt(), "going online restarts the idle timer")

		_, err = change(t, f, driver.Online)
		require.NoError(t, err)

		_, err = change(t, f, driver.OnBreak)
		require.NoError(t, err)

		logs := f.store.Snapshot().StatusLogs
		require.Len(t, logs, 2, "a no-op change is not logged")
		assert.Equal(t, driver.OnBreak, logs[0].Status(), "newest first")
		assert.Equal(t, driver.Online, logs[1].Status())
	})

	t.Run("should refuse rejected accounts", func(t *testing.T) {
		f := newFixture(t)
		f.seedDriver(t, "D001", driver.Offline, driver.AccountRejected, loc(0, 0))

		_, err := change(t, f, driver.Online)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, f.store.Snapshot().StatusLogs)
	})
}

func TestSendMessageCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	f.seedOnlineDriver(t, "D001", loc(0, 0))
	h := commands.NewSendMessageCommandHandler(f.factory, f.clock)

	cmd, err := commands.NewSendMessageCommand("D001", journal.Admin, "Traffic on 9 de Julio")
	require.NoError(t, err)
	m, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "D001", m.DriverID())

	cmd, err = commands.NewSendMessageCommand("D404", journal.Admin, "hello")
	require.NoError(t, err)
	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = commands.NewSendMessageCommand("D001", "D002", "hello")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid, "drivers cannot message each other")

	assert.Len(t, f.store.Snapshot().Messages, 1)
}

func TestMarkNotificationsReadCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	var first *journal.Notification
	f.add(t, func(uow commands.UoW) error {
		for _, title := range []string{"one", "two", "three"} {
			n, err := journal.NewNotification(journal.Admin, journal.Info, title, "", startTime)
			if err != nil {
				return err
			}
			if first == nil {
				first = n
			}
			if err = uow.JournalRepository().AddNotification(f.ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
	h := commands.NewMarkNotificationsReadCommandHandler(f.factory)

	id := first.ID()
	cmd, err := commands.NewMarkNotificationsReadCommand(journal.Admin, &id)
	require.NoError(t, err)
	marked, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	cmd, err = commands.NewMarkNotificationsReadCommand(journal.Admin, nil)
	require.NoError(t, err)
	marked, err = h.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	for _, n := range f.notificationsFor(journal.Admin) {
		assert.True(t, n.IsRead())
	}

	unknown := kernel.NewUUID()
	cmd, err = commands.NewMarkNotificationsReadCommand(journal.Admin, &unknown)
	require.NoError(t, err)
	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOptimizeRouteCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	f.seedOnlineDriver(t, "D001", loc(0, 0))
	f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
	f.seedOrder(t, "ORD-CCCCC", loc(0, 3), "D001")
	f.seedOrder(t, "ORD-BBBBB", loc(0, 2), "D001")
	f.seedOrder(t, "ORD-PPPPP", loc(5, 5), "")
	h := commands.NewOptimizeRouteCommandHandler(f.factory, f.clock)

	cmd, err := commands.NewOptimizeRouteCommand("D001")
	require.NoError(t, err)
	route, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, []string{"ORD-AAAAA", "ORD-BBBBB", "ORD-CCCCC"}, ids(route.Orders))
	assert.Equal(t, []kernel.Location{loc(0, 0), loc(0, 1), loc(0, 2), loc(0, 3)}, f.driver(t, "D001").OptimizedRoute())
	assert.Equal(t, []string{"ORD-PPPPP", "ORD-AAAAA", "ORD-BBBBB", "ORD-CCCCC"}, f.orderIDs())

	messages := f.store.Snapshot().Messages
	require.Len(t, messages, 1)
	assert.Equal(t, "Your route has been optimized for efficiency.", messages[0].Text())

	again, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, ids(route.Orders), ids(again.Orders), "sequencing is idempotent")
	assert.Equal(t, route.Waypoints, again.Waypoints)
}

func ids(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}
