package commands_test

import (
	"regexp"
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

func TestCreateOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should create a pending order with geocoded addresses", func(t *testing.T) {
		f := newFixture(t)
		h := commands.NewCreateOrderCommandHandler(f.factory, f.clock)
		cmd, err := commands.NewCreateOrderCommand("Oficina Legal Diaz", "Av. Corrientes 1234, CABA", "Florida 550, CABA",
			[]commands.ItemInput{{Name: "Documents", Quantity: 1}})
		require.NoError(t, err)

		o, err := h.Handle(f.ctx, cmd)
		require.NoError(t, err)

		assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-Z]{5}$`), o.ID())
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.DriverID())
		assert.Equal(t, startTime, o.CreatedAt())
		assert.Equal(t, kernel.GeocodeAddress("Florida 550, CABA"), o.Delivery().Location())
		assert.Equal(t, []string{o.ID()}, f.orderIDs())
	})

	t.Run("should reject an invalid item quantity", func(t *testing.T) {
		f := newFixture(t)
		h := commands.NewCreateOrderCommandHandler(f.factory, f.clock)
		cmd, err := commands.NewCreateOrderCommand("Cliente", "A", "B", []commands.ItemInput{{Name: "Box", Quantity: 0}})
		require.NoError(t, err)

		_, err = h.Handle(f.ctx, cmd)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Empty(t, f.orderIDs())
	})

	t.Run("should create a batch all or nothing", func(t *testing.T) {
		f := newFixture(t)
		h := commands.NewCreateOrderCommandHandler(f.factory, f.clock)
		good, err := commands.NewCreateOrderCommand("Cliente A", "A", "B", []commands.ItemInput{{Name: "Box", Quantity: 1}})
		require.NoError(t, err)
		bad, err := commands.NewCreateOrderCommand("Cliente B", "A", "B", []commands.ItemInput{{Name: "", Quantity: 1}})
		require.NoError(t, err)

		batch, err := commands.NewCreateOrdersCommand([]commands.CreateOrderCommand{good, bad})
		require.NoError(t, err)
		_, err = h.HandleBatch(f.ctx, batch)
		require.Error(t, err)
		assert.Empty(t, f.orderIDs())

		batch, err = commands.NewCreateOrdersCommand([]commands.CreateOrderCommand{good, good})
		require.NoError(t, err)
		created, err := h.HandleBatch(f.ctx, batch)
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.NotEqual(t, created[0].ID(), created[1].ID())
		assert.Equal(t, []string{created[1].ID(), created[0].ID()}, f.orderIDs(), "newest first")
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		f := newFixture(t)
		h := commands.NewCreateOrderCommandHandler(f.factory, f.clock)
		_, err := h.Handle(f.ctx, commands.CreateOrderCommand{})
		require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestAssignOrderCommandHandler_Handle(t *testing.T) {
	assign := func(t *testing.T, f *fixture, orderID, driverID string) (*order.Order, error) {
		t.Helper()
		cmd, err := commands.NewAssignOrderCommand(orderID, driverID)
		require.NoError(t, err)
		return commands.NewAssignOrderCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	}

	t.Run("should assign, clear the route, message and notify the driver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "")
		f.setRoute(t, "D001")

		o, err := assign(t, f, "ORD-AAAAA", "D001")
		require.NoError(t, err)

		assert.Equal(t, order.InProgress, o.Status())
		require.NotNil(t, o.DriverID())
		assert.Equal(t, "D001", *o.DriverID())
		assert.Nil(t, f.driver(t, "D001").OptimizedRoute())

		snap := f.store.Snapshot()
		require.Len(t, snap.Messages, 1)
		assert.Equal(t, journal.Admin, snap.Messages[0].SenderID())
		assert.Equal(t, "D001", snap.Messages[0].ReceiverID())
		assert.Equal(t, "You have been assigned a new order: #ORD-AAAAA.", snap.Messages[0].Text())

		notifications := f.notificationsFor("D001")
		require.Len(t, notifications, 1)
		assert.Equal(t, journal.Success, notifications[0].Level())
	})

	t.Run("should clear the previous driver's route on reassignment", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOnlineDriver(t, "D002", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
		f.setRoute(t, "D001")

		o, err := assign(t, f, "ORD-AAAAA", "D002")
		require.NoError(t, err)

		assert.Equal(t, "D002", *o.DriverID())
		assert.Nil(t, f.driver(t, "D001").OptimizedRoute())
	})

	t.Run("should report unknown order and driver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "")

		_, err := assign(t, f, "ORD-ZZZZZ", "D001")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = assign(t, f, "ORD-AAAAA", "D999")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, order.Pending, f.order(t, "ORD-AAAAA").Status())
	})

	t.Run("should refuse drivers whose account is not approved", func(t *testing.T) {
		f := newFixture(t)
		f.seedDriver(t, "D001", driver.Online, driver.AccountPending, loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "")

		_, err := assign(t, f, "ORD-AAAAA", "D001")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, f.order(t, "ORD-AAAAA").Status())
		assert.Empty(t, f.store.Snapshot().Messages, "nothing is written on failure")
	})

	t.Run("should refuse terminal orders", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")

		cmd, err := commands.NewUpdateOrderStatusCommand("ORD-AAAAA", order.Delivered)
		require.NoError(t, err)
		_, err = commands.NewUpdateOrderStatusCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
		require.NoError(t, err)

		_, err = assign(t, f, "ORD-AAAAA", "D001")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	update := func(t *testing.T, f *fixture, orderID string, status order.Status) (*order.Order, error) {
		t.Helper()
		cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
		require.NoError(t, err)
		return commands.NewUpdateOrderStatusCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	}

	for _, status := range []order.Status{order.Delivered, order.Failed} {
		t.Run("should close the order as "+status.String(), func(t *testing.T) {
			f := newFixture(t)
			f.seedOnlineDriver(t, "D001", loc(0, 0))
			f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
			f.setRoute(t, "D001")
			f.clock.Advance(time.Minute)

			o, err := update(t, f, "ORD-AAAAA", status)
			require.NoError(t, err)

			assert.Equal(t, status, o.Status())
			assert.Equal(t, "D001", *o.DriverID(), "history keeps the driver")
			assert.Nil(t, f.driver(t, "D001").OptimizedRoute())
			if status == order.Delivered {
				require.NotNil(t, o.DeliveredAt())
				assert.Equal(t, startTime.Add(time.Minute), *o.DeliveredAt())
			} else {
				assert.Nil(t, o.DeliveredAt())
			}

			notifications := f.notificationsFor(journal.Admin)
			require.Len(t, notifications, 1)
			assert.Contains(t, notifications[0].Message(), "#ORD-AAAAA")
		})
	}

	t.Run("should refuse orders without a driver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "")

		_, err := update(t, f, "ORD-AAAAA", order.Delivered)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, f.notificationsFor(journal.Admin))
	})

	t.Run("should refuse other target statuses", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")

		_, err := update(t, f, "ORD-AAAAA", order.Pending)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.InProgress, f.order(t, "ORD-AAAAA").Status())
	})
}

func TestSubmitProofOfDeliveryCommandHandler_Handle(t *testing.T) {
	submit := func(t *testing.T, f *fixture, signature, photo string) (*order.Order, error) {
		t.Helper()
		cmd, err := commands.NewSubmitProofOfDeliveryCommand("ORD-AAAAA", signature, photo, "left at the door")
		require.NoError(t, err)
		return commands.NewSubmitProofOfDeliveryCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
	}

	t.Run("should fail with missing evidence", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")

		_, err := submit(t, f, "", "")
		require.ErrorIs(t, err, errs.ErrMissingEvidence)
		assert.Equal(t, order.InProgress, f.order(t, "ORD-AAAAA").Status())
	})

	t.Run("should deliver with a signature", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
		f.setRoute(t, "D001")

		o, err := submit(t, f, "sig", "")
		require.NoError(t, err)

		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, startTime, *o.DeliveredAt())
		require.NotNil(t, o.Proof())
		assert.Equal(t, "sig", o.Proof().Signature())
		assert.Nil(t, f.driver(t, "D001").OptimizedRoute())

		notifications := f.notificationsFor(journal.Admin)
		require.Len(t, notifications, 1)
		assert.Equal(t, journal.Success, notifications[0].Level())
	})
}

func TestRateDeliveryCommandHandler_Handle(t *testing.T) {
	f := newFixture(t)
	f.seedOnlineDriver(t, "D001", loc(0, 0))
	f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")
	h := commands.NewRateDeliveryCommandHandler(f.factory)

	cmd, err := commands.NewRateDeliveryCommand("ORD-AAAAA", 5)
	require.NoError(t, err)

	_, err = h.Handle(f.ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "only delivered orders can be rated")

	pod, err := commands.NewSubmitProofOfDeliveryCommand("ORD-AAAAA", "sig", "", "")
	require.NoError(t, err)
	_, err = commands.NewSubmitProofOfDeliveryCommandHandler(f.factory, f.clock).Handle(f.ctx, pod)
	require.NoError(t, err)

	o, err := h.Handle(f.ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, o.Rating())
	assert.Equal(t, 5, *o.Rating())

	_, err = commands.NewRateDeliveryCommand("ORD-AAAAA", 6)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestAddCustomerInstructionCommandHandler_Handle(t *testing.T) {
	t.Run("should notify the assigned driver", func(t *testing.T) {
		f := newFixture(t)
		f.seedOnlineDriver(t, "D001", loc(0, 0))
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "D001")

		cmd, err := commands.NewAddCustomerInstructionCommand("ORD-AAAAA", "Ring twice")
		require.NoError(t, err)
		o, err := commands.NewAddCustomerInstructionCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, "Ring twice", o.Instructions())
		notifications := f.notificationsFor("D001")
		require.Len(t, notifications, 1)
		assert.Equal(t, `Order #ORD-AAAAA: "Ring twice"`, notifications[0].Message())
	})

	t.Run("should not notify anyone for unassigned orders", func(t *testing.T) {
		f := newFixture(t)
		f.seedOrder(t, "ORD-AAAAA", loc(0, 1), "")

		cmd, err := commands.NewAddCustomerInstructionCommand("ORD-AAAAA", "Ring twice")
		require.NoError(t, err)
		_, err = commands.NewAddCustomerInstructionCommandHandler(f.factory, f.clock).Handle(f.ctx, cmd)
		require.NoError(t, err)

		assert.Empty(t, f.store.Snapshot().Notifications)
	})
}
