package local_test

import (
	"testing"
	"time"

	"dispatch/internal/adapters/out/oracle/local"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineDriver(t *testing.T, id string, lat, lng float64) *driver.Driver {
	t.Helper()
	vehicle, err := driver.NewVehicle("Bike", "B-"+id, 15, driver.Electric)
	require.NoError(t, err)
	d, err := driver.RestoreDriver(driver.State{
		ID:            id,
		Name:          id,
		Email:         id + "@fleet.test",
		Vehicle:       vehicle,
		Location:      kernel.MustNewLocation(lat, lng),
		Status:        driver.Online,
		AccountStatus: driver.AccountApproved,
		LastMovedAt:   time.Now(),
	})
	require.NoError(t, err)
	return d
}

func pendingOrder(t *testing.T, id string, lat, lng float64) *order.Order {
	t.Helper()
	pickup, err := kernel.NewAddressAt("pickup", kernel.MustNewLocation(lat, lng))
	require.NoError(t, err)
	item, err := order.NewItem("Parcel", 1)
	require.NoError(t, err)
	o, err := order.RestoreOrder(order.State{
		ID:           id,
		CustomerName: "Customer",
		Pickup:       pickup,
		Delivery:     pickup,
		Items:        []order.Item{item},
		Status:       order.Pending,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return o
}

func TestNearestDriverOracle_ProposeAssignments(t *testing.T) {
	t.Run("should pick the nearest driver for each order", func(t *testing.T) {
		oracle := local.NewNearestDriverOracle(0)
		proposals, err := oracle.ProposeAssignments(t.Context(), ports.AssignmentRequest{
			Orders:  []*order.Order{pendingOrder(t, "O1", 0, 0.1), pendingOrder(t, "O2", 0, 0.9)},
			Drivers: []*driver.Driver{onlineDriver(t, "D1", 0, 0), onlineDriver(t, "D2", 0, 1)},
		})
		require.NoError(t, err)

		require.Len(t, proposals, 2)
		assert.Equal(t, "D1", proposals[0].DriverID)
		assert.Equal(t, "D2", proposals[1].DriverID)
		assert.NotEmpty(t, proposals[0].Reason)
	})

	t.Run("should spread orders by load", func(t *testing.T) {
		oracle := local.NewNearestDriverOracle(1000)
		proposals, err := oracle.ProposeAssignments(t.Context(), ports.AssignmentRequest{
			Orders:     []*order.Order{pendingOrder(t, "O1", 0, 0), pendingOrder(t, "O2", 0, 0)},
			Drivers:    []*driver.Driver{onlineDriver(t, "D1", 0, 0), onlineDriver(t, "D2", 0, 0.5)},
			ActiveLoad: map[string]int{"D2": 1},
		})
		require.NoError(t, err)

		require.Len(t, proposals, 2)
		assert.Equal(t, "D1", proposals[0].DriverID)
		assert.Equal(t, "D1", proposals[1].DriverID, "D1 carries one order now, D2 still has one")
	})

	t.Run("should return nothing without drivers", func(t *testing.T) {
		proposals, err := local.NewNearestDriverOracle(0).ProposeAssignments(t.Context(), ports.AssignmentRequest{
			Orders: []*order.Order{pendingOrder(t, "O1", 0, 0)},
		})
		require.NoError(t, err)
		assert.Empty(t, proposals)
	})
}

func TestKeywordCoPilot_Converse(t *testing.T) {
	tests := []struct {
		text     string
		function string
	}{
		{"What's my next stop?", "getNextStop"},
		{"Please optimize my route", "optimizeMyRoute"},
		{"Any instructions for this one?", "readCustomerInstructions"},
		{"I delivered it", "markOrderAsDelivered"},
		{"Tell dispatch I'm stuck in traffic", "sendMessageToDispatch"},
	}
	for _, tt := range tests {
		t.Run("should map "+tt.function, func(t *testing.T) {
			reply, err := local.NewKeywordCoPilot().Converse(t.Context(), ports.CoPilotContext{},
				[]ports.CoPilotTurn{{Role: ports.RoleUser, Text: tt.text}})
			require.NoError(t, err)
			require.NotNil(t, reply.FunctionCall)
			assert.Equal(t, tt.function, reply.FunctionCall.Name)
		})
	}

	t.Run("should keep the original message text", func(t *testing.T) {
		reply, err := local.NewKeywordCoPilot().Converse(t.Context(), ports.CoPilotContext{},
			[]ports.CoPilotTurn{{Role: ports.RoleUser, Text: "Tell dispatch I'm stuck in Traffic"}})
		require.NoError(t, err)
		assert.Equal(t, "I'm stuck in Traffic", reply.FunctionCall.Args["message"])
	})

	t.Run("should answer with help otherwise", func(t *testing.T) {
		reply, err := local.NewKeywordCoPilot().Converse(t.Context(), ports.CoPilotContext{},
			[]ports.CoPilotTurn{{Role: ports.RoleUser, Text: "hello"}})
		require.NoError(t, err)
		assert.Nil(t, reply.FunctionCall)
		assert.NotEmpty(t, reply.Text)
	})
}
