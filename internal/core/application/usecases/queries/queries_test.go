package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

var at = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore(nil)

	vehicle, err := driver.NewVehicle("Van", "V100", 800, driver.Electric)
	s.Require().NoError(err)
	d, err := driver.RestoreDriver(driver.State{
		ID:            "D001",
		Name:          "Ana",
		Email:         "ana@fleet.test",
		DeviceToken:   "secret-token",
		Vehicle:       vehicle,
		Location:      kernel.MustNewLocation(40.7, -74),
		Status:        driver.Online,
		AccountStatus: driver.AccountApproved,
		LastMovedAt:   at,
	})
	s.Require().NoError(err)

	pickup, err := kernel.NewAddress("1 Depot Road")
	s.Require().NoError(err)
	delivery, err := kernel.NewAddress("22 Baker Street")
	s.Require().NoError(err)
	item, err := order.NewItem("Box", 2)
	s.Require().NoError(err)
	driverID := "D001"
	o, err := order.RestoreOrder(order.State{
		ID:           "ORD-AAAAA",
		CustomerName: "Bob",
		Pickup:       pickup,
		Delivery:     delivery,
		Items:        []order.Item{item},
		Status:       order.InProgress,
		DriverID:     &driverID,
		CreatedAt:    at,
		Instructions: "Ring twice",
	})
	s.Require().NoError(err)

	uow := memory.NewUnitOfWorkFactory(s.store).Create()
	s.Require().NoError(uow.Begin(s.ctx))
	s.Require().NoError(uow.DriverRepository().Add(s.ctx, d))
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))

	journalRepo := uow.JournalRepository()
	for i, text := range []string{"first", "second"} {
		n, nErr := journal.NewNotification(journal.Admin, journal.Info, "Title", text, at.Add(time.Duration(i)*time.Second))
		s.Require().NoError(nErr)
		if i == 0 {
			n.MarkRead()
		}
		s.Require().NoError(journalRepo.AddNotification(s.ctx, n))
	}
	driverNote, err := journal.NewNotification("D001", journal.Success, "New order", "for you", at)
	s.Require().NoError(err)
	s.Require().NoError(journalRepo.AddNotification(s.ctx, driverNote))

	for _, m := range [][2]string{{"D001", journal.Admin}, {journal.Admin, "D001"}, {"D002", journal.Admin}} {
		msg, mErr := journal.NewMessage(m[0], m[1], "hi from "+m[0], at)
		s.Require().NoError(mErr)
		s.Require().NoError(journalRepo.AddMessage(s.ctx, msg))
	}

	audit, err := journal.NewAuditLog("D001", journal.Registered, at)
	s.Require().NoError(err)
	s.Require().NoError(journalRepo.AddAuditLog(s.ctx, audit))
	status, err := journal.NewStatusLog("D001", driver.Online, at)
	s.Require().NoError(err)
	s.Require().NoError(journalRepo.AddStatusLog(s.ctx, status))

	s.Require().NoError(uow.Commit(s.ctx))
}

func (s *QueriesTestSuite) TestGetFleet_ReturnsViews() {
	resp, err := queries.NewGetFleetQueryHandler(s.store).Handle(s.ctx, queries.NewGetFleetQuery())
	s.Require().NoError(err)

	s.Require().Len(resp.Drivers, 1)
	s.Equal("Ana", resp.Drivers[0].Name)
	s.Equal("Online", resp.Drivers[0].Status)
	s.Equal("Approved", resp.Drivers[0].AccountStatus)
	s.Equal("Electric", resp.Drivers[0].Vehicle.Fuel)
	s.InDelta(40.7, resp.Drivers[0].Location.Lat, 1e-9)

	s.Require().Len(resp.Orders, 1)
	view := resp.Orders[0]
	s.Equal("InProgress", view.Status)
	s.Equal("D001", *view.DriverID)
	s.Equal("22 Baker Street", view.Delivery.Text)
	s.Equal([]queries.ItemView{{Name: "Box", Quantity: 2}}, view.Items)
	s.Equal("Ring twice", view.Instructions)
	s.Nil(view.Proof)
}

func (s *QueriesTestSuite) TestGetFleet_ZeroValueQuery() {
	_, err := queries.NewGetFleetQueryHandler(s.store).Handle(s.ctx, queries.GetFleetQuery{})
	s.ErrorIs(err, queries.ErrGetFleetQueryIsNotConstructed)
}

func (s *QueriesTestSuite) TestGetNotifications_FiltersByRecipient() {
	query, err := queries.NewGetNotificationsQuery(journal.Admin, false)
	s.Require().NoError(err)

	resp, err := queries.NewGetNotificationsQueryHandler(s.store).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Require().Len(resp.Notifications, 2)
	s.Equal("second", resp.Notifications[0].Message)
	s.Equal("first", resp.Notifications[1].Message)
	s.Equal(1, resp.Unread)
}

func (s *QueriesTestSuite) TestGetNotifications_UnreadOnly() {
	query, err := queries.NewGetNotificationsQuery(journal.Admin, true)
	s.Require().NoError(err)

	resp, err := queries.NewGetNotificationsQueryHandler(s.store).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Require().Len(resp.Notifications, 1)
	s.Equal("second", resp.Notifications[0].Message)
	s.Equal(1, resp.Unread)
}

func (s *QueriesTestSuite) TestGetNotifications_RequiresRecipient() {
	_, err := queries.NewGetNotificationsQuery(" ", false)
	s.ErrorIs(err, queries.ErrRecipientIsRequired)
}

func (s *QueriesTestSuite) TestGetConversation_ReturnsOneThread() {
	query, err := queries.NewGetConversationQuery("D001")
	s.Require().NoError(err)

	resp, err := queries.NewGetConversationQueryHandler(s.store).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Require().Len(resp.Messages, 2)
	s.Equal("D001", resp.Messages[0].SenderID)
	s.Equal(journal.Admin, resp.Messages[1].SenderID)
}

func (s *QueriesTestSuite) TestGetDriverHistory_ReturnsBothLogs() {
	query, err := queries.NewGetDriverHistoryQuery("D001")
	s.Require().NoError(err)

	resp, err := queries.NewGetDriverHistoryQueryHandler(s.store).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.Equal([]queries.AuditLogView{{Action: "Registered", Timestamp: at}}, resp.AuditLogs)
	s.Equal([]queries.StatusLogView{{Status: "Online", Timestamp: at}}, resp.StatusLogs)
}

func (s *QueriesTestSuite) TestGetDriverHistory_UnknownDriverIsEmpty() {
	query, err := queries.NewGetDriverHistoryQuery("D404")
	s.Require().NoError(err)

	resp, err := queries.NewGetDriverHistoryQueryHandler(s.store).Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Empty(resp.AuditLogs)
	s.Empty(resp.StatusLogs)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
