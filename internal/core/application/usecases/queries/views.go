package queries

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// LocationView is a geographic point in the read model.
type LocationView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewLocationView(l kernel.Location) LocationView {
	return LocationView{Lat: l.Lat(), Lng: l.Lng()}
}

type AddressView struct {
	Text     string       `json:"text"`
	Location LocationView `json:"location"`
}

type ItemView struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ProofView struct {
	Signature string `json:"signature,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// OrderView is an order as the dashboards and driver apps see it.
type OrderView struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Pickup       AddressView `json:"pickup"`
	Delivery     AddressView `json:"delivery"`
	Items        []ItemView  `json:"items"`
	Status       string      `json:"status"`
	DriverID     *string     `json:"driverId,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	DeliveredAt  *time.Time  `json:"deliveredAt,omitempty"`
	Proof        *ProofView  `json:"proofOfDelivery,omitempty"`
	Rating       *int        `json:"rating,omitempty"`
	Instructions string      `json:"customerInstructions,omitempty"`
}

func NewOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:           o.ID(),
		CustomerName: o.CustomerName(),
		Pickup:       newAddressView(o.Pickup()),
		Delivery:     newAddressView(o.Delivery()),
		Items:        make([]ItemView, 0, len(o.Items())),
		Status:       o.Status().String(),
		DriverID:     o.DriverID(),
		CreatedAt:    o.CreatedAt(),
		DeliveredAt:  o.DeliveredAt(),
		Rating:       o.Rating(),
		Instructions: o.Instructions(),
	}
	for _, item := range o.Items() {
		view.Items = append(view.Items, ItemView{Name: item.Name(), Quantity: item.Quantity()})
	}
	if proof := o.Proof(); proof != nil {
		view.Proof = &ProofView{
			Signature: proof.Signature(),
			PhotoURL:  proof.PhotoURL(),
			Notes:     proof.Notes(),
		}
	}
	return view
}

func newAddressView(a kernel.Address) AddressView {
	return AddressView{Text: a.Text(), Location: NewLocationView(a.Location())}
}

type VehicleView struct {
	Type       string `json:"type"`
	Plate      string `json:"plate"`
	CapacityKg int    `json:"capacityKg"`
	Fuel       string `json:"fuel"`
}

// DriverView is a driver in the read model. The device token is never exposed.
type DriverView struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Vehicle        VehicleView    `json:"vehicle"`
	Location       LocationView   `json:"location"`
	Status         string         `json:"status"`
	AccountStatus  string         `json:"accountStatus"`
	LastMovedAt    time.Time      `json:"lastMovedAt"`
	OptimizedRoute []LocationView `json:"optimizedRoute,omitempty"`
}

func NewDriverView(d *driver.Driver) DriverView {
	v := d.Vehicle()
	view := DriverView{
		ID:    d.ID(),
		Name:  d.Name(),
		Email: d.Email(),
		Vehicle: VehicleView{
			Type:       v.Type(),
			Plate:      v.Plate(),
			CapacityKg: v.CapacityKg(),
			Fuel:       string(v.Fuel()),
		},
		Location:      NewLocationView(d.Location()),
		Status:        d.Status().String(),
		AccountStatus: d.AccountStatus().String(),
		LastMovedAt:   d.LastMovedAt(),
	}
	for _, waypoint := range d.OptimizedRoute() {
		view.OptimizedRoute = append(view.OptimizedRoute, NewLocationView(waypoint))
	}
	return view
}

type NotificationView struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Level     string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}

func NewNotificationView(n *journal.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID().String(),
		Recipient: n.Recipient(),
		Level:     string(n.Level()),
		Title:     n.Title(),
		Message:   n.Message(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
}

type MessageView struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewMessageView(m *journal.Message) MessageView {
	return MessageView{
		ID:         m.ID().String(),
		SenderID:   m.SenderID(),
		ReceiverID: m.ReceiverID(),
		Text:       m.Text(),
		Timestamp:  m.Timestamp(),
	}
}
