package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// IDPrefix starts every order identifier, e.g. "ORD-7K2QZ".
	IDPrefix = "ORD"
	// IDLength is the number of random characters after the prefix.
	IDLength = 5

	MinRating = 1
	MaxRating = 5
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCustomerNameIsRequired is returned for a blank customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrItemsAreRequired is returned for an order without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrInstructionsAreRequired is returned for blank customer instructions.
	ErrInstructionsAreRequired = errs.NewValueIsRequiredError("instructions")
)

// NewID returns a fresh order identifier. Uniqueness against existing orders
// is checked by the caller.
func NewID() string {
	return kernel.NewToken(IDPrefix, IDLength)
}

// Order is the aggregate root for a customer delivery request.
//
// Order follows these invariants:
//   - Pending orders have no driver; InProgress, Delivered and Failed orders have one
//   - Delivered and Failed are terminal
//   - deliveredAt and proof of delivery are only set on Delivered orders
//   - rating is only set on Delivered orders and stays within [MinRating..MaxRating]
type Order struct {
	id           string
	customerName string
	pickup       kernel.Address
	delivery     kernel.Address
	items        []Item
	status       Status
	driverID     *string
	createdAt    time.Time
	deliveredAt  *time.Time
	proof        *ProofOfDelivery
	rating       *int
	instructions string

	isConstructed bool
}

// NewOrder creates a Pending, unassigned order.
//
// Example:
//
//	pickup, _ := kernel.NewAddress("Av. Corrientes 1234, CABA")
//	dropoff, _ := kernel.NewAddress("Florida 550, CABA")
//	item, _ := order.NewItem("Documents", 1)
//	o, err := order.NewOrder(order.NewID(), "Oficina Legal Diaz", pickup, dropoff, []order.Item{item}, time.Now())
func NewOrder(
	id string,
	customerName string,
	pickup kernel.Address,
	delivery kernel.Address,
	items []Item,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setAddresses(pickup, delivery),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State carries every persisted attribute of an order for RestoreOrder.
type State struct {
	ID           string
	CustomerName string
	Pickup       kernel.Address
	Delivery     kernel.Address
	Items        []Item
	Status       Status
	DriverID     *string
	CreatedAt    time.Time
	DeliveredAt  *time.Time
	Proof        *ProofOfDelivery
	Rating       *int
	Instructions string
}

// RestoreOrder rebuilds an order in an arbitrary lifecycle state, for example
// from a seed file. The status and driver assignment must be consistent.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		createdAt:     s.CreatedAt,
		instructions:  strings.TrimSpace(s.Instructions),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerName(s.CustomerName),
		o.setAddresses(s.Pickup, s.Delivery),
		o.setItems(s.Items),
		o.setStatus(s.Status, s.DriverID),
	); err != nil {
		return nil, err
	}

	if s.Rating != nil {
		if err := validateRating(*s.Rating); err != nil {
			return nil, err
		}
		r := *s.Rating
		o.rating = &r
	}
	if s.DeliveredAt != nil {
		at := *s.DeliveredAt
		o.deliveredAt = &at
	}
	if s.Proof != nil {
		p := *s.Proof
		o.proof = &p
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) Pickup() kernel.Address {
	return o.pickup
}

func (o *Order) Delivery() kernel.Address {
	return o.delivery
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the assigned driver, or nil when unassigned.
func (o *Order) DriverID() *string {
	if o.driverID == nil {
		return nil
	}
	id := *o.driverID
	return &id
}

// IsAssignedTo reports whether driverID is the assigned driver.
func (o *Order) IsAssignedTo(driverID string) bool {
	return o.driverID != nil && *o.driverID == driverID
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	at := *o.deliveredAt
	return &at
}

func (o *Order) Proof() *ProofOfDelivery {
	if o.proof == nil {
		return nil
	}
	p := *o.proof
	return &p
}

func (o *Order) Rating() *int {
	if o.rating == nil {
		return nil
	}
	r := *o.rating
	return &r
}

func (o *Order) Instructions() string {
	return o.instructions
}

// Assign gives the order to driverID and moves it to InProgress.
// Reassignment of an InProgress order is allowed; Delivered and Failed orders
// return an InvalidTransitionError.
func (o *Order) Assign(driverID string) error {
	if strings.TrimSpace(driverID) == "" {
		return errs.NewValueIsRequiredError("driver id")
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	return nil
}

// Deliver marks an InProgress order as Delivered at the given time.
func (o *Order) Deliver(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// DeliverWithProof is Deliver plus the attached evidence.
func (o *Order) DeliverWithProof(proof ProofOfDelivery, at time.Time) error {
	if err := o.Deliver(at); err != nil {
		return err
	}
	o.proof = &proof
	return nil
}

// Fail marks an InProgress order as Failed.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Release returns an InProgress order to the Pending pool and clears its driver.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = nil
	return nil
}

// Rate records a customer rating. Only Delivered orders can be rated.
func (o *Order) Rate(rating int) error {
	if o.status != Delivered {
		return errs.NewInvalidTransitionErrorWithReason(
			"order", o.status.String(), "Rated", "only delivered orders can be rated")
	}
	if err := validateRating(rating); err != nil {
		return err
	}
	o.rating = &rating
	return nil
}

// SetInstructions replaces the customer instructions of an open order.
func (o *Order) SetInstructions(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrInstructionsAreRequired
	}
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithReason(
			"order", o.status.String(), o.status.String(), "instructions can only change on open orders")
	}
	o.instructions = text
	return nil
}

// Clone returns a deep copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	c := *o
	c.items = slices.Clone(o.items)
	c.driverID = o.DriverID()
	c.deliveredAt = o.DeliveredAt()
	c.proof = o.Proof()
	c.rating = o.Rating()
	return &c
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	o.customerName = name
	return nil
}

func (o *Order) setAddresses(pickup, delivery kernel.Address) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	o.pickup = pickup
	o.delivery = delivery
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if item.quantity < 1 || item.name == "" {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d must be created via NewItem", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setStatus(status Status, driverID *string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if driverID != nil && strings.TrimSpace(*driverID) == "" {
		driverID = nil
	}
	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return err
	}
	o.status = status
	if driverID != nil {
		id := *driverID
		o.driverID = &id
	}
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}
	return nil
}
