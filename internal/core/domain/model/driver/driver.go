package driver

import (
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// IDPrefix starts every driver identifier, e.g. "D-4KQ2".
	IDPrefix = "D"
	// IDLength is the number of random characters after the prefix.
	IDLength = 4
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsInvalid is returned for an email address that does not parse.
	ErrEmailIsInvalid = errs.NewValueIsInvalidError("email")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// NewID returns a fresh driver identifier.
func NewID() string {
	return kernel.NewToken(IDPrefix, IDLength)
}

// Driver is the aggregate root for a member of the delivery fleet.
//
// Business rules:
//   - New drivers start Pending and Offline at the city centre
//   - Approval and rejection happen once, from Pending only
//   - Rejected drivers cannot change their operational status
//   - Only Online and Approved drivers are eligible for assignments
//   - The idle alert fires once per idle period and re-arms on movement
type Driver struct {
	id            string
	name          string
	email         string
	vehicle       Vehicle
	deviceToken   string
	location      kernel.Location
	status        Status
	accountStatus AccountStatus
	lastMovedAt   time.Time
	idleAlerted   bool
	route         []kernel.Location
	guard         guard.ConstructorGuard
}

// NewDriver registers a driver awaiting approval.
//
// Example:
//
//	vehicle, _ := driver.NewVehicle("Moto Honda Wave", "A123BCC", 20, driver.Gasoline)
//	d, err := driver.NewDriver(driver.NewID(), "Carlos Gomez", "carlos@email.com", vehicle, "", time.Now())
func NewDriver(id, name, email string, vehicle Vehicle, deviceToken string, now time.Time) (*Driver, error) {
	d := &Driver{
		location:      kernel.DefaultLocation(),
		status:        Offline,
		accountStatus: AccountPending,
		lastMovedAt:   now,
		deviceToken:   strings.TrimSpace(deviceToken),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setEmail(email),
		d.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// State carries every persisted attribute of a driver for RestoreDriver.
type State struct {
	ID            string
	Name          string
	Email         string
	Vehicle       Vehicle
	DeviceToken   string
	Location      kernel.Location
	Status        Status
	AccountStatus AccountStatus
	LastMovedAt   time.Time
}

// RestoreDriver rebuilds a driver in an arbitrary state, for example from a seed file.
func RestoreDriver(s State) (*Driver, error) {
	d := &Driver{
		deviceToken: strings.TrimSpace(s.DeviceToken),
		lastMovedAt: s.LastMovedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(s.ID),
		d.setName(s.Name),
		d.setEmail(s.Email),
		d.setVehicle(s.Vehicle),
		d.setLocation(s.Location),
		s.Status.Validate(),
		s.AccountStatus.Validate(),
	); err != nil {
		return nil, err
	}

	d.status = s.Status
	d.accountStatus = s.AccountStatus
	return d, nil
}

// Validate ensures the driver was created by a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id == other.id
}

func (d *Driver) ID() string {
	return d.id
}

func (d *Driver) Name() string {
	return d.name
}

func (d *Driver) Email() string {
	return d.email
}

func (d *Driver) Vehicle() Vehicle {
	return d.vehicle
}

// DeviceToken is the push registration token, empty when the driver has none.
func (d *Driver) DeviceToken() string {
	return d.deviceToken
}

func (d *Driver) Location() kernel.Location {
	return d.location
}

func (d *Driver) Status() Status {
	return d.status
}

func (d *Driver) AccountStatus() AccountStatus {
	return d.accountStatus
}

func (d *Driver) LastMovedAt() time.Time {
	return d.lastMovedAt
}

// IsEligibleForAssignment reports whether the driver can receive new orders.
func (d *Driver) IsEligibleForAssignment() bool {
	return d.status == Online && d.accountStatus == AccountApproved
}

// Approve accepts a Pending account.
func (d *Driver) Approve() error {
	return d.decide(AccountApproved)
}

// Reject refuses a Pending account.
func (d *Driver) Reject() error {
	return d.decide(AccountRejected)
}

func (d *Driver) decide(outcome AccountStatus) error {
	if d.accountStatus != AccountPending {
		return errs.NewInvalidTransitionError("driver account", d.accountStatus.String(), outcome.String())
	}
	d.accountStatus = outcome
	return nil
}

// ChangeStatus sets the operational status and reports whether it changed.
// Going Online restarts the idle timer at the given time.
func (d *Driver) ChangeStatus(status Status, at time.Time) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if d.accountStatus == AccountRejected {
		return false, errs.NewInvalidTransitionErrorWithReason(
			"driver", d.status.String(), status.String(), "account is rejected")
	}
	if d.status == status {
		return false, nil
	}

	if status == Online {
		d.lastMovedAt = at
		d.idleAlerted = false
	}
	d.status = status
	return true, nil
}

// MoveTo records a new position and re-arms the idle alert.
func (d *Driver) MoveTo(location kernel.Location, at time.Time) error {
	if err := d.setLocation(location); err != nil {
		return err
	}
	d.lastMovedAt = at
	d.idleAlerted = false
	return nil
}

// DetectIdle returns true exactly once per idle period: when an Online driver
// has not moved for longer than threshold and no alert was raised since the
// last movement.
func (d *Driver) DetectIdle(now time.Time, threshold time.Duration) bool {
	if d.status != Online || d.idleAlerted {
		return false
	}
	if now.Sub(d.lastMovedAt) <= threshold {
		return false
	}
	d.idleAlerted = true
	return true
}

// SetRoute stores the sequenced waypoints produced by route optimisation.
func (d *Driver) SetRoute(waypoints []kernel.Location) {
	d.route = slices.Clone(waypoints)
}

// ClearRoute drops the stored route. Called whenever the driver's active orders change.
func (d *Driver) ClearRoute() {
	d.route = nil
}

// OptimizedRoute returns a copy of the stored waypoints, nil when there is none.
func (d *Driver) OptimizedRoute() []kernel.Location {
	return slices.Clone(d.route)
}

// Clone returns a deep copy that shares no mutable state with d.
func (d *Driver) Clone() *Driver {
	c := *d
	c.route = slices.Clone(d.route)
	return &c
}

func (d *Driver) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("driver id")
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrEmailIsInvalid
	}
	d.email = email
	return nil
}

func (d *Driver) setVehicle(vehicle Vehicle) error {
	if err := vehicle.validate(); err != nil {
		return err
	}
	d.vehicle = vehicle
	return nil
}

func (d *Driver) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}
