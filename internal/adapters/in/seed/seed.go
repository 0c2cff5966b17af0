// Package seed loads an initial fleet from a YAML file at startup.
//
// Times in the file are given relative to the moment of loading, for
// example createdAgo: 2h, so a fresh process always shows a plausible history.
package seed

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"gopkg.in/yaml.v3"
)

type Location struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type Vehicle struct {
	Type       string `yaml:"type"`
	Plate      string `yaml:"plate"`
	CapacityKg int    `yaml:"capacityKg"`
	Fuel       string `yaml:"fuel"`
}

type Driver struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	DeviceToken   string   `yaml:"deviceToken,omitempty"`
	Vehicle       Vehicle  `yaml:"vehicle"`
	Location      Location `yaml:"location"`
	Status        string   `yaml:"status"`
	AccountStatus string   `yaml:"accountStatus"`
}

type Item struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

type Order struct {
	ID              string        `yaml:"id"`
	CustomerName    string        `yaml:"customerName"`
	PickupAddress   string        `yaml:"pickupAddress"`
	DeliveryAddress string        `yaml:"deliveryAddress"`
	Items           []Item        `yaml:"items"`
	Status          string        `yaml:"status"`
	DriverID        string        `yaml:"driverId,omitempty"`
	CreatedAgo      time.Duration `yaml:"createdAgo"`
	DeliveredAgo    time.Duration `yaml:"deliveredAgo,omitempty"`
	Rating          *int          `yaml:"rating,omitempty"`
	Instructions    string        `yaml:"instructions,omitempty"`
}

type StatusLog struct {
	DriverID string        `yaml:"driverId"`
	Status   string        `yaml:"status"`
	Ago      time.Duration `yaml:"ago"`
}

// File models the seed YAML document.
type File struct {
	Drivers    []Driver    `yaml:"drivers"`
	Orders     []Order     `yaml:"orders"`
	StatusLogs []StatusLog `yaml:"statusLogs"`
}

// Load reads path. A missing file yields an empty fleet.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse seed file: %w", err)
	}
	return f, nil
}

// Apply adds the whole file in one unit of work. Orders and status logs are
// added oldest first so that both lists end up newest first.
func Apply(ctx context.Context, uowFactory commands.UoWFactory, clock kernel.Clock, f File) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := clock.Now()
	for i, d := range f.Drivers {
		aggregate, err := d.toDomain(now)
		if err != nil {
			return fmt.Errorf("driver %d (%s): %w", i, d.ID, err)
		}
		if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
			return err
		}
	}

	orders := make([]*order.Order, 0, len(f.Orders))
	for i, o := range f.Orders {
		aggregate, err := o.toDomain(now)
		if err != nil {
			return fmt.Errorf("order %d (%s): %w", i, o.ID, err)
		}
		if driverID := aggregate.DriverID(); driverID != nil {
			if _, err = uow.DriverRepository().Get(ctx, *driverID); err != nil {
				return fmt.Errorf("order %d (%s): %w", i, o.ID, err)
			}
		}
		orders = append(orders, aggregate)
	}
	sortOldestFirst(orders)
	for _, o := range orders {
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
	}

	logs := slices.Clone(f.StatusLogs)
	slices.SortStableFunc(logs, func(a, b StatusLog) int {
		return cmp.Compare(b.Ago, a.Ago)
	})
	for i, l := range logs {
		status, err := driver.ParseStatus(l.Status)
		if err != nil {
			return fmt.Errorf("status log %d: %w", i, err)
		}
		entry, err := journal.NewStatusLog(l.DriverID, status, now.Add(-l.Ago))
		if err != nil {
			return fmt.Errorf("status log %d: %w", i, err)
		}
		if err = uow.JournalRepository().AddStatusLog(ctx, entry); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (d Driver) toDomain(now time.Time) (*driver.Driver, error) {
	vehicle, err := driver.NewVehicle(d.Vehicle.Type, d.Vehicle.Plate, d.Vehicle.CapacityKg, driver.Fuel(d.Vehicle.Fuel))
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(d.Location.Lat, d.Location.Lng)
	if err != nil {
		return nil, err
	}
	status, err := driver.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	account, err := driver.ParseAccountStatus(d.AccountStatus)
	if err != nil {
		return nil, err
	}

	return driver.RestoreDriver(driver.State{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		Vehicle:       vehicle,
		DeviceToken:   d.DeviceToken,
		Location:      location,
		Status:        status,
		AccountStatus: account,
		LastMovedAt:   now,
	})
}

func (o Order) toDomain(now time.Time) (*order.Order, error) {
	pickup, err := kernel.NewAddress(o.PickupAddress)
	if err != nil {
		return nil, err
	}
	delivery, err := kernel.NewAddress(o.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(o.Items))
	for _, in := range o.Items {
		item, itemErr := order.NewItem(in.Name, in.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	state := order.State{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Pickup:       pickup,
		Delivery:     delivery,
		Items:        items,
		Status:       status,
		CreatedAt:    now.Add(-o.CreatedAgo),
		Rating:       o.Rating,
		Instructions: o.Instructions,
	}
	if o.DriverID != "" {
		driverID := o.DriverID
		state.DriverID = &driverID
	}
	if status == order.Delivered {
		deliveredAt := now.Add(-o.DeliveredAgo)
		state.DeliveredAt = &deliveredAt
	}
	return order.RestoreOrder(state)
}

func sortOldestFirst(orders []*order.Order) {
	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
}
