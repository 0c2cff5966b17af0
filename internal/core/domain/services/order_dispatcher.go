package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// DefaultLoadPenaltyKm is the distance added per order a driver already carries.
const DefaultLoadPenaltyKm = 2.0

// ErrDriverNotFound is returned when no eligible driver can take the order.
var ErrDriverNotFound = errors.New("driver not found")

// OrderDispatcher picks the most suitable driver for a Pending order.
//
// Selection algorithm:
//   - Skips drivers that are not eligible (Online and Approved)
//   - Scores each driver by its distance to the pickup plus a penalty per active order
//   - Returns the lowest score; ties keep the first driver in input order
//
// The dispatcher never mutates the order or the drivers.
type OrderDispatcher struct {
	loadPenaltyKm float64
}

func NewOrderDispatcher(loadPenaltyKm float64) OrderDispatcher {
	if loadPenaltyKm < 0 {
		loadPenaltyKm = 0
	}
	return OrderDispatcher{loadPenaltyKm: loadPenaltyKm}
}

// Dispatch returns the best driver for o and its distance to the pickup in km.
// load maps driver ids to their current number of InProgress orders.
func (d OrderDispatcher) Dispatch(o *order.Order, drivers []*driver.Driver, load map[string]int) (*driver.Driver, float64, error) {
	if err := o.Validate(); err != nil {
		return nil, 0, err
	}
	if o.Status() != order.Pending {
		return nil, 0, errs.NewInvalidTransitionError("order", o.Status().String(), order.InProgress.String())
	}

	var (
		best      *driver.Driver
		bestScore = math.MaxFloat64
		bestKm    float64
	)

	for _, candidate := range drivers {
		if err := candidate.Validate(); err != nil {
			return nil, 0, err
		}
		if !candidate.IsEligibleForAssignment() {
			continue
		}

		km, err := candidate.Location().Distance(o.Pickup().Location())
		if err != nil {
			return nil, 0, err
		}

		score := km + d.loadPenaltyKm*float64(load[candidate.ID()])
		if score < bestScore {
			bestScore = score
			bestKm = km
			best = candidate
		}
	}

	if best == nil {
		return nil, 0, ErrDriverNotFound
	}
	return best, bestKm, nil
}
