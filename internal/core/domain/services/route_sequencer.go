package services

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// SequencedRoute is the visiting order produced by RouteSequencer.
type SequencedRoute struct {
	// Orders in visiting order.
	Orders []*order.Order
	// Waypoints starts at the origin, followed by each delivery location.
	Waypoints []kernel.Location
	// TotalKm is the haversine length of the whole path.
	TotalKm float64
}

// RouteSequencer orders a driver's active deliveries with a greedy
// nearest-neighbour walk over haversine distances. The result is heuristic,
// not optimal.
//
// The walk is deterministic: on equal distances the order that appears first
// in the input wins, so sequencing an already sequenced list returns it unchanged.
type RouteSequencer struct{}

func NewRouteSequencer() RouteSequencer {
	return RouteSequencer{}
}

// Sequence plans a route from origin through the delivery location of every order.
// All orders must be InProgress.
func (RouteSequencer) Sequence(origin kernel.Location, orders []*order.Order) (SequencedRoute, error) {
	if err := origin.Validate(); err != nil {
		return SequencedRoute{}, err
	}
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return SequencedRoute{}, err
		}
		if o.Status() != order.InProgress {
			return SequencedRoute{}, errs.NewInvalidTransitionErrorWithReason(
				"order", o.Status().String(), "Sequenced", "only in-progress orders can be routed")
		}
	}

	remaining := make([]*order.Order, len(orders))
	copy(remaining, orders)

	route := SequencedRoute{
		Orders:    make([]*order.Order, 0, len(orders)),
		Waypoints: make([]kernel.Location, 0, len(orders)+1),
	}
	route.Waypoints = append(route.Waypoints, origin)

	current := origin
	for len(remaining) > 0 {
		bestIdx := -1
		bestKm := math.MaxFloat64

		for i, o := range remaining {
			km, err := current.Distance(o.Delivery().Location())
			if err != nil {
				return SequencedRoute{}, err
			}
			// Strict comparison keeps the earliest candidate on ties.
			if km < bestKm {
				bestKm = km
				bestIdx = i
			}
		}

		next := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		current = next.Delivery().Location()
		route.Orders = append(route.Orders, next)
		route.Waypoints = append(route.Waypoints, current)
		route.TotalKm += bestKm
	}

	return route, nil
}
