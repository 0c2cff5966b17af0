// Package local provides oracles that run in process without network access.
// They back the service when no Gemini key is configured and in tests.
package local

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// NearestDriverOracle proposes the closest eligible driver for every Pending
// order, penalising drivers by the orders they already carry. Orders proposed
// earlier in the same answer count towards the load of their driver.
type NearestDriverOracle struct {
	dispatcher services.OrderDispatcher
}

func NewNearestDriverOracle(loadPenaltyKm float64) *NearestDriverOracle {
	return &NearestDriverOracle{dispatcher: services.NewOrderDispatcher(loadPenaltyKm)}
}

func (o *NearestDriverOracle) ProposeAssignments(
	ctx context.Context,
	req ports.AssignmentRequest,
) ([]ports.AssignmentProposal, error) {
	load := make(map[string]int, len(req.ActiveLoad))
	for id, n := range req.ActiveLoad {
		load[id] = n
	}

	proposals := make([]ports.AssignmentProposal, 0, len(req.Orders))
	for _, ord := range req.Orders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		best, km, err := o.dispatcher.Dispatch(ord, req.Drivers, load)
		if errors.Is(err, services.ErrDriverNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}

		load[best.ID()]++
		proposals = append(proposals, ports.AssignmentProposal{
			OrderID:  ord.ID(),
			DriverID: best.ID(),
			Reason:   fmt.Sprintf("Nearest available driver, %.1f km from pickup.", km),
		})
	}
	return proposals, nil
}
