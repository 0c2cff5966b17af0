package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

type GetFleetQueryHandler struct {
	reader ports.FleetReader
}

func NewGetFleetQueryHandler(reader ports.FleetReader) GetFleetQueryHandler {
	return GetFleetQueryHandler{reader: reader}
}

func (h GetFleetQueryHandler) Handle(ctx context.Context, query GetFleetQuery) (GetFleetQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFleetQueryResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return GetFleetQueryResponse{}, err
	}

	snap := h.reader.Snapshot()
	resp := GetFleetQueryResponse{
		Drivers: make([]DriverView, 0, len(snap.Drivers)),
		Orders:  make([]OrderView, 0, len(snap.Orders)),
	}
	for _, d := range snap.Drivers {
		resp.Drivers = append(resp.Drivers, NewDriverView(d))
	}
	for _, o := range snap.Orders {
		resp.Orders = append(resp.Orders, NewOrderView(o))
	}
	return resp, nil
}
