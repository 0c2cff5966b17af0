package push

import (
	"context"

	"dispatch/internal/core/ports"
)

// Fanout hands every batch to each publisher in turn.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, batch ports.CommittedBatch) {
	if batch.IsEmpty() {
		return
	}
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, batch)
		}
	}
}
