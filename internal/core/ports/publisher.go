package ports

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
)

// CommittedBatch holds the journal entries created by one committed unit of work.
type CommittedBatch struct {
	Notifications []*journal.Notification
	Messages      []*journal.Message
}

// IsEmpty reports whether there is nothing to deliver.
func (b CommittedBatch) IsEmpty() bool {
	return len(b.Notifications) == 0 && len(b.Messages) == 0
}

// EventPublisher delivers committed journal entries to connected clients and
// push services. Publish is best effort; failures are logged by implementations.
type EventPublisher interface {
	Publish(ctx context.Context, batch CommittedBatch)
}
