// Package outbox persists writes that failed to reach the server so they can
// be replayed, oldest first, once connectivity returns.
package outbox

import (
	"context"
	"time"

	"communityhub/internal/client/models"
)

// Queue names group deferred writes by the resource family they mutate.
const (
	QueueResources   = "resources-queue"
	QueueDiscussions = "discussions-queue"
)

// Repository stores deferred writes in FIFO order per queue.
type Repository interface {
	// Enqueue appends a deferred write to its queue.
	Enqueue(ctx context.Context, queue, method, path string, body []byte) error

	// ListPending returns every entry of a queue, oldest first.
	ListPending(ctx context.Context, queue string) ([]models.OutboxEntry, error)

	// Delete removes a replayed (or abandoned) entry by id.
	Delete(ctx context.Context, id int64) error

	// PurgeExpired drops entries created before the cutoff, across all
	// queues. Returns the number of dropped entries.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
