// Package cache persists the last known server responses so reads keep
// working while the server is unreachable.
package cache

import (
	"context"
	"time"
)

// Partitions separate cached payloads by resource family so a stale write in
// one family never shadows another.
const (
	PartitionResources   = "resources"
	PartitionDiscussions = "discussions"
	PartitionUser        = "user"
)

// Repository stores raw response payloads keyed by (partition, key).
type Repository interface {
	// Put inserts or replaces the payload under (partition, key) and stamps
	// the time it was cached.
	Put(ctx context.Context, partition, key string, payload []byte) error

	// Get returns the payload and the time it was cached.
	// Returns common.ErrorNotFound when nothing is cached under the key.
	Get(ctx context.Context, partition, key string) ([]byte, time.Time, error)

	// Delete removes a single cached payload. Missing keys are not an error.
	Delete(ctx context.Context, partition, key string) error

	// DeletePartition removes every payload in a partition.
	DeletePartition(ctx context.Context, partition string) error
}
