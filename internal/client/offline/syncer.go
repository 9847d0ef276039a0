// Package offline implements the client's offline behavior: cache-aside
// reads that fall back to the local copy when the server is unreachable, and
// a durable outbox that replays deferred writes once connectivity returns.
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"communityhub/internal/client/api"
	"communityhub/internal/client/connectivity"
	"communityhub/internal/client/repositories/cache"
	"communityhub/internal/client/repositories/outbox"
	"communityhub/internal/logging"
)

// ReadResult carries a read payload and whether it came from the cache.
type ReadResult struct {
	Payload []byte
	// FromCache is true when the server was unreachable and the payload is
	// the last cached copy.
	FromCache bool
	// CachedAt is the time the payload was cached. Zero for live reads.
	CachedAt time.Time
}

// WriteResult carries a write outcome.
type WriteResult struct {
	// Payload is the server's response. Nil when the write was queued.
	Payload []byte
	// Queued is true when the server was unreachable and the write now
	// waits in the outbox.
	Queued bool
}

// Syncer routes reads and writes through the cache and the outbox.
type Syncer struct {
	api       *api.Client
	cache     cache.Repository
	outbox    outbox.Repository
	monitor   *connectivity.Monitor
	logger    logging.Logger
	retention time.Duration

	replayMu sync.Mutex
}

// NewSyncer wires the offline layer together. retention bounds how long a
// queued write stays replayable.
func NewSyncer(apiClient *api.Client, cacheRepo cache.Repository, outboxRepo outbox.Repository,
	monitor *connectivity.Monitor, logger logging.Logger, retention time.Duration) *Syncer {
	return &Syncer{
		api:       apiClient,
		cache:     cacheRepo,
		outbox:    outboxRepo,
		monitor:   monitor,
		logger:    logger,
		retention: retention,
	}
}

// Get fetches path from the server and caches the payload under
// (partition, key). When the server does not respond, the last cached copy is
// returned instead. A server rejection (4xx/5xx) is returned as-is; the cache
// only masks connectivity loss, never errors.
func (s *Syncer) Get(ctx context.Context, partition, key, path string) (*ReadResult, error) {
	payload, err := s.api.Do(ctx, "GET", path, nil)
	if err == nil {
		s.monitor.SetOnline(true)
		if cacheErr := s.cache.Put(ctx, partition, key, payload); cacheErr != nil {
			s.logger.Error(ctx, "cache write failed", "partition", partition, "key", key, "error", cacheErr)
		}
		return &ReadResult{Payload: payload}, nil
	}

	if !api.IsNoResponse(err) {
		return nil, err
	}
	s.monitor.SetOnline(false)

	cached, cachedAt, cacheErr := s.cache.Get(ctx, partition, key)
	if cacheErr != nil {
		// Nothing cached; surface the connectivity failure.
		return nil, err
	}

	s.monitor.Publish(connectivity.Event{Kind: connectivity.EventServedFromCache, Detail: partition})
	return &ReadResult{Payload: cached, FromCache: true, CachedAt: cachedAt}, nil
}

// ElementKeyFunc extracts the cache key of one element of a list payload.
// Returning false skips the element.
type ElementKeyFunc func(element []byte) (string, bool)

// GetList fetches a collection like Get, and on a live response additionally
// caches every element under its own key, so single-item reads keep working
// offline after only the list was fetched.
func (s *Syncer) GetList(ctx context.Context, partition, key, path string, elemKey ElementKeyFunc) (*ReadResult, error) {
	res, err := s.Get(ctx, partition, key, path)
	if err != nil || res.FromCache {
		return res, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(res.Payload, &elements); err != nil {
		return res, nil
	}
	for _, element := range elements {
		k, ok := elemKey(element)
		if !ok {
			continue
		}
		if cacheErr := s.cache.Put(ctx, partition, k, element); cacheErr != nil {
			s.logger.Error(ctx, "cache write failed", "partition", partition, "key", k, "error", cacheErr)
		}
	}
	return res, nil
}

// Write sends a mutation to the server. When the server does not respond the
// write is appended to its queue for later replay; the connectivity failure
// is still returned alongside Queued=true, so callers see the truth rather
// than an optimistic acknowledgement. A server rejection is returned as-is
// and is never queued.
func (s *Syncer) Write(ctx context.Context, queue, method, path string, body []byte) (*WriteResult, error) {
	payload, err := s.api.Do(ctx, method, path, body)
	if err == nil {
		s.monitor.SetOnline(true)
		s.invalidate(ctx, queue)
		return &WriteResult{Payload: payload}, nil
	}

	if !api.IsNoResponse(err) {
		return nil, err
	}
	s.monitor.SetOnline(false)

	if enqueueErr := s.outbox.Enqueue(ctx, queue, method, path, body); enqueueErr != nil {
		return nil, fmt.Errorf("deferring write: %w", enqueueErr)
	}
	return &WriteResult{Queued: true}, err
}

// Replay drains the outbox, oldest first per queue. Entries older than the
// retention window are discarded before the pass. An entry the server
// answers, even with a rejection, counts as delivered and is dropped; the
// drain stops only when the server stops responding.
func (s *Syncer) Replay(ctx context.Context) error {
	s.replayMu.Lock()
	defer s.replayMu.Unlock()

	s.monitor.Publish(connectivity.Event{Kind: connectivity.EventSyncStarted})
	defer s.monitor.Publish(connectivity.Event{Kind: connectivity.EventSyncFinished})

	dropped, err := s.outbox.PurgeExpired(ctx, time.Now().Add(-s.retention))
	if err != nil {
		return fmt.Errorf("purging expired writes: %w", err)
	}
	if dropped > 0 {
		s.logger.Info(ctx, "discarded expired queued writes", "count", dropped)
	}

	for _, queue := range []string{outbox.QueueResources, outbox.QueueDiscussions} {
		if err := s.replayQueue(ctx, queue); err != nil {
			return err
		}
	}
	return nil
}

func (s *Syncer) replayQueue(ctx context.Context, queue string) error {
	pending, err := s.outbox.ListPending(ctx, queue)
	if err != nil {
		return fmt.Errorf("listing queue %s: %w", queue, err)
	}
	if len(pending) == 0 {
		return nil
	}

	for _, entry := range pending {
		_, err := s.api.Do(ctx, entry.Method, entry.Path, entry.Body)
		if api.IsNoResponse(err) {
			// Connectivity dropped again; keep the rest for next time.
			s.monitor.SetOnline(false)
			return err
		}
		if err != nil {
			s.logger.Info(ctx, "queued write rejected by server, dropping",
				"queue", queue, "method", entry.Method, "path", entry.Path, "error", err)
		}
		if delErr := s.outbox.Delete(ctx, entry.ID); delErr != nil {
			return fmt.Errorf("removing replayed entry: %w", delErr)
		}
	}

	s.monitor.SetOnline(true)
	s.invalidate(ctx, queue)
	return nil
}

// invalidate drops the cache partition a queue's writes mutate, so the next
// read refetches instead of serving a pre-write copy.
func (s *Syncer) invalidate(ctx context.Context, queue string) {
	var partition string
	switch queue {
	case outbox.QueueResources:
		partition = cache.PartitionResources
	case outbox.QueueDiscussions:
		partition = cache.PartitionDiscussions
	default:
		return
	}
	if err := s.cache.DeletePartition(ctx, partition); err != nil {
		s.logger.Error(ctx, "cache invalidation failed", "partition", partition, "error", err)
	}
}

// Run replays the outbox every time connectivity returns, until ctx is done.
func (s *Syncer) Run(ctx context.Context) {
	events, cancel := s.monitor.Subscribe()
	defer cancel()

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if e.Kind != connectivity.EventOnline {
				continue
			}
			if err := s.Replay(ctx); err != nil {
				s.logger.Error(ctx, "replay failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Ping probes the server once and records the observation. A responding
// server counts as online even when it answers with an error status.
func (s *Syncer) Ping(ctx context.Context) error {
	err := s.api.Ping(ctx)
	s.monitor.SetOnline(err == nil || !api.IsNoResponse(err))
	return err
}

// Watch probes server reachability at the given interval and feeds the
// monitor, until ctx is done.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			_ = s.Ping(pingCtx)
			cancel()
		case <-ctx.Done():
			return
		}
	}
}
