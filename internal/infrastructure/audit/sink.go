// Package audit implements the fire-and-forget audit trail sink. Recording
// is decoupled from the primary mutation: a full queue or a failed write is
// logged locally and the entry dropped, never surfaced to the caller.
package audit

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink routes audit entries to a fixed set of workers using consistent
// hashing on the tenant id, so entries for one tenant are persisted in the
// order they were recorded. Ordering across tenants is not guaranteed.
type Sink struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewSink creates a Sink with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSink(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Sink {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Sink{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Sink) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry for its tenant's worker. Non-blocking: when the
// worker queue is full the entry is dropped and logged locally.
func (s *Sink) Record(e domain.AuditEntry) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	select {
	case s.workers[s.shardIndex(e.TenantID)] <- e:
	default:
		metrics.AuditDroppedTotal.WithLabelValues("queue_full").Inc()
		s.log.Warn().
			Str("tenant_id", e.TenantID).
			Str("action", e.Action).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps a tenant id deterministically to a worker index.
func (s *Sink) shardIndex(tenantID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tenantID))
	return int(h.Sum32()) % len(s.workers)
}

func (s *Sink) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if err := s.repo.Insert(ctx, &e); err != nil {
				metrics.AuditDroppedTotal.WithLabelValues("store_error").Inc()
				s.log.Error().Err(err).
					Str("tenant_id", e.TenantID).
					Str("action", e.Action).
					Int("worker_id", id).
					Msg("audit write failed, entry dropped")
				continue
			}
			metrics.AuditRecordedTotal.Inc()
		}
	}
}
