// Package quota implements admission control against per-tenant resource
// ceilings. The check "current count < ceiling" and the reservation are a
// single atomic step per (tenant, kind): a plain count-then-insert sequence
// is unsafe when admissions race, so the governor holds a conditional
// increment-and-compare against a live counter under a per-slot lock.
package quota

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

type slotKey struct {
	tenantID string
	kind     ports.ResourceKind
}

// slot tracks the live reserved count for one (tenant, kind). The counter is
// seeded lazily from the committed store count on first admission.
type slot struct {
	mu     sync.Mutex
	synced bool
	used   int64
}

// Governor is the QuotaGovernor implementation. Serialization is scoped
// strictly per (tenant, kind): admissions for different tenants, or for users
// versus projects of the same tenant, take independent locks.
type Governor struct {
	tenants ports.TenantRepository
	counter ports.ResourceCounter
	log     zerolog.Logger

	mu    sync.Mutex
	slots map[slotKey]*slot
}

// NewGovernor creates a Governor backed by the given tenant store and counter.
func NewGovernor(tenants ports.TenantRepository, counter ports.ResourceCounter, log zerolog.Logger) *Governor {
	return &Governor{
		tenants: tenants,
		counter: counter,
		log:     log,
		slots:   make(map[slotKey]*slot),
	}
}

// TryAdmit reserves one unit of the tenant's ceiling for kind, or reports why
// it cannot. See ports.QuotaGovernor for the contract.
func (g *Governor) TryAdmit(ctx context.Context, tenantID string, kind ports.ResourceKind) error {
	tenant, err := g.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			metrics.AdmissionsTotal.WithLabelValues(string(kind), "tenant_not_found").Inc()
			return domain.ErrTenantNotFound
		}
		metrics.AdmissionsTotal.WithLabelValues(string(kind), "error").Inc()
		return fmt.Errorf("quota: load tenant: %w", err)
	}
	if tenant.Status != domain.TenantActive {
		metrics.AdmissionsTotal.WithLabelValues(string(kind), "tenant_inactive").Inc()
		return domain.ErrTenantInactive
	}

	limit, err := ceiling(tenant, kind)
	if err != nil {
		metrics.AdmissionsTotal.WithLabelValues(string(kind), "error").Inc()
		return err
	}

	s := g.slot(tenantID, kind)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.synced {
		n, err := g.counter.Count(ctx, tenantID, kind)
		if err != nil {
			metrics.AdmissionsTotal.WithLabelValues(string(kind), "error").Inc()
			return fmt.Errorf("quota: count %s: %w", kind, err)
		}
		s.used = n
		s.synced = true
	}

	if s.used >= limit {
		metrics.AdmissionsTotal.WithLabelValues(string(kind), "limit_reached").Inc()
		g.log.Debug().
			Str("tenant_id", tenantID).
			Str("resource", string(kind)).
			Int64("limit", limit).
			Msg("admission rejected: ceiling reached")
		return domain.ErrLimitReached
	}

	s.used++
	metrics.AdmissionsTotal.WithLabelValues(string(kind), "admitted").Inc()
	return nil
}

// Release returns one reserved unit after a confirmed deletion, or to
// compensate a creation that failed after admission. Idempotent against
// double release: the counter never goes negative, and an unsynced slot is
// left alone (the next admission re-seeds it from the store).
func (g *Governor) Release(tenantID string, kind ports.ResourceKind) {
	s := g.slot(tenantID, kind)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.synced || s.used == 0 {
		return
	}
	s.used--
	metrics.ReleasesTotal.WithLabelValues(string(kind)).Inc()
}

func (g *Governor) slot(tenantID string, kind ports.ResourceKind) *slot {
	key := slotKey{tenantID: tenantID, kind: kind}

	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.slots[key]
	if !ok {
		s = &slot{}
		g.slots[key] = s
	}
	return s
}

func ceiling(t *domain.Tenant, kind ports.ResourceKind) (int64, error) {
	switch kind {
	case ports.KindUsers:
		return t.MaxUsers, nil
	case ports.KindProjects:
		return t.MaxProjects, nil
	default:
		return 0, fmt.Errorf("quota: %w: unknown resource kind %q", domain.ErrInvalidInput, kind)
	}
}
