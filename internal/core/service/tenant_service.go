package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

// TenantService implements tenant detail reads.
type TenantService struct {
	tenants ports.TenantRepository
	counter ports.ResourceCounter
	tasks   ports.TaskRepository
	log     zerolog.Logger
}

func NewTenantService(
	tenants ports.TenantRepository,
	counter ports.ResourceCounter,
	tasks ports.TaskRepository,
	log zerolog.Logger,
) *TenantService {
	return &TenantService{tenants: tenants, counter: counter, tasks: tasks, log: log}
}

// Get returns the tenant and its usage stats. The caller already knows the
// tenant id, so a cross-tenant request is reported as unauthorized rather
// than not-found; an id that does not resolve at all is not-found.
func (s *TenantService) Get(ctx context.Context, p domain.Principal, tenantID string) (*ports.TenantDetail, error) {
	if err := decide(p, domain.ActionTenantView, tenantID, ""); err != nil {
		return nil, err
	}

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var stats domain.TenantStats
	if stats.TotalUsers, err = s.counter.Count(ctx, tenantID, ports.KindUsers); err != nil {
		return nil, fmt.Errorf("tenant stats: %w", err)
	}
	if stats.TotalProjects, err = s.counter.Count(ctx, tenantID, ports.KindProjects); err != nil {
		return nil, fmt.Errorf("tenant stats: %w", err)
	}
	if stats.TotalTasks, err = s.tasks.CountByTenant(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("tenant stats: %w", err)
	}

	return &ports.TenantDetail{Tenant: tenant, Stats: stats}, nil
}
