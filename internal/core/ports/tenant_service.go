package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// TenantDetail is a tenant together with its current usage stats.
type TenantDetail struct {
	Tenant *domain.Tenant
	Stats  domain.TenantStats
}

// TenantService defines use-case operations for tenants.
type TenantService interface {
	// Get returns the tenant and its usage, visible to members of the
	// tenant and to super_admin.
	Get(ctx context.Context, p domain.Principal, tenantID string) (*TenantDetail, error)
}
