package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// TenantRepository defines persistence operations for tenants.
// The backing store must enforce subdomain uniqueness regardless of
// application-level checks.
type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
}
