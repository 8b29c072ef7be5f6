package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// ListUsersFilter carries the query parameters for listing a tenant's users.
type ListUsersFilter struct {
	TenantID string
	Search   string // optional: partial match on full_name or email
	Role     string // optional: exact role filter
	Page     int    // 1-based
	Limit    int
}

// UserRepository defines persistence operations for users. The backing store
// must enforce (tenant_id, email) uniqueness as the last line of defense.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail is scoped to one tenant; emails are not globally unique.
	FindByEmail(ctx context.Context, tenantID, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}
