package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// ListProjectsFilter carries the query parameters for listing a tenant's projects.
type ListProjectsFilter struct {
	TenantID string
	Status   string // optional: exact status filter
	Search   string // optional: partial match on name
	Page     int    // 1-based
	Limit    int
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
}
