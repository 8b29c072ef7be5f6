package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// ListTasksFilter carries the query parameters for listing a project's tasks.
type ListTasksFilter struct {
	ProjectID  string
	Status     string // optional: exact status filter
	AssignedTo string // optional: exact assignee filter
	Priority   string // optional: exact priority filter
	Search     string // optional: partial match on title
	Page       int    // 1-based
	Limit      int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks ordered by priority (urgent first) then due date.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, t *domain.Task) error
	// CountByProject counts a project's tasks; an empty status counts all.
	CountByProject(ctx context.Context, projectID string, status domain.TaskStatus) (int64, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	// ClearAssignee nulls out assigned_to on every task referencing userID.
	// Used when a user is deleted; assignments are never cascade-deleted.
	ClearAssignee(ctx context.Context, userID string) error
}
