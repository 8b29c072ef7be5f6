package ports

import (
	"context"
	"time"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// CreateTaskInput creates a task under a project. The task inherits the
// project's tenant; the assignee, when set, must belong to that tenant.
type CreateTaskInput struct {
	Principal   domain.Principal
	ProjectID   string
	Title       string
	Description string
	Priority    string // defaults to medium
	AssignedTo  string // optional
	DueDate     *time.Time
	IPAddress   string
}

// ListTasksInput carries the parameters for listing a project's tasks.
type ListTasksInput struct {
	Principal  domain.Principal
	ProjectID  string
	Status     string
	AssignedTo string
	Priority   string
	Search     string
	Page       int
	Limit      int
}

// AssigneeView is the joined assignee shown in task listings.
type AssigneeView struct {
	ID       string
	FullName string
	Email    string
}

// TaskView is a task plus its resolved assignee (nil when unassigned).
type TaskView struct {
	Task     domain.Task
	Assignee *AssigneeView
}

// ListTasksResult is one page of task views.
type ListTasksResult struct {
	Items      []TaskView
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateTaskStatusInput moves a task to another workflow status.
type UpdateTaskStatusInput struct {
	Principal domain.Principal
	TaskID    string
	Status    string
	IPAddress string
}

// UpdateTaskInput updates a task. Nil fields are left untouched. A non-nil
// empty AssignedTo clears the assignment; a non-nil value is re-validated
// against the task's tenant.
type UpdateTaskInput struct {
	Principal   domain.Principal
	TaskID      string
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssignedTo  *string
	DueDate     *time.Time
	IPAddress   string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) (*ListTasksResult, error)
	UpdateStatus(ctx context.Context, input UpdateTaskStatusInput) (*domain.Task, error)
	Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
}
