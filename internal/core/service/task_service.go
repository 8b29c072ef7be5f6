package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

const defaultTaskPageLimit = 50

// TaskService implements task management under projects.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	users    ports.UserRepository
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, audit: audit, log: log}
}

// Create adds a task under a project. The task carries a denormalised copy of
// the project's tenant id; a cross-tenant assignee is rejected before any
// store mutation.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := decide(input.Principal, domain.ActionTaskCreate, project.TenantID, ""); err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, fmt.Errorf("%w: task title is required", domain.ErrInvalidInput)
	}

	priority := domain.PriorityMedium
	if input.Priority != "" {
		priority = domain.TaskPriority(input.Priority)
		if !priority.IsValid() {
			return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrInvalidInput, input.Priority)
		}
	}

	if input.AssignedTo != "" {
		if err := s.checkAssignee(ctx, input.AssignedTo, project.TenantID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		TenantID:    project.TenantID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TaskTodo,
		Priority:    priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("task").Inc()

	s.audit.Record(domain.AuditEntry{
		TenantID:   project.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditCreateTask,
		EntityType: "task",
		EntityID:   task.ID,
		IPAddress:  input.IPAddress,
	})

	return task, nil
}

// List returns one page of a project's tasks with resolved assignees,
// ordered by priority then due date.
func (s *TaskService) List(ctx context.Context, input ports.ListTasksInput) (*ports.ListTasksResult, error) {
	project, err := s.projects.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := decide(input.Principal, domain.ActionTaskList, project.TenantID, ""); err != nil {
		return nil, err
	}

	page, limit := normalizePaging(input.Page, input.Limit, defaultTaskPageLimit)
	tasks, total, err := s.tasks.List(ctx, ports.ListTasksFilter{
		ProjectID:  project.ID,
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
		Priority:   input.Priority,
		Search:     input.Search,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	items := make([]ports.TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := ports.TaskView{Task: *t}
		if t.AssignedTo != "" {
			assignee, err := s.users.FindByID(ctx, t.AssignedTo)
			switch {
			case err == nil:
				view.Assignee = &ports.AssigneeView{
					ID:       assignee.ID,
					FullName: assignee.FullName,
					Email:    assignee.Email,
				}
			case !errors.Is(err, domain.ErrUserNotFound):
				return nil, fmt.Errorf("list tasks: %w", err)
			}
		}
		items = append(items, view)
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// UpdateStatus moves a task to another workflow status.
func (s *TaskService) UpdateStatus(ctx context.Context, input ports.UpdateTaskStatusInput) (*domain.Task, error) {
	status := domain.TaskStatus(input.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, input.Status)
	}

	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if err := decide(input.Principal, domain.ActionTaskUpdateStatus, task.TenantID, ""); err != nil {
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		TenantID:   task.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditUpdateTaskStatus,
		EntityType: "task",
		EntityID:   task.ID,
		IPAddress:  input.IPAddress,
	})

	return task, nil
}

// Update modifies a task. Nil fields are untouched; a non-nil empty assignee
// clears the assignment, and any new assignee is validated against the
// task's tenant before the write.
func (s *TaskService) Update(ctx context.Context, input ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	if err := decide(input.Principal, domain.ActionTaskUpdate, task.TenantID, ""); err != nil {
		return nil, err
	}

	if input.Status != nil && !domain.TaskStatus(*input.Status).IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrInvalidInput, *input.Status)
	}
	if input.Priority != nil && !domain.TaskPriority(*input.Priority).IsValid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrInvalidInput, *input.Priority)
	}
	if input.AssignedTo != nil && *input.AssignedTo != "" {
		if err := s.checkAssignee(ctx, *input.AssignedTo, task.TenantID); err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = domain.TaskStatus(*input.Status)
	}
	if input.Priority != nil {
		task.Priority = domain.TaskPriority(*input.Priority)
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		TenantID:   task.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditUpdateTask,
		EntityType: "task",
		EntityID:   task.ID,
		IPAddress:  input.IPAddress,
	})

	return task, nil
}

// checkAssignee verifies that userID exists and belongs to tenantID.
func (s *TaskService) checkAssignee(ctx context.Context, userID, tenantID string) error {
	assignee, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrAssigneeNotInTenant
		}
		return fmt.Errorf("check assignee: %w", err)
	}
	if assignee.TenantID != tenantID {
		return domain.ErrAssigneeNotInTenant
	}
	return nil
}
