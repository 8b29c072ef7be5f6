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

const defaultProjectPageLimit = 20

// ProjectService implements governed project management.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
	quota    ports.QuotaGovernor
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	users ports.UserRepository,
	quota ports.QuotaGovernor,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, users: users, quota: quota, audit: audit, log: log}
}

// Create adds a project to the principal's tenant, subject to quota admission.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	tenantID := input.Principal.TenantID
	if tenantID == "" {
		return nil, fmt.Errorf("%w: principal has no tenant", domain.ErrInvalidInput)
	}
	if err := decide(input.Principal, domain.ActionProjectCreate, tenantID, ""); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}

	status := domain.ProjectActive
	if input.Status != "" {
		status = domain.ProjectStatus(input.Status)
		if status != domain.ProjectActive && status != domain.ProjectArchived {
			return nil, fmt.Errorf("%w: invalid project status %q", domain.ErrInvalidInput, input.Status)
		}
	}

	if err := s.quota.TryAdmit(ctx, tenantID, ports.KindProjects); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &domain.Project{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		CreatedBy:   input.Principal.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		s.quota.Release(tenantID, ports.KindProjects)
		return nil, fmt.Errorf("create project: %w", err)
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("project").Inc()
	s.log.Info().Str("tenant_id", tenantID).Str("project_id", project.ID).Msg("project created")

	s.audit.Record(domain.AuditEntry{
		TenantID:   tenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditCreateProject,
		EntityType: "project",
		EntityID:   project.ID,
		IPAddress:  input.IPAddress,
	})

	return project, nil
}

// List returns one page of the tenant's projects with creator names and task
// completion counts.
func (s *ProjectService) List(ctx context.Context, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	tenantID := input.Principal.TenantID
	if err := decide(input.Principal, domain.ActionProjectList, tenantID, ""); err != nil {
		return nil, err
	}

	page, limit := normalizePaging(input.Page, input.Limit, defaultProjectPageLimit)
	projects, total, err := s.projects.List(ctx, ports.ListProjectsFilter{
		TenantID: tenantID,
		Status:   input.Status,
		Search:   input.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	items := make([]ports.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summary := ports.ProjectSummary{Project: *p}

		if creator, err := s.users.FindByID(ctx, p.CreatedBy); err == nil {
			summary.CreatorName = creator.FullName
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		if summary.TaskCount, err = s.tasks.CountByProject(ctx, p.ID, ""); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		if summary.CompletedTaskCount, err = s.tasks.CountByProject(ctx, p.ID, domain.TaskCompleted); err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		items = append(items, summary)
	}

	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
