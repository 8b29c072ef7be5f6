package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// CreateProjectInput creates a project in the principal's tenant, subject to
// quota admission.
type CreateProjectInput struct {
	Principal   domain.Principal
	Name        string
	Description string
	Status      string // defaults to active
	IPAddress   string
}

// ListProjectsInput carries the parameters for listing the tenant's projects.
type ListProjectsInput struct {
	Principal domain.Principal
	Status    string
	Search    string
	Page      int
	Limit     int
}

// ProjectSummary is the list view: the project plus creator name and task
// completion counts.
type ProjectSummary struct {
	Project            domain.Project
	CreatorName        string
	TaskCount          int64
	CompletedTaskCount int64
}

// ListProjectsResult is one page of project summaries.
type ListProjectsResult struct {
	Items      []ProjectSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, input ListProjectsInput) (*ListProjectsResult, error)
}
