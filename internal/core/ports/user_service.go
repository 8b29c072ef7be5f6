package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// CreateUserInput adds a user to a tenant, subject to quota admission.
type CreateUserInput struct {
	Principal domain.Principal
	TenantID  string
	Email     string
	Password  string
	FullName  string
	Role      string // anything other than tenant_admin collapses to user
	IPAddress string
}

// ListUsersInput carries the parameters for listing a tenant's users.
type ListUsersInput struct {
	Principal domain.Principal
	TenantID  string
	Search    string
	Role      string
	Page      int
	Limit     int
}

// ListUsersResult is one page of users plus pagination metadata.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateUserInput updates a user. Nil fields are left untouched. When the
// principal targets itself only FullName is applied (self-service rename);
// role and active flag changes require the admin path.
type UpdateUserInput struct {
	Principal domain.Principal
	UserID    string
	FullName  *string
	Role      *string
	IsActive  *bool
	IPAddress string
}

// DeleteUserInput deletes a user and nulls out its task assignments.
type DeleteUserInput struct {
	Principal domain.Principal
	UserID    string
	IPAddress string
}

// UserService defines use-case operations for tenant users.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, input DeleteUserInput) error
}
