package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

const defaultUserPageLimit = 50

// UserService implements governed user management within a tenant.
type UserService struct {
	users ports.UserRepository
	tasks ports.TaskRepository
	quota ports.QuotaGovernor
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	tasks ports.TaskRepository,
	quota ports.QuotaGovernor,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, tasks: tasks, quota: quota, audit: audit, log: log}
}

// Create adds a user to a tenant. Authorization is evaluated before
// admission, so a denied caller never touches the quota; a reservation made
// for a creation that subsequently fails is released.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if err := decide(input.Principal, domain.ActionUserCreate, input.TenantID, ""); err != nil {
		return nil, err
	}

	if input.Email == "" || input.Password == "" || input.FullName == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	if err := s.quota.TryAdmit(ctx, input.TenantID, ports.KindUsers); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, input.TenantID, input.Email); err == nil {
		s.quota.Release(input.TenantID, ports.KindUsers)
		return nil, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.quota.Release(input.TenantID, ports.KindUsers)
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.quota.Release(input.TenantID, ports.KindUsers)
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	// Only tenant_admin and user can be granted here; anything else
	// collapses to user.
	role := domain.RoleUser
	if input.Role == domain.RoleTenantAdmin {
		role = domain.RoleTenantAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		TenantID:     input.TenantID,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.quota.Release(input.TenantID, ports.KindUsers)
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	s.log.Info().Str("tenant_id", input.TenantID).Str("user_id", user.ID).Msg("user created")

	s.audit.Record(domain.AuditEntry{
		TenantID:   input.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditCreateUser,
		EntityType: "user",
		EntityID:   user.ID,
		IPAddress:  input.IPAddress,
	})

	return user, nil
}

// List returns one page of the tenant's users.
func (s *UserService) List(ctx context.Context, input ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if err := decide(input.Principal, domain.ActionUserList, input.TenantID, ""); err != nil {
		return nil, err
	}

	page, limit := normalizePaging(input.Page, input.Limit, defaultUserPageLimit)
	items, total, err := s.users.List(ctx, ports.ListUsersFilter{
		TenantID: input.TenantID,
		Search:   input.Search,
		Role:     input.Role,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Update modifies a user. A principal targeting itself takes the narrower
// self-service path and may change only its full name; the admin path may
// also change role and active flag.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	self := input.Principal.UserID == target.ID
	action := domain.ActionUserUpdate
	if self {
		action = domain.ActionUserUpdateSelf
	}
	if err := decide(input.Principal, action, target.TenantID, target.ID); err != nil {
		return nil, err
	}

	if input.FullName != nil && *input.FullName != "" {
		target.FullName = *input.FullName
	}
	if !self {
		if input.Role != nil {
			if *input.Role != domain.RoleTenantAdmin && *input.Role != domain.RoleUser {
				return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidInput, *input.Role)
			}
			target.Role = *input.Role
		}
		if input.IsActive != nil {
			target.IsActive = *input.IsActive
		}
	}
	target.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		TenantID:   target.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditUpdateUser,
		EntityType: "user",
		EntityID:   target.ID,
		IPAddress:  input.IPAddress,
	})

	return target, nil
}

// Delete removes a user, nulls out task assignments referencing it, and
// releases the tenant's user quota slot. Self-deletion is denied for every
// role.
func (s *UserService) Delete(ctx context.Context, input ports.DeleteUserInput) error {
	target, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := decide(input.Principal, domain.ActionUserDelete, target.TenantID, target.ID); err != nil {
		return err
	}

	if err := s.tasks.ClearAssignee(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: clear assignments: %w", err)
	}
	if err := s.users.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.quota.Release(target.TenantID, ports.KindUsers)

	s.log.Info().Str("tenant_id", target.TenantID).Str("user_id", target.ID).Msg("user deleted")

	s.audit.Record(domain.AuditEntry{
		TenantID:   target.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditDeleteUser,
		EntityType: "user",
		EntityID:   target.ID,
		IPAddress:  input.IPAddress,
	})

	return nil
}
