package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

const minPasswordLength = 8

// AuthService implements tenant registration and session lifecycle.
type AuthService struct {
	tenants   ports.TenantRepository
	users     ports.UserRepository
	tokens    ports.TokenStore
	audit     ports.AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	tenants ports.TenantRepository,
	users ports.UserRepository,
	tokens ports.TokenStore,
	audit ports.AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		tenants:   tenants,
		users:     users,
		tokens:    tokens,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// RegisterTenant creates a tenant with free-plan defaults and its initial
// tenant_admin user. The store's unique index on subdomain is the last line
// of defense against registration races.
func (s *AuthService) RegisterTenant(ctx context.Context, input ports.RegisterTenantInput) (*ports.RegisterTenantResult, error) {
	if input.TenantName == "" || input.Subdomain == "" || input.AdminEmail == "" ||
		input.AdminPassword == "" || input.AdminFullName == "" {
		return nil, fmt.Errorf("%w: missing required fields", domain.ErrInvalidInput)
	}
	if len(input.AdminPassword) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.tenants.FindBySubdomain(ctx, input.Subdomain); err == nil {
		return nil, domain.ErrSubdomainExists
	} else if !errors.Is(err, domain.ErrTenantNotFound) {
		return nil, fmt.Errorf("register tenant: %w", err)
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:               uuid.NewString(),
		Name:             input.TenantName,
		Subdomain:        input.Subdomain,
		Status:           domain.TenantActive,
		SubscriptionPlan: domain.DefaultPlan,
		MaxUsers:         domain.DefaultMaxUsers,
		MaxProjects:      domain.DefaultMaxProjects,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("register tenant: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register tenant: hash password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.NewString(),
		TenantID:     tenant.ID,
		Email:        input.AdminEmail,
		PasswordHash: string(hash),
		FullName:     input.AdminFullName,
		Role:         domain.RoleTenantAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// The tenant row stays behind; the subdomain is taken until the
		// registration is retried under a different one.
		s.log.Error().Err(err).Str("tenant_id", tenant.ID).Msg("admin user creation failed after tenant insert")
		return nil, fmt.Errorf("register tenant: create admin: %w", err)
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("tenant").Inc()
	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	s.log.Info().Str("tenant_id", tenant.ID).Str("subdomain", tenant.Subdomain).Msg("tenant registered")

	return &ports.RegisterTenantResult{Tenant: tenant, AdminUser: admin}, nil
}

// Login authenticates a user within a tenant resolved by subdomain or id.
// Inactive users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	var (
		tenant *domain.Tenant
		err    error
	)
	switch {
	case input.TenantSubdomain != "":
		tenant, err = s.tenants.FindBySubdomain(ctx, input.TenantSubdomain)
	case input.TenantID != "":
		tenant, err = s.tenants.FindByID(ctx, input.TenantID)
	default:
		return nil, fmt.Errorf("%w: tenant subdomain or id is required", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	if tenant.Status != domain.TenantActive {
		return nil, domain.ErrTenantInactive
	}

	user, err := s.users.FindByEmail(ctx, tenant.ID, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	return &ports.LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      user,
	}, nil
}

// CurrentUser returns the principal's user record and tenant. A tenant-less
// super_admin gets a nil tenant.
func (s *AuthService) CurrentUser(ctx context.Context, p domain.Principal) (*ports.CurrentUserResult, error) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	var tenant *domain.Tenant
	if p.TenantID != "" {
		tenant, err = s.tenants.FindByID(ctx, p.TenantID)
		if err != nil && !errors.Is(err, domain.ErrTenantNotFound) {
			return nil, fmt.Errorf("current user: %w", err)
		}
	}

	return &ports.CurrentUserResult{User: user, Tenant: tenant}, nil
}

// Logout revokes the presented token until its natural expiry and audits the
// action. The audit write is best-effort and never fails the logout.
func (s *AuthService) Logout(ctx context.Context, input ports.LogoutInput) error {
	ttl := time.Until(input.ExpiresAt)
	if ttl > 0 {
		if err := s.tokens.Revoke(ctx, input.TokenID, ttl); err != nil {
			return fmt.Errorf("logout: revoke token: %w", err)
		}
	}

	s.audit.Record(domain.AuditEntry{
		TenantID:   input.Principal.TenantID,
		UserID:     input.Principal.UserID,
		Action:     domain.AuditLogout,
		EntityType: "user",
		EntityID:   input.Principal.UserID,
		IPAddress:  input.IPAddress,
	})
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role,
		"jti":       uuid.NewString(),
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
