package ports

import (
	"context"
	"time"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// TokenStore tracks revoked session tokens (by jti) until their natural
// expiry. Backed by Redis.
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RegisterTenantInput carries all data needed to register a new tenant with
// its initial admin user.
type RegisterTenantInput struct {
	TenantName    string
	Subdomain     string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
}

// RegisterTenantResult is returned after a successful registration.
type RegisterTenantResult struct {
	Tenant    *domain.Tenant
	AdminUser *domain.User
}

// LoginInput identifies the tenant by subdomain or id, then the user by email.
type LoginInput struct {
	Email           string
	Password        string
	TenantSubdomain string
	TenantID        string
}

// LoginResult is returned after successful authentication.
type LoginResult struct {
	Token     string
	ExpiresIn int64 // seconds
	User      *domain.User
}

// CurrentUserResult is the authenticated user together with its tenant.
type CurrentUserResult struct {
	User   *domain.User
	Tenant *domain.Tenant
}

// LogoutInput revokes the presented token and audits the action.
type LogoutInput struct {
	Principal domain.Principal
	TokenID   string
	ExpiresAt time.Time
	IPAddress string
}

// AuthService implements tenant registration and session lifecycle.
type AuthService interface {
	RegisterTenant(ctx context.Context, input RegisterTenantInput) (*RegisterTenantResult, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	CurrentUser(ctx context.Context, p domain.Principal) (*CurrentUserResult, error)
	Logout(ctx context.Context, input LogoutInput) error
}
