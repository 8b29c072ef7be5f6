package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthService(tenants *stubTenantRepo, users *stubUserRepo) (*AuthService, *stubTokenStore, *recorderStub) {
	tokens := newStubTokenStore()
	audit := &recorderStub{}
	svc := NewAuthService(tenants, users, tokens, audit, testSecret, time.Hour, discardLogger)
	return svc, tokens, audit
}

func registerInput() ports.RegisterTenantInput {
	return ports.RegisterTenantInput{
		TenantName:    "Acme Inc",
		Subdomain:     "acme",
		AdminEmail:    "owner@acme.test",
		AdminPassword: "hunter2hunter2",
		AdminFullName: "Ada Admin",
	}
}

// ---------------------------------------------------------------------------
// RegisterTenant
// ---------------------------------------------------------------------------

func TestAuthService_RegisterTenant_AppliesFreePlanDefaults(t *testing.T) {
	svc, _, _ := newAuthService(newStubTenantRepo(), newStubUserRepo())

	result, err := svc.RegisterTenant(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tenant := result.Tenant
	if tenant.Status != domain.TenantActive {
		t.Errorf("status = %q, want active", tenant.Status)
	}
	if tenant.SubscriptionPlan != domain.DefaultPlan {
		t.Errorf("plan = %q, want %q", tenant.SubscriptionPlan, domain.DefaultPlan)
	}
	if tenant.MaxUsers != domain.DefaultMaxUsers {
		t.Errorf("max users = %d, want %d", tenant.MaxUsers, domain.DefaultMaxUsers)
	}
	if tenant.MaxProjects != domain.DefaultMaxProjects {
		t.Errorf("max projects = %d, want %d", tenant.MaxProjects, domain.DefaultMaxProjects)
	}
}

func TestAuthService_RegisterTenant_CreatesAdminUser(t *testing.T) {
	users := newStubUserRepo()
	svc, _, _ := newAuthService(newStubTenantRepo(), users)

	result, err := svc.RegisterTenant(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	admin := result.AdminUser
	if admin.Role != domain.RoleTenantAdmin {
		t.Errorf("admin role = %q, want tenant_admin", admin.Role)
	}
	if admin.TenantID != result.Tenant.ID {
		t.Error("admin must belong to the new tenant")
	}
	if !admin.IsActive {
		t.Error("admin must start active")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("hunter2hunter2")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestAuthService_RegisterTenant_DuplicateSubdomain(t *testing.T) {
	tenants := newStubTenantRepo()
	svc, _, _ := newAuthService(tenants, newStubUserRepo())

	if _, err := svc.RegisterTenant(context.Background(), registerInput()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	input := registerInput()
	input.AdminEmail = "other@acme.test"
	_, err := svc.RegisterTenant(context.Background(), input)
	if !errors.Is(err, domain.ErrSubdomainExists) {
		t.Fatalf("expected ErrSubdomainExists, got %v", err)
	}
}

func TestAuthService_RegisterTenant_ShortPassword(t *testing.T) {
	svc, _, _ := newAuthService(newStubTenantRepo(), newStubUserRepo())

	input := registerInput()
	input.AdminPassword = "short"
	_, err := svc.RegisterTenant(context.Background(), input)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func seedLogin(t *testing.T) (*AuthService, *stubTenantRepo, *stubUserRepo, *ports.RegisterTenantResult) {
	t.Helper()
	tenants := newStubTenantRepo()
	users := newStubUserRepo()
	svc, _, _ := newAuthService(tenants, users)

	result, err := svc.RegisterTenant(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("seed registration failed: %v", err)
	}
	return svc, tenants, users, result
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _, seeded := seedLogin(t)

	result, err := svc.Login(context.Background(), ports.LoginInput{
		Email:           "owner@acme.test",
		Password:        "hunter2hunter2",
		TenantSubdomain: "acme",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a signed token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", result.ExpiresIn)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims["user_id"] != seeded.AdminUser.ID {
		t.Errorf("user_id claim = %v, want %s", claims["user_id"], seeded.AdminUser.ID)
	}
	if claims["tenant_id"] != seeded.Tenant.ID {
		t.Errorf("tenant_id claim = %v, want %s", claims["tenant_id"], seeded.Tenant.ID)
	}
	if claims["role"] != domain.RoleTenantAdmin {
		t.Errorf("role claim = %v, want tenant_admin", claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("token must carry a jti for revocation")
	}
}

func TestAuthService_Login_ByTenantID(t *testing.T) {
	svc, _, _, seeded := seedLogin(t)

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "owner@acme.test",
		Password: "hunter2hunter2",
		TenantID: seeded.Tenant.ID,
	})
	if err != nil {
		t.Fatalf("login by tenant id failed: %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _, _ := seedLogin(t)

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:           "owner@acme.test",
		Password:        "wrong-password",
		TenantSubdomain: "acme",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _, _, _ := seedLogin(t)

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:           "ghost@acme.test",
		Password:        "hunter2hunter2",
		TenantSubdomain: "acme",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, _, users, seeded := seedLogin(t)

	u := users.users[seeded.AdminUser.ID]
	u.IsActive = false

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:           "owner@acme.test",
		Password:        "hunter2hunter2",
		TenantSubdomain: "acme",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SuspendedTenant(t *testing.T) {
	svc, tenants, _, seeded := seedLogin(t)

	tenants.tenants[seeded.Tenant.ID].Status = domain.TenantSuspended

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:           "owner@acme.test",
		Password:        "hunter2hunter2",
		TenantSubdomain: "acme",
	})
	if !errors.Is(err, domain.ErrTenantInactive) {
		t.Fatalf("expected ErrTenantInactive, got %v", err)
	}
}

func TestAuthService_Login_MissingTenantSelector(t *testing.T) {
	svc, _, _, _ := seedLogin(t)

	_, err := svc.Login(context.Background(), ports.LoginInput{
		Email:    "owner@acme.test",
		Password: "hunter2hunter2",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestAuthService_Logout_RevokesTokenAndAudits(t *testing.T) {
	tenants := newStubTenantRepo()
	users := newStubUserRepo()
	svc, tokens, audit := newAuthService(tenants, users)

	err := svc.Logout(context.Background(), ports.LogoutInput{
		Principal: domain.Principal{UserID: "u1", TenantID: "t1", Role: domain.RoleUser},
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
		IPAddress: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := tokens.revoked["jti-1"]; !ok {
		t.Fatal("token was not revoked")
	}
	last, ok := audit.last()
	if !ok {
		t.Fatal("no audit entry recorded")
	}
	if last.Action != domain.AuditLogout || last.UserID != "u1" || last.TenantID != "t1" {
		t.Errorf("unexpected audit entry: %+v", last)
	}
}

func TestAuthService_Logout_ExpiredTokenSkipsRevocation(t *testing.T) {
	svc, tokens, _ := newAuthService(newStubTenantRepo(), newStubUserRepo())

	err := svc.Logout(context.Background(), ports.LogoutInput{
		Principal: domain.Principal{UserID: "u1", TenantID: "t1", Role: domain.RoleUser},
		TokenID:   "jti-old",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens.revoked) != 0 {
		t.Fatal("an already-expired token must not be stored")
	}
}
