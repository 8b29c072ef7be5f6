package domain

import (
	"errors"
	"testing"
)

func TestDecide_TenantScoping(t *testing.T) {
	member := Principal{UserID: "u1", TenantID: "t1", Role: RoleUser}
	admin := Principal{UserID: "a1", TenantID: "t1", Role: RoleTenantAdmin}
	super := Principal{UserID: "s1", TenantID: "", Role: RoleSuperAdmin}

	tests := []struct {
		name     string
		p        Principal
		action   Action
		tenantID string
		ownerID  string
		wantErr  error
	}{
		{"member reads own tenant", member, ActionTenantView, "t1", "", nil},
		{"member reads other tenant", member, ActionTenantView, "t2", "", ErrUnauthorized},
		{"admin reads own tenant", admin, ActionTenantView, "t1", "", nil},
		{"super admin reads any tenant", super, ActionTenantView, "t2", "", nil},

		{"member lists own users", member, ActionUserList, "t1", "", nil},
		{"member lists foreign users", member, ActionUserList, "t2", "", ErrUnauthorized},

		{"member creates project", member, ActionProjectCreate, "t1", "", nil},
		{"member creates foreign project", member, ActionProjectCreate, "t2", "", ErrUnauthorized},

		{"member creates task", member, ActionTaskCreate, "t1", "", nil},
		{"member updates task", member, ActionTaskUpdate, "t1", "", nil},
		{"member updates foreign task", member, ActionTaskUpdate, "t2", "", ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decide(tt.p, tt.action, tt.tenantID, tt.ownerID)
			if !errors.Is(err, tt.wantErr) && !(err == nil && tt.wantErr == nil) {
				t.Fatalf("Decide() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecide_AdminOnlyActions(t *testing.T) {
	member := Principal{UserID: "u1", TenantID: "t1", Role: RoleUser}
	admin := Principal{UserID: "a1", TenantID: "t1", Role: RoleTenantAdmin}
	super := Principal{UserID: "s1", Role: RoleSuperAdmin}

	for _, action := range []Action{ActionUserCreate, ActionUserUpdate, ActionUserDelete} {
		if err := Decide(member, action, "t1", "other"); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("%s: member should be unauthorized, got %v", action, err)
		}
		if err := Decide(admin, action, "t1", "other"); err != nil {
			t.Errorf("%s: tenant admin should be allowed, got %v", action, err)
		}
		if err := Decide(super, action, "t2", "other"); err != nil {
			t.Errorf("%s: super admin should be allowed cross-tenant, got %v", action, err)
		}
	}
}

func TestDecide_SelfDeleteDeniedForEveryRole(t *testing.T) {
	cases := []Principal{
		{UserID: "u1", TenantID: "t1", Role: RoleUser},
		{UserID: "a1", TenantID: "t1", Role: RoleTenantAdmin},
		{UserID: "s1", Role: RoleSuperAdmin},
	}
	for _, p := range cases {
		err := Decide(p, ActionUserDelete, "t1", p.UserID)
		if !errors.Is(err, ErrCannotDeleteSelf) {
			t.Errorf("role %s: self delete should be denied with ErrCannotDeleteSelf, got %v", p.Role, err)
		}
	}
}

func TestDecide_SelfUpdate(t *testing.T) {
	member := Principal{UserID: "u1", TenantID: "t1", Role: RoleUser}

	if err := Decide(member, ActionUserUpdateSelf, "t1", "u1"); err != nil {
		t.Fatalf("self update of own record should be allowed, got %v", err)
	}
	if err := Decide(member, ActionUserUpdateSelf, "t1", "u2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("self path against another user's record must be unauthorized, got %v", err)
	}
}

func TestDecide_UnknownAction(t *testing.T) {
	admin := Principal{UserID: "a1", TenantID: "t1", Role: RoleTenantAdmin}
	if err := Decide(admin, Action("nonsense"), "t1", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown action must deny, got %v", err)
	}
}

func TestDecide_EmptyTenantPrincipal(t *testing.T) {
	// A principal without a tenant (and without super_admin) can touch nothing.
	p := Principal{UserID: "u1", Role: RoleUser}
	if err := Decide(p, ActionProjectList, "t1", ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("tenant-less principal must be unauthorized, got %v", err)
	}
}
