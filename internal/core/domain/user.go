package domain

import "time"

const (
	// RoleSuperAdmin is tenant-transcendent: it bypasses tenant-scoping
	// checks but is still subject to "not self" restrictions.
	RoleSuperAdmin  = "super_admin"
	RoleTenantAdmin = "tenant_admin"
	RoleUser        = "user"
)

// User models an authenticated actor. Email is unique within its tenant,
// not globally. The tenant id is immutable.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	TenantID     string    `json:"tenant_id" bson:"tenant_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FullName     string    `json:"full_name" bson:"full_name"`
	Role         string    `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
