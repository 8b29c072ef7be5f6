package domain

import "time"

// TenantStatus represents the lifecycle state of a tenant account.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

// Defaults applied to newly registered tenants (free plan).
const (
	DefaultPlan        = "free"
	DefaultMaxUsers    = 5
	DefaultMaxProjects = 3
)

// Tenant is an isolated customer account owning users, projects, and tasks
// under its own resource ceilings. The subdomain is immutable after creation.
type Tenant struct {
	ID               string       `json:"id" bson:"_id,omitempty"`
	Name             string       `json:"name" bson:"name"`
	Subdomain        string       `json:"subdomain" bson:"subdomain"`
	Status           TenantStatus `json:"status" bson:"status"`
	SubscriptionPlan string       `json:"subscription_plan" bson:"subscription_plan"`
	MaxUsers         int64        `json:"max_users" bson:"max_users"`
	MaxProjects      int64        `json:"max_projects" bson:"max_projects"`
	CreatedAt        time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at" bson:"updated_at"`
}

// TenantStats summarises a tenant's current resource usage.
type TenantStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
	TotalTasks    int64 `json:"total_tasks"`
}
