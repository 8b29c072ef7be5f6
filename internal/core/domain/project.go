package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

// Project belongs to exactly one tenant; CreatedBy references a user in the
// same tenant.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	TenantID    string        `json:"tenant_id" bson:"tenant_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Status      ProjectStatus `json:"status" bson:"status"`
	CreatedBy   string        `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}
