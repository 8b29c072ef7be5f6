package domain

import "time"

// Audit action verbs. The set is closed; new mutations add a constant here.
const (
	AuditCreateUser       = "CREATE_USER"
	AuditUpdateUser       = "UPDATE_USER"
	AuditDeleteUser       = "DELETE_USER"
	AuditCreateProject    = "CREATE_PROJECT"
	AuditCreateTask       = "CREATE_TASK"
	AuditUpdateTask       = "UPDATE_TASK"
	AuditUpdateTaskStatus = "UPDATE_TASK_STATUS"
	AuditLogout           = "LOGOUT"
)

// AuditEntry is an append-only record of a state-changing action.
// Entries are never updated or deleted by application logic.
type AuditEntry struct {
	TenantID   string    `json:"tenant_id" bson:"tenant_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Action     string    `json:"action" bson:"action"`
	EntityType string    `json:"entity_type" bson:"entity_type"`
	EntityID   string    `json:"entity_id" bson:"entity_id"`
	IPAddress  string    `json:"ip_address" bson:"ip_address"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
