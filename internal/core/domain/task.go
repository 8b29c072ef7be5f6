package domain

import "time"

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is a member of the closed status set.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// TaskPriority is an ordered enum; higher rank sorts first in listings.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

var priorityRank = map[TaskPriority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// Rank returns the ordering weight of p; unknown priorities rank lowest.
func (p TaskPriority) Rank() int {
	return priorityRank[p]
}

// IsValid reports whether p is a member of the closed priority set.
func (p TaskPriority) IsValid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Task belongs to a project; TenantID is a denormalised copy of the owning
// project's tenant and must match it at all times. AssignedTo, when set,
// references a user in the same tenant.
type Task struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	ProjectID   string       `json:"project_id" bson:"project_id"`
	TenantID    string       `json:"tenant_id" bson:"tenant_id"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Status      TaskStatus   `json:"status" bson:"status"`
	Priority    TaskPriority `json:"priority" bson:"priority"`
	AssignedTo  string       `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty" bson:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}
