package service

import (
	"context"
	"errors"
	"testing"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

func newTaskService() (*TaskService, *stubTaskRepo, *stubProjectRepo, *stubUserRepo, *recorderStub) {
	tasks := newStubTaskRepo()
	projects := newStubProjectRepo()
	users := newStubUserRepo()
	audit := &recorderStub{}
	svc := NewTaskService(tasks, projects, users, audit, discardLogger)
	return svc, tasks, projects, users, audit
}

func seedProject(projects *stubProjectRepo, id, tenantID string) {
	projects.projects[id] = &domain.Project{
		ID:       id,
		TenantID: tenantID,
		Name:     "Apollo",
		Status:   domain.ProjectActive,
	}
}

func memberOf(tenantID string) domain.Principal {
	return domain.Principal{UserID: "member-" + tenantID, TenantID: tenantID, Role: domain.RoleUser}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, tasks, projects, _, audit := newTaskService()
	seedProject(projects, "p1", "t1")

	task, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal: memberOf("t1"),
		ProjectID: "p1",
		Title:     "Write report",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Status != domain.TaskTodo {
		t.Errorf("status = %q, want todo", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want medium", task.Priority)
	}
	if task.TenantID != "t1" {
		t.Errorf("tenant = %q; the task must inherit the project's tenant", task.TenantID)
	}
	if _, ok := tasks.tasks[task.ID]; !ok {
		t.Error("task not persisted")
	}
	if last, ok := audit.last(); !ok || last.Action != domain.AuditCreateTask {
		t.Error("creation must be audited")
	}
}

func TestTaskService_Create_UnknownProject(t *testing.T) {
	svc, _, _, _, _ := newTaskService()

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal: memberOf("t1"),
		ProjectID: "ghost",
		Title:     "x",
	})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Create_CrossTenantProjectDenied(t *testing.T) {
	svc, tasks, projects, _, _ := newTaskService()
	seedProject(projects, "p1", "t2")

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal: memberOf("t1"),
		ProjectID: "p1",
		Title:     "x",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(tasks.tasks) != 0 {
		t.Error("nothing may be stored on a denied create")
	}
}

func TestTaskService_Create_CrossTenantAssigneeRejectedBeforeWrite(t *testing.T) {
	svc, tasks, projects, users, audit := newTaskService()
	seedProject(projects, "p1", "t1")
	users.users["outsider"] = &domain.User{ID: "outsider", TenantID: "t2"}

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal:  memberOf("t1"),
		ProjectID:  "p1",
		Title:      "x",
		AssignedTo: "outsider",
	})
	if !errors.Is(err, domain.ErrAssigneeNotInTenant) {
		t.Fatalf("expected ErrAssigneeNotInTenant, got %v", err)
	}
	if len(tasks.tasks) != 0 {
		t.Error("the rejection must happen before any store write")
	}
	if audit.count() != 0 {
		t.Error("a rejected create must not be audited")
	}
}

func TestTaskService_Create_UnknownAssigneeRejected(t *testing.T) {
	svc, _, projects, _, _ := newTaskService()
	seedProject(projects, "p1", "t1")

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal:  memberOf("t1"),
		ProjectID:  "p1",
		Title:      "x",
		AssignedTo: "ghost",
	})
	if !errors.Is(err, domain.ErrAssigneeNotInTenant) {
		t.Fatalf("expected ErrAssigneeNotInTenant, got %v", err)
	}
}

func TestTaskService_Create_InvalidPriority(t *testing.T) {
	svc, _, projects, _, _ := newTaskService()
	seedProject(projects, "p1", "t1")

	_, err := svc.Create(context.Background(), ports.CreateTaskInput{
		Principal: memberOf("t1"),
		ProjectID: "p1",
		Title:     "x",
		Priority:  "blocker",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus
// ---------------------------------------------------------------------------

func TestTaskService_UpdateStatus_Success(t *testing.T) {
	svc, tasks, _, _, audit := newTaskService()
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t1", Status: domain.TaskTodo}

	task, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		Principal: memberOf("t1"),
		TaskID:    "task1",
		Status:    "in_progress",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskInProgress {
		t.Errorf("status = %q, want in_progress", task.Status)
	}
	if tasks.tasks["task1"].Status != domain.TaskInProgress {
		t.Error("status change not persisted")
	}
	if last, ok := audit.last(); !ok || last.Action != domain.AuditUpdateTaskStatus {
		t.Error("status change must be audited")
	}
}

func TestTaskService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, tasks, _, _, _ := newTaskService()
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t1", Status: domain.TaskTodo}

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		Principal: memberOf("t1"),
		TaskID:    "task1",
		Status:    "done",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTaskService_UpdateStatus_CrossTenantDenied(t *testing.T) {
	svc, tasks, _, _, _ := newTaskService()
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t2", Status: domain.TaskTodo}

	_, err := svc.UpdateStatus(context.Background(), ports.UpdateTaskStatusInput{
		Principal: memberOf("t1"),
		TaskID:    "task1",
		Status:    "completed",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialFields(t *testing.T) {
	svc, tasks, _, _, _ := newTaskService()
	tasks.tasks["task1"] = &domain.Task{
		ID: "task1", ProjectID: "p1", TenantID: "t1",
		Title: "Old", Description: "keep me",
		Status: domain.TaskTodo, Priority: domain.PriorityLow,
	}

	title := "New"
	priority := "urgent"
	task, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		Principal: memberOf("t1"),
		TaskID:    "task1",
		Title:     &title,
		Priority:  &priority,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "New" || task.Priority != domain.PriorityUrgent {
		t.Errorf("fields not applied: %+v", task)
	}
	if task.Description != "keep me" || task.Status != domain.TaskTodo {
		t.Errorf("omitted fields must stay untouched: %+v", task)
	}
}

func TestTaskService_Update_ClearAssignee(t *testing.T) {
	svc, tasks, _, _, _ := newTaskService()
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t1", AssignedTo: "u1", Status: domain.TaskTodo, Priority: domain.PriorityMedium}

	empty := ""
	task, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		Principal:  memberOf("t1"),
		TaskID:     "task1",
		AssignedTo: &empty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssignedTo != "" {
		t.Error("an explicit empty assignee must clear the assignment")
	}
}

func TestTaskService_Update_ReassignToForeignUserRejected(t *testing.T) {
	svc, tasks, _, users, _ := newTaskService()
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t1", Status: domain.TaskTodo, Priority: domain.PriorityMedium}
	users.users["outsider"] = &domain.User{ID: "outsider", TenantID: "t2"}

	outsider := "outsider"
	_, err := svc.Update(context.Background(), ports.UpdateTaskInput{
		Principal:  memberOf("t1"),
		TaskID:     "task1",
		AssignedTo: &outsider,
	})
	if !errors.Is(err, domain.ErrAssigneeNotInTenant) {
		t.Fatalf("expected ErrAssigneeNotInTenant, got %v", err)
	}
	if tasks.tasks["task1"].AssignedTo != "" {
		t.Error("rejected reassignment must not be persisted")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestTaskService_List_ResolvesAssignees(t *testing.T) {
	svc, tasks, projects, users, _ := newTaskService()
	seedProject(projects, "p1", "t1")
	users.users["u1"] = &domain.User{ID: "u1", TenantID: "t1", FullName: "Alice", Email: "alice@acme.test"}
	tasks.tasks["task1"] = &domain.Task{ID: "task1", ProjectID: "p1", TenantID: "t1", Title: "a", AssignedTo: "u1"}
	tasks.tasks["task2"] = &domain.Task{ID: "task2", ProjectID: "p1", TenantID: "t1", Title: "b"}

	result, err := svc.List(context.Background(), ports.ListTasksInput{
		Principal: memberOf("t1"),
		ProjectID: "p1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(result.Items))
	}

	for _, v := range result.Items {
		switch v.Task.ID {
		case "task1":
			if v.Assignee == nil || v.Assignee.FullName != "Alice" {
				t.Errorf("task1 assignee not resolved: %+v", v.Assignee)
			}
		case "task2":
			if v.Assignee != nil {
				t.Error("unassigned task must have nil assignee")
			}
		}
	}
}

func TestTaskService_List_CrossTenantDenied(t *testing.T) {
	svc, _, projects, _, _ := newTaskService()
	seedProject(projects, "p1", "t2")

	_, err := svc.List(context.Background(), ports.ListTasksInput{
		Principal: memberOf("t1"),
		ProjectID: "p1",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
