package service

// In-memory stubs shared by the service tests. Each stub mirrors the filter
// behaviour of the real Mongo repository closely enough for the use cases
// under test.

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Tenants
// ---------------------------------------------------------------------------

type stubTenantRepo struct {
	tenants   map[string]*domain.Tenant
	createErr error
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{tenants: make(map[string]*domain.Tenant)}
}

func (r *stubTenantRepo) Create(_ context.Context, t *domain.Tenant) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *t
	r.tenants[t.ID] = &clone
	return nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTenantRepo) FindBySubdomain(_ context.Context, subdomain string) (*domain.Tenant, error) {
	for _, t := range r.tenants {
		if t.Subdomain == subdomain {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTenantNotFound
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, tenantID, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.TenantID == tenantID && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.users {
		if u.TenantID != f.TenantID {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" {
			nameMatch := strings.Contains(strings.ToLower(u.FullName), strings.ToLower(f.Search))
			emailMatch := strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search))
			if !nameMatch && !emailMatch {
				continue
			}
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	projects  map[string]*domain.Project
	createErr error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.projects[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var matched []*domain.Project
	for _, p := range r.projects {
		if p.TenantID != f.TenantID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	tasks        map[string]*domain.Task
	clearedUsers []string
	createErr    error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	var matched []*domain.Task
	for _, t := range r.tasks {
		if t.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
			continue
		}
		clone := *t
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubTaskRepo) Update(_ context.Context, t *domain.Task) error {
	if _, ok := r.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) CountByProject(_ context.Context, projectID string, status domain.TaskStatus) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.ProjectID != projectID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *stubTaskRepo) CountByTenant(_ context.Context, tenantID string) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) ClearAssignee(_ context.Context, userID string) error {
	r.clearedUsers = append(r.clearedUsers, userID)
	for _, t := range r.tasks {
		if t.AssignedTo == userID {
			t.AssignedTo = ""
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Quota governor
// ---------------------------------------------------------------------------

type stubQuota struct {
	admitErr error
	admits   map[ports.ResourceKind]int
	releases map[ports.ResourceKind]int
}

func newStubQuota() *stubQuota {
	return &stubQuota{
		admits:   make(map[ports.ResourceKind]int),
		releases: make(map[ports.ResourceKind]int),
	}
}

func (q *stubQuota) TryAdmit(_ context.Context, _ string, kind ports.ResourceKind) error {
	if q.admitErr != nil {
		return q.admitErr
	}
	q.admits[kind]++
	return nil
}

func (q *stubQuota) Release(_ string, kind ports.ResourceKind) {
	q.releases[kind]++
}

// ---------------------------------------------------------------------------
// Resource counter
// ---------------------------------------------------------------------------

type stubResourceCounter struct {
	counts map[ports.ResourceKind]int64
}

func (c *stubResourceCounter) Count(_ context.Context, _ string, kind ports.ResourceKind) (int64, error) {
	return c.counts[kind], nil
}

// ---------------------------------------------------------------------------
// Audit recorder
// ---------------------------------------------------------------------------

type recorderStub struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recorderStub) Record(e domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recorderStub) last() (domain.AuditEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return domain.AuditEntry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

func (r *recorderStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// ---------------------------------------------------------------------------
// Token store
// ---------------------------------------------------------------------------

type stubTokenStore struct {
	revoked   map[string]time.Duration
	revokeErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{revoked: make(map[string]time.Duration)}
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if s.revokeErr != nil {
		return s.revokeErr
	}
	s.revoked[tokenID] = ttl
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := s.revoked[tokenID]
	return ok, nil
}
