package ports

import "context"

// ResourceKind identifies a quota-governed resource type.
type ResourceKind string

const (
	KindUsers    ResourceKind = "users"
	KindProjects ResourceKind = "projects"
)

// QuotaGovernor is the admission-control primitive. TryAdmit atomically
// reserves one unit of the tenant's ceiling for the given kind: the
// count-versus-ceiling check and the reservation are indivisible with respect
// to concurrent admissions for the same (tenant, kind). Admissions for
// different tenants, or different kinds of the same tenant, never block one
// another.
//
// TryAdmit returns nil on admission, domain.ErrLimitReached when the ceiling
// is exhausted, domain.ErrTenantNotFound / domain.ErrTenantInactive when the
// tenant cannot admit anything at all.
//
// Release compensates a confirmed deletion (or a creation that failed after
// admission). It is idempotent against double release and never drives the
// reserved count negative.
type QuotaGovernor interface {
	TryAdmit(ctx context.Context, tenantID string, kind ResourceKind) error
	Release(tenantID string, kind ResourceKind)
}

// ResourceCounter reports the committed count of a tenant's resources of one
// kind. The governor uses it to seed its live counters from the store.
type ResourceCounter interface {
	Count(ctx context.Context, tenantID string, kind ResourceKind) (int64, error)
}
