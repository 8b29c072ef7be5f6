// Package metrics defines and registers all custom Prometheus metrics for the
// workspace manager. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workspace"

// ── Admission metrics ─────────────────────────────────────────────────────────

// AdmissionsTotal counts quota admission attempts.
// Labels:
//   - resource: "users" or "projects"
//   - outcome: "admitted", "limit_reached", "tenant_not_found", "tenant_inactive", "error"
var AdmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_admissions_total",
		Help:      "Total number of quota admission attempts, by resource kind and outcome.",
	},
	[]string{"resource", "outcome"},
)

// ReleasesTotal counts quota releases performed on confirmed deletions.
// Label:
//   - resource: "users" or "projects"
var ReleasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_releases_total",
		Help:      "Total number of quota slots released.",
	},
	[]string{"resource"},
)

// ── Policy metrics ────────────────────────────────────────────────────────────

// PolicyDenialsTotal counts denied access decisions. Denials produce no audit
// entries, so this counter is the only operational trace they leave.
// Label:
//   - action: the requested action identifier (e.g. "user.delete")
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of denied access decisions, by action.",
	},
	[]string{"action"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditRecordedTotal counts audit entries durably persisted.
var AuditRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_recorded_total",
		Help:      "Total number of audit entries persisted.",
	},
)

// AuditDroppedTotal counts audit entries lost on the best-effort path.
// Label:
//   - reason: "queue_full" or "store_error"
var AuditDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_dropped_total",
		Help:      "Total number of audit entries dropped, by reason.",
	},
	[]string{"reason"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntitiesCreatedTotal counts successfully created entities.
// Label:
//   - entity: "tenant", "user", "project", or "task"
var EntitiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_created_total",
		Help:      "Total number of entities created, by type.",
	},
	[]string{"entity"},
)
