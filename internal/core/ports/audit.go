package ports

import (
	"context"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// AuditRepository persists audit entries to the append-only store.
type AuditRepository interface {
	Insert(ctx context.Context, e *domain.AuditEntry) error
}

// AuditRecorder is the fire-and-forget sink consumed by services. Record must
// never block the caller or surface an error: a lost entry is logged locally
// and dropped, it never fails the mutation it describes.
type AuditRecorder interface {
	Record(e domain.AuditEntry)
}
