package service

import (
	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/pkg/metrics"
)

// decide runs the access policy and counts denials. Every service-level
// authorization check goes through here; no endpoint re-implements role
// logic. Denials are side-effect-free: counted, never audited.
func decide(p domain.Principal, action domain.Action, resourceTenantID, resourceOwnerID string) error {
	if err := domain.Decide(p, action, resourceTenantID, resourceOwnerID); err != nil {
		metrics.PolicyDenialsTotal.WithLabelValues(string(action)).Inc()
		return err
	}
	return nil
}
