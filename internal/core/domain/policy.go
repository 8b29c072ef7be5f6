package domain

// Action identifies one operation a principal can request. The set is closed:
// supporting a new entity type means adding constants and table rows here,
// never new conditional branches at call sites.
type Action string

const (
	ActionTenantView Action = "tenant.view"

	ActionUserCreate Action = "user.create"
	ActionUserList   Action = "user.list"
	// ActionUserUpdate is the admin-level update of another user's full
	// name, role, or active flag.
	ActionUserUpdate Action = "user.update"
	// ActionUserUpdateSelf is the self-service rename. It is a distinct,
	// narrower permission than ActionUserUpdate and is never inferred from
	// which fields a request happens to touch.
	ActionUserUpdateSelf Action = "user.update_self"
	ActionUserDelete     Action = "user.delete"

	ActionProjectCreate Action = "project.create"
	ActionProjectList   Action = "project.list"

	ActionTaskCreate       Action = "task.create"
	ActionTaskList         Action = "task.list"
	ActionTaskUpdate       Action = "task.update"
	ActionTaskUpdateStatus Action = "task.update_status"
)

// actionRule captures the policy flags for one action.
type actionRule struct {
	// adminOnly requires the tenant_admin role (super_admin implies it).
	adminOnly bool
	// selfOnly requires the resource owner to be the principal.
	selfOnly bool
	// denySelf forbids the action when the resource owner is the
	// principal, regardless of role.
	denySelf bool
}

var policyRules = map[Action]actionRule{
	ActionTenantView: {},

	ActionUserCreate:     {adminOnly: true},
	ActionUserList:       {},
	ActionUserUpdate:     {adminOnly: true},
	ActionUserUpdateSelf: {selfOnly: true},
	ActionUserDelete:     {adminOnly: true, denySelf: true},

	ActionProjectCreate: {},
	ActionProjectList:   {},

	ActionTaskCreate:       {},
	ActionTaskList:         {},
	ActionTaskUpdate:       {},
	ActionTaskUpdateStatus: {},
}

// Decide is the single access decision function: it maps (principal, action,
// resource tenant, resource owner) to nil (allow) or a sentinel error (deny).
// It is pure and total: every (action, role) pair has a defined outcome, and
// unknown actions deny. resourceOwnerID may be empty when the action has no
// per-user target (e.g. listing or creating projects).
//
// Precedence:
//  1. denySelf applies to every role, super_admin included.
//  2. super_admin passes everything else.
//  3. the principal must belong to the resource's tenant.
//  4. selfOnly actions require owner == principal.
//  5. adminOnly actions require the tenant_admin role.
func Decide(p Principal, action Action, resourceTenantID, resourceOwnerID string) error {
	rule, ok := policyRules[action]
	if !ok {
		return ErrUnauthorized
	}

	if rule.denySelf && resourceOwnerID != "" && p.UserID == resourceOwnerID {
		return ErrCannotDeleteSelf
	}

	if p.IsSuperAdmin() {
		return nil
	}

	if p.TenantID == "" || p.TenantID != resourceTenantID {
		return ErrUnauthorized
	}

	if rule.selfOnly {
		if p.UserID != resourceOwnerID {
			return ErrUnauthorized
		}
		return nil
	}

	if rule.adminOnly && p.Role != RoleTenantAdmin {
		return ErrUnauthorized
	}

	return nil
}
