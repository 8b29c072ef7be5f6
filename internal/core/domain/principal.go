package domain

// Principal is the resolved identity of an authenticated caller, produced by
// the session layer after token verification. The core trusts it blindly.
type Principal struct {
	UserID   string
	TenantID string
	Role     string
}

// IsSuperAdmin reports whether the principal bypasses tenant scoping.
func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}
