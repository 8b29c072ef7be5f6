package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthorized     = errors.New("unauthorized")
	ErrCannotDeleteSelf = errors.New("cannot delete yourself")

	ErrTenantNotFound  = errors.New("tenant not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")

	ErrTenantInactive = errors.New("tenant is not active")
	ErrLimitReached   = errors.New("subscription limit reached")

	ErrSubdomainExists = errors.New("subdomain already exists")
	ErrEmailExists     = errors.New("email already exists in this tenant")

	// ErrAssigneeNotInTenant rejects task assignments that would cross a
	// tenant boundary. Treated as the caller's fault (bad input), not as
	// an authorization failure.
	ErrAssigneeNotInTenant = errors.New("assigned user not found in this tenant")
)
