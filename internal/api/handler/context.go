package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apimw "github.com/teamspaces/workspace-manager/internal/api/middleware"
	"github.com/teamspaces/workspace-manager/internal/core/domain"
)

// ctxPrincipal extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: user id and role must
// be non-empty (presence proves the middleware ran), and any role other than
// super_admin must carry a tenant id.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	userID, _ := c.Get(apimw.CtxUserID).(string)
	tenantID, _ := c.Get(apimw.CtxTenantID).(string)
	role, _ := c.Get(apimw.CtxRole).(string)

	if userID == "" || role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if role != domain.RoleSuperAdmin && tenantID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing tenant identity")
	}

	return domain.Principal{UserID: userID, TenantID: tenantID, Role: role}, nil
}

// ctxToken returns the token id and expiry stored by the Auth middleware.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get(apimw.CtxTokenID).(string)
	expiresAt, _ = c.Get(apimw.CtxTokenExp).(time.Time)
	return tokenID, expiresAt
}
