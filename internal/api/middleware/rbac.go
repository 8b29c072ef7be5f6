package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC is a coarse role gate applied at the route level. Fine-grained
// decisions (tenant scoping, self rules) live in the policy engine; this
// middleware only rejects roles that can never reach the endpoint.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
