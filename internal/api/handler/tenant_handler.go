package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

// TenantHandler handles HTTP requests for tenant operations.
type TenantHandler struct {
	service ports.TenantService
}

func NewTenantHandler(service ports.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

type tenantResponse struct {
	Tenant *domain.Tenant     `json:"tenant"`
	Stats  domain.TenantStats `json:"stats"`
}

// Get handles GET /v1/tenants/:id.
//
// @Summary      Get a tenant with usage stats
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tenant ID"
// @Success      200  {object}  tenantResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tenantResponse{
		Tenant: detail.Tenant,
		Stats:  detail.Stats,
	})
}
