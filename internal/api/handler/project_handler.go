package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Status      string `json:"status" validate:"omitempty,oneof=active archived"`
}

type projectSummaryResponse struct {
	domain.Project
	CreatorName        string `json:"creator_name,omitempty"`
	TaskCount          int64  `json:"task_count"`
	CompletedTaskCount int64  `json:"completed_task_count"`
}

type listProjectsResponse struct {
	Items      []projectSummaryResponse `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	TotalPages int                      `json:"total_pages"`
}

// Create handles POST /v1/projects.
//
// @Summary      Create a project in the caller's tenant
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  domain.Project
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Create(c.Request().Context(), ports.CreateProjectInput{
		Principal:   p,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		IPAddress:   c.RealIP(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// List handles GET /v1/projects.
//
// @Summary      List projects in the caller's tenant
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status (active, archived)"
// @Param        search  query     string  false  "Substring match on project name"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Page size (default 20, max 100)"
// @Success      200     {object}  listProjectsResponse
// @Failure      403     {object}  map[string]string
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListProjectsInput{
		Principal: p,
		Status:    c.QueryParam("status"),
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	items := make([]projectSummaryResponse, 0, len(result.Items))
	for _, s := range result.Items {
		items = append(items, projectSummaryResponse{
			Project:            s.Project,
			CreatorName:        s.CreatorName,
			TaskCount:          s.TaskCount,
			CompletedTaskCount: s.CompletedTaskCount,
		})
	}

	return c.JSON(http.StatusOK, listProjectsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
