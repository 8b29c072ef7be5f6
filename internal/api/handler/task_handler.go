package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=300"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  string     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress completed"`
}

type assigneeResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type taskViewResponse struct {
	domain.Task
	Assignee *assigneeResponse `json:"assignee,omitempty"`
}

type listTasksResponse struct {
	Items      []taskViewResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// Create handles POST /v1/projects/:project_id/tasks.
//
// @Summary      Create a task under a project
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string             true  "Project ID"
// @Param        body        body      createTaskRequest  true  "Task details"
// @Success      201         {object}  domain.Task
// @Failure      400         {object}  map[string]string
// @Failure      403         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Router       /v1/projects/{project_id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Principal:   p,
		ProjectID:   c.Param("project_id"),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		IPAddress:   c.RealIP(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/projects/:project_id/tasks.
//
// @Summary      List tasks under a project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id   path      string  true   "Project ID"
// @Param        status       query     string  false  "Filter by status"
// @Param        assigned_to  query     string  false  "Filter by assignee user ID"
// @Param        priority     query     string  false  "Filter by priority"
// @Param        search       query     string  false  "Substring match on title"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Page size (default 50, max 100)"
// @Success      200          {object}  listTasksResponse
// @Failure      403          {object}  map[string]string
// @Failure      404          {object}  map[string]string
// @Router       /v1/projects/{project_id}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		Principal:  p,
		ProjectID:  c.Param("project_id"),
		Status:     c.QueryParam("status"),
		AssignedTo: c.QueryParam("assigned_to"),
		Priority:   c.QueryParam("priority"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	items := make([]taskViewResponse, 0, len(result.Items))
	for _, v := range result.Items {
		item := taskViewResponse{Task: v.Task}
		if v.Assignee != nil {
			item.Assignee = &assigneeResponse{
				ID:       v.Assignee.ID,
				FullName: v.Assignee.FullName,
				Email:    v.Assignee.Email,
			}
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, listTasksResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus handles PATCH /v1/tasks/:id/status.
//
// @Summary      Move a task to another workflow status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Task ID"
// @Param        body  body      updateTaskStatusRequest  true  "New status"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateTaskStatusInput{
		Principal: p,
		TaskID:    c.Param("id"),
		Status:    req.Status,
		IPAddress: c.RealIP(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// Update handles PUT /v1/tasks/:id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to update; omitted fields are left unchanged"
// @Success      200   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Update(c.Request().Context(), ports.UpdateTaskInput{
		Principal:   p,
		TaskID:      c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		IPAddress:   c.RealIP(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}
