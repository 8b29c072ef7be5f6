package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerTenantRequest struct {
	TenantName    string `json:"tenant_name" validate:"required,min=2,max=100"`
	Subdomain     string `json:"subdomain" validate:"required,min=2,max=63,hostname_rfc1123"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
	AdminFullName string `json:"admin_full_name" validate:"required,min=2,max=100"`
}

type registerTenantResponse struct {
	Tenant *domain.Tenant `json:"tenant"`
	User   *domain.User   `json:"user"`
}

type loginRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	TenantSubdomain string `json:"tenant_subdomain,omitempty"`
	TenantID        string `json:"tenant_id,omitempty"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      *domain.User `json:"user"`
}

type currentUserResponse struct {
	User   *domain.User   `json:"user"`
	Tenant *domain.Tenant `json:"tenant"`
}

// RegisterTenant provisions a new workspace with its initial admin user.
//
// @Summary      Register a new tenant workspace
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerTenantRequest  true  "Tenant registration details"
// @Success      201   {object}  registerTenantResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) RegisterTenant(c echo.Context) error {
	var req registerTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.RegisterTenant(c.Request().Context(), ports.RegisterTenantInput{
		TenantName:    req.TenantName,
		Subdomain:     req.Subdomain,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminFullName: req.AdminFullName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerTenantResponse{
		Tenant: result.Tenant,
		User:   result.AdminUser,
	})
}

// Login authenticates a user within a tenant and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials; tenant_subdomain or tenant_id selects the workspace"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:           req.Email,
		Password:        req.Password,
		TenantSubdomain: req.TenantSubdomain,
		TenantID:        req.TenantID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      result.User,
	})
}

// Me returns the authenticated user and its tenant.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  currentUserResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.authService.CurrentUser(c.Request().Context(), p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, currentUserResponse{
		User:   result.User,
		Tenant: result.Tenant,
	})
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	tokenID, expiresAt := ctxToken(c)

	if err := h.authService.Logout(c.Request().Context(), ports.LogoutInput{
		Principal: p,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		IPAddress: c.RealIP(),
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}
