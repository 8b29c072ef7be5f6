package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamspaces/workspace-manager/internal/api/handler"
	"github.com/teamspaces/workspace-manager/internal/api/middleware"
	"github.com/teamspaces/workspace-manager/internal/core/domain"
	"github.com/teamspaces/workspace-manager/internal/core/ports"
	"github.com/teamspaces/workspace-manager/internal/core/quota"
	"github.com/teamspaces/workspace-manager/internal/core/service"
	mongodb "github.com/teamspaces/workspace-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/teamspaces/workspace-manager/internal/infrastructure/db/redis"
)

// Deps carries the external dependencies the router wires together.
type Deps struct {
	DB        *mongo.Database
	Redis     *redisclient.Client
	Audit     ports.AuditRecorder
	JWTSecret string
	TokenTTL  time.Duration
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workspace"))

	// --- Repositories ---
	tenantRepo := mongodb.NewTenantRepository(deps.DB)
	userRepo := mongodb.NewUserRepository(deps.DB)
	projectRepo := mongodb.NewProjectRepository(deps.DB)
	taskRepo := mongodb.NewTaskRepository(deps.DB)
	counter := mongodb.NewResourceCounter(deps.DB)
	tokenStore := redisdb.NewTokenStore(deps.Redis)

	// --- Core services ---
	governor := quota.NewGovernor(tenantRepo, counter, deps.Log)
	authService := service.NewAuthService(tenantRepo, userRepo, tokenStore, deps.Audit, deps.JWTSecret, deps.TokenTTL, deps.Log)
	tenantService := service.NewTenantService(tenantRepo, counter, taskRepo, deps.Log)
	userService := service.NewUserService(userRepo, taskRepo, governor, deps.Audit, deps.Log)
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, governor, deps.Audit, deps.Log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, deps.Audit, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)

	auth := middleware.Auth(deps.JWTSecret, tokenStore)
	adminOnly := middleware.RBAC(domain.RoleSuperAdmin, domain.RoleTenantAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.RegisterTenant)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, auth)
	e.POST("/auth/logout", authHandler.Logout, auth)

	// --- API routes ---
	v1 := e.Group("/v1", auth)

	v1.GET("/tenants/:id", tenantHandler.Get)

	// Fine-grained decisions (tenant scoping, self rules) happen in the
	// policy engine; RBAC here only blocks roles that can never pass.
	v1.POST("/users", userHandler.Create, adminOnly)
	v1.GET("/users", userHandler.List)
	v1.PUT("/users/:id", userHandler.Update)
	v1.DELETE("/users/:id", userHandler.Delete, adminOnly)

	v1.POST("/projects", projectHandler.Create)
	v1.GET("/projects", projectHandler.List)

	v1.POST("/projects/:project_id/tasks", taskHandler.Create)
	v1.GET("/projects/:project_id/tasks", taskHandler.List)
	v1.PUT("/tasks/:id", taskHandler.Update)
	v1.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
