package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teamspaces/workspace-manager/docs"
	"github.com/teamspaces/workspace-manager/internal/api"
	"github.com/teamspaces/workspace-manager/internal/infrastructure/audit"
	mongodb "github.com/teamspaces/workspace-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/teamspaces/workspace-manager/internal/infrastructure/db/redis"
	"github.com/teamspaces/workspace-manager/internal/pkg/config"
	"github.com/teamspaces/workspace-manager/pkg/logger"
)

// @title           Workspace Manager API
// @version         1.0
// @description     Multi-tenant workspace management: tenants, users, projects, tasks.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "workspace-manager",
		Pretty:  !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	sink := audit.NewSink(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	sink.Start(ctx)

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Audit:     sink,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting workspace manager")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
