package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/dispatch-dashboard/internal/api/http"
	"github.com/spec-kit/dispatch-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/dispatch-dashboard/internal/auth"
	"github.com/spec-kit/dispatch-dashboard/internal/backend"
	"github.com/spec-kit/dispatch-dashboard/internal/collection"
	"github.com/spec-kit/dispatch-dashboard/internal/config"
	"github.com/spec-kit/dispatch-dashboard/internal/credentials"
	"github.com/spec-kit/dispatch-dashboard/internal/observability"
	"github.com/spec-kit/dispatch-dashboard/internal/persistence"
	"github.com/spec-kit/dispatch-dashboard/internal/service"
	"github.com/spec-kit/dispatch-dashboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	cache := persistence.NewScreenCache(redis, cfg.Cache.TTL(), logger)

	creds := credentials.NewStore(cfg.Storage.StateDir)
	client := backend.New(cfg.Backend, creds, logger, metrics)
	authService := auth.NewService(client, creds, logger)

	sessionStore := session.NewStore()
	bootstrap := session.NewBootstrap(authService, sessionStore, logger)
	go bootstrap.Run(ctx)

	tasksService := service.NewTasksService(client, logger)
	slices := collection.NewSlices(tasksService, cache)
	maintenanceService := service.NewMaintenanceService(client, logger)
	maintenance := collection.NewMaintenance(maintenanceService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Auth:        handlers.NewAuthHandler(authService, sessionStore),
		Tasks:       handlers.NewTasksHandler(slices, tasksService),
		Maintenance: handlers.NewMaintenanceHandler(maintenance),
		Session:     sessionStore,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	bootstrap.Cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
