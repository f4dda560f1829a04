package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docportal/internal/apiclient"
	"docportal/internal/config"
	"docportal/internal/database"
	"docportal/internal/devauth"
	handlers "docportal/internal/http/handler"
	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/otel"
	"docportal/internal/service"
	"docportal/internal/session"
	"docportal/internal/storage"
	"docportal/internal/view"
	"docportal/internal/web"
)

// @title Document Portal
// @version 1.0
// @description Browser-facing portal for searching, uploading and questioning documents held by the document backend.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_failed", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	st, purger, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	api, err := apiclient.New(cfg.Backend.BaseURL, cfg.Backend.Timeout(), prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}

	authGw := service.NewAuthGateway(api, log)
	docSvc := service.NewDocumentService(api)
	qaSvc := service.NewQAService(api, cfg.QA)

	opts := []view.RegistryOption{
		view.WithIdleTimeout(cfg.Session.IdleTimeout()),
		view.WithStoreOptions(session.WithSecureCookie(cfg.Session.CookieSecure)),
	}
	if purger != nil {
		opts = append(opts, view.WithPurger(purger))
	}
	registry := view.NewRegistry(st, authGw, docSvc, qaSvc, log, opts...)
	registry.Start()
	defer registry.Stop()

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	// Controllers keep submitted filters and questions between requests, so
	// parsed values must not alias Fiber's pooled request buffers.
	app := fiber.New(fiber.Config{
		Immutable:             true,
		ErrorHandler:          handlers.ErrorHandler(),
		Views:                 web.New(),
		BodyLimit:             50 << 20,
		DisableStartupMessage: cfg.IsProduction(),
	})

	// RequestID first so every later middleware and backend call can see it.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	if cfg.DevAuth.Enabled {
		devauth.NewHandler(cfg.DevAuth, cfg.IsProduction(), log).Register(app)
		log.Warn("dev_auth_enabled", zap.String("email", cfg.DevAuth.Email))
	}

	handlers.RegisterRoutes(app, handlers.Deps{
		Registry: registry,
		Storage:  st,
		Client: middleware.ClientOptions{
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL(),
		},
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server_starting",
			zap.String("addr", addr),
			zap.String("host", cfg.AppHost),
			zap.String("env", cfg.Env),
			zap.String("backend", api.BaseURL()),
			zap.String("session_driver", cfg.Session.Driver),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(sctx)
}

// openStorage builds the configured session storage driver. The returned
// purger is nil for Redis, which expires keys on its own.
func openStorage(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (storage.Storage, view.Purger, func(), error) {
	ttl := cfg.Session.TTL()
	switch cfg.Session.Driver {
	case "redis":
		client, err := storage.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("session_storage_ready", zap.String("driver", "redis"), zap.String("addr", cfg.Redis.Addr))
		return storage.NewRedis(client, ttl), nil, func() { _ = client.Close() }, nil

	case "postgres":
		db, err := database.OpenSessionDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open session database: %w", err)
		}
		log.Info("session_storage_ready", zap.String("driver", "postgres"))
		pg := storage.NewPostgres(db, ttl)
		return pg, pg, func() { _ = db.Close() }, nil

	default:
		log.Info("session_storage_ready", zap.String("driver", "memory"))
		mem := storage.NewMemory(ttl)
		return mem, mem, func() {}, nil
	}
}
