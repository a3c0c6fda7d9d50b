package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	swhttp "github.com/seatwise/seatwise/internal/adapter/http"
	swnats "github.com/seatwise/seatwise/internal/adapter/nats"
	"github.com/seatwise/seatwise/internal/adapter/natskv"
	swotel "github.com/seatwise/seatwise/internal/adapter/otel"
	"github.com/seatwise/seatwise/internal/adapter/postgres"
	"github.com/seatwise/seatwise/internal/adapter/ristretto"
	"github.com/seatwise/seatwise/internal/adapter/tiered"
	"github.com/seatwise/seatwise/internal/config"
	"github.com/seatwise/seatwise/internal/logger"
	"github.com/seatwise/seatwise/internal/middleware"
	"github.com/seatwise/seatwise/internal/service"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"auth_enabled", cfg.Auth.Enabled,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---

	otelShutdown, err := swotel.Setup(ctx, cfg.Logging.Service, cfg.OTel)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := swotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	queue, err := swnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	idempotencyKV, err := queue.KeyValue(ctx, "idempotency", 24*time.Hour)
	if err != nil {
		return fmt.Errorf("idempotency bucket: %w", err)
	}

	local, err := ristretto.New(cfg.Cache.MaxCostBytes)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer local.Close()

	// Dashboard snapshots are shared across instances through a NATS KV
	// bucket, with the in-process cache as L1.
	dashboardKV, err := queue.KeyValue(ctx, "dashboards", cfg.Cache.DashboardTTL)
	if err != nil {
		return fmt.Errorf("dashboard bucket: %w", err)
	}
	dashCache := tiered.New(local, natskv.New(dashboardKV), cfg.Cache.DashboardTTL)

	// --- Services ---

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	tenantSvc := service.NewTenantService(store)
	eventSvc := service.NewEventService(store)
	bookingSvc := service.NewBookingService(store, queue, metrics)
	notificationSvc := service.NewNotificationService(store)
	dashboardSvc := service.NewDashboardService(store, dashCache, cfg.Cache.DashboardTTL)

	authSvc.StartTokenCleanup(ctx, time.Hour)

	// --- HTTP ---

	handlers := &swhttp.Handlers{
		Auth:          authSvc,
		Tenants:       tenantSvc,
		Events:        eventSvc,
		Bookings:      bookingSvc,
		Notifications: notificationSvc,
		Dashboard:     dashboardSvc,
	}

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopLimiterCleanup := limiter.StartCleanup(time.Minute, 10*time.Minute)
	defer stopLimiterCleanup()

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(swotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(swhttp.Logger)
	r.Use(swhttp.SecurityHeaders)
	r.Use(swhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(limiter.Handler)
	r.Use(middleware.Idempotency(idempotencyKV))
	r.Use(middleware.Auth(authSvc, cfg.Auth.Enabled))

	swhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
