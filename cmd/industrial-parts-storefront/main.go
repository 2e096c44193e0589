package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/aaravmahajanofficial/industrial-parts-storefront/docs"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/cache"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/health"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/industrial-parts-storefront/internal/services"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/templates"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/pkg/sendGrid"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

//	@title			Industrial Parts Storefront API
//	@version		1.0
//	@description	Catalog, parts request cart and checkout for industrial machinery.
//	@host			localhost:8080
//	@BasePath		/api/v1

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, machineRepo, partsRequestRepo, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Cart storage and submission limit
	var (
		storage     cache.Cache
		rateLimiter repository.RateLimitRepository
	)

	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		storage = cache.NewMemoryCache(&cfg.Cache)
		slog.Warn("In-memory cart storage: carts are lost on restart and submissions are not rate limited")
	default:
		redisClient, err := repository.NewRedisClient(ctx, cfg)
		if err != nil {
			slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
			os.Exit(1)
		}
		storage = cache.NewRedisCache(redisClient, &cfg.Cache)
		rateLimiter = repository.NewRateLimitRepo(redisClient, cfg)
	}

	defer storage.Close()

	emailService := sendGrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	renderer := templates.MustNewRenderer()
	validate := utils.NewValidator()

	catalogService := service.NewCatalogService(machineRepo, storage, cfg.Cache.DefaultTTL)
	cartService := service.NewCartService(storage, catalogService, cfg.Cache.SessionTTL)
	notificationService := service.NewNotificationService(partsRequestRepo, emailService, renderer, cfg.Storefront)
	checkoutService := service.NewCheckoutService(storage, notificationService, rateLimiter, partsRequestRepo, validate, cfg.Cache.SessionTTL)

	sessions := middleware.NewSessionMiddleware([]byte(cfg.Security.JWTKey), cfg.Security.SessionTTL(), cfg.Security.SecureCookie)
	ipLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateConfig.RequestsPerSecond), cfg.RateConfig.Burst)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized",
		slog.String("env", cfg.Env),
		slog.String("cache", cfg.Cache.Backend),
		slog.String("catalog", cfg.Storefront.CatalogSource),
		slog.String("version", "1.0.0"))

	// Setup router
	routerMux := api.NewRouter(api.Handlers{
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Cart:     handlers.NewCartHandler(cartService),
		Checkout: handlers.NewCheckoutHandler(checkoutService),
	}, sessions)
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler) // must see the request the mux matched
	handler = middleware.Logging(handler)
	handler = ipLimiter.Limit(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
