package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Lelo88/product-api-golang/internal/config"
	"github.com/Lelo88/product-api-golang/internal/docs"
	"github.com/Lelo88/product-api-golang/internal/health"
	"github.com/Lelo88/product-api-golang/internal/httpx"
	"github.com/Lelo88/product-api-golang/internal/logger"
	"github.com/Lelo88/product-api-golang/internal/metrics"
	"github.com/Lelo88/product-api-golang/internal/products"
)

const serviceName = "product-api"

var (
	loadConfigFn     = config.Load
	newLoggerFn      = logger.New
	openStoreFn      = openStore
	listenAndServeFn = listenAndServe
	fatalf           = log.Fatal
)

// appStore es el gateway de products más lo que el proceso necesita
// para readiness y cierre ordenado.
type appStore interface {
	products.Store
	health.Pinger
	Close()
}

type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(cfg logger.Config) (*zap.Logger, error)
	openStore      func(ctx context.Context, cfg config.Config, log *zap.Logger) (appStore, error)
	listenAndServe func(ctx context.Context, addr string, handler http.Handler) error
}

func main() {
	// Contexto raíz del proceso: se cancela con SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		openStore:      openStoreFn,
		listenAndServe: listenAndServeFn,
	}
	if err := run(ctx, deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger, err := deps.newLogger(logger.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()

	store, err := deps.openStore(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := metrics.NewHTTP(registry)
	if err != nil {
		return err
	}

	router := buildRouter(store, appLogger, httpMetrics, registry)

	addr := ":" + cfg.Port
	appLogger.Info("listening", zap.String("addr", addr), zap.Bool("auto_migrate", cfg.AutoMigrate))
	return deps.listenAndServe(ctx, addr, router)
}

func buildRouter(store appStore, appLogger *zap.Logger, httpMetrics *metrics.HTTP, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	// Sin Timeout: la API no corta requests del lado del servidor.
	r.Use(httpx.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(appLogger))
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	healthHandler := health.New(store)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))

	docs.RegisterRoutes(r)

	productHandler := products.NewHandler(products.NewService(store))
	products.RegisterRoutes(r, productHandler)

	return r
}

// listenAndServe atiende hasta que ctx se cancela y luego drena conexiones.
func listenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
