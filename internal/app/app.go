package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/config"
	"github.com/simp-lee/hrdesk/internal/hr"
	"github.com/simp-lee/hrdesk/internal/middleware"
	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/web"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine   *gin.Engine
	db       *gorm.DB
	logger   *logger.Logger
	cfg      *config.Config
	registry *hr.Registry
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// defaultRequestTimeout applies when server.timeout is unset. Writes get
// twice the budget so exports of large tables can finish.
const defaultRequestTimeout = 30 * time.Second

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the selected data backend, the HR resource registry,
// metrics, middleware, template rendering, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()
	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}

	csrfSecret, err := resolveCSRFSecret(cfg.Server.Mode, cfg.Server.CSRFSecret)
	if err != nil {
		return nil, err
	}
	if csrfSecret != cfg.Server.CSRFSecret {
		log.Warn("no csrf_secret configured, using random secret in non-release mode (will change on restart)")
	}

	backend, release, err := OpenBackend(cfg, log.Logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if !success {
			release()
		}
	}()

	promRegistry := prometheus.NewRegistry()
	var metrics *resource.Metrics
	if cfg.Metrics.Enabled {
		promRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = resource.NewMetrics(promRegistry)
	}

	registry, err := hr.Build(hr.Config{
		Backend: backend,
		Logger:  log.Logger,
		Metrics: metrics,
		Audit:   cfg.Data.Audit,
		Layout:  &crud.Layout{AppName: cfg.App.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("build resources: %w", err)
	}
	log.Info("data backend selected",
		slog.String("kind", backend.Kind()),
		slog.Int("resources", len(registry.Resources())),
		slog.Bool("audit", cfg.Data.Audit),
	)

	if err := migrate(cfg, backend.DB, registry, log.Logger); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(middlewareChain(cfg, log.Logger)...)
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics(promRegistry))
	}

	renderer, err := newRenderer(cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("setup template renderer: %w", err)
	}
	engine.HTMLRender = renderer

	deps := &RouteDeps{
		Backend:    backend.Kind(),
		DB:         backend.DB,
		Mode:       cfg.Server.Mode,
		CSRFSecret: csrfSecret,
		Layout:     registry.Layout(),
	}
	for _, m := range registry.Modules() {
		deps.Modules = append(deps.Modules, m)
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{Registry: promRegistry})
		deps.MetricsPath = cfg.Metrics.Path
	}
	if err := RegisterRoutes(engine, deps); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:   engine,
		db:       backend.DB,
		logger:   log,
		cfg:      cfg,
		registry: registry,
	}, nil
}

// migrate creates the resource tables in debug mode or when
// database.auto_migrate is set. It is a no-op without a database.
func migrate(cfg *config.Config, db *gorm.DB, registry *hr.Registry, log *slog.Logger) error {
	if db == nil || (cfg.Server.Mode != gin.DebugMode && !cfg.Database.AutoMigrate) {
		return nil
	}
	if err := db.AutoMigrate(registry.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("auto migration completed", slog.Int("tables", len(registry.Models())))
	return nil
}

// middlewareChain returns the global middleware in order. Request IDs come
// first so panics and access logs carry them.
func middlewareChain(cfg *config.Config, log *slog.Logger) []gin.HandlerFunc {
	quiet := []string{"/health", "/static/"}
	if cfg.Metrics.Enabled {
		quiet = append(quiet, cfg.Metrics.Path)
	}
	return []gin.HandlerFunc{
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: cfg.Server.TrustRequestID}),
		middleware.Recovery(log),
		middleware.Logger(log, quiet...),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	}
}

// newRenderer loads templates from disk in debug mode and from the embedded
// copy otherwise, then checks every console page is present.
func newRenderer(mode string) (*TemplateRenderer, error) {
	fsys := fs.FS(web.EmbeddedFS)
	if mode == gin.DebugMode {
		var err error
		if fsys, err = resolveDebugWebFS(); err != nil {
			return nil, err
		}
	}
	renderer, err := NewTemplateRenderer(fsys, mode == gin.DebugMode)
	if err != nil {
		return nil, err
	}
	if err := renderer.Check(consolePages...); err != nil {
		return nil, err
	}
	return renderer, nil
}

// resolveCSRFSecret returns the configured secret, or a random one outside
// release mode when the configured value is blank or a placeholder.
func resolveCSRFSecret(mode, configured string) (string, error) {
	if !isPlaceholderCSRFSecret(configured) {
		return configured, nil
	}
	if mode == gin.ReleaseMode {
		return "", errors.New("csrf_secret must be a non-placeholder value in release mode")
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate csrf secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Handler exposes the configured engine, mainly for tests.
func (a *App) Handler() http.Handler { return a.engine }

// Registry returns the HR resources the app serves.
func (a *App) Registry() *hr.Registry { return a.registry }

func closeDB(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("database close error", slog.Any("error", err))
		return
	}
	log.Info("database connection closed")
}

func isPlaceholderCSRFSecret(secret string) bool {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return true
	}

	switch strings.ToLower(trimmed) {
	case "change-me-to-a-random-secret", "change-me-in-env":
		return true
	default:
		return false
	}
}

func resolveCORSConfig(mode string, configured config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configured.AllowMethods) > 0 {
		corsConfig.AllowMethods = configured.AllowMethods
	}
	if len(configured.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = configured.AllowHeaders
	}
	corsConfig.AllowCredentials = configured.AllowCredentials
	if d, err := time.ParseDuration(configured.MaxAge); err == nil && d > 0 {
		corsConfig.MaxAge = d
	}

	if len(configured.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = configured.AllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

func resolveDebugWebFS() (fs.FS, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		webDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "web"))
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	exePath, err := os.Executable()
	if err == nil {
		webDir := filepath.Join(filepath.Dir(exePath), "web")
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	return nil, errors.New("debug web directory not found")
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts down gracefully within 5 seconds and closes the database
// connection when one is open.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, a.cfg.ServerTimeout())
	log := a.log()

	// Listen for SIGINT / SIGTERM.
	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		closeDB(a.db, log)
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}
