package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/middleware"
	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/resource"
	"github.com/simp-lee/hrdesk/web"
)

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	// Backend is the data source kind behind every module (see resource.Kind*).
	Backend string
	// DB is pinged by /health when Backend is the database.
	DB         *gorm.DB
	Mode       string // "debug" or "release"
	CSRFSecret string
	Layout     *crud.Layout
	// Metrics, when set, is served on MetricsPath.
	Metrics     http.Handler
	MetricsPath string
}

// RegisterRoutes registers all application routes on the given gin.Engine.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}
	if strings.TrimSpace(deps.CSRFSecret) == "" {
		return errors.New("csrf secret is required")
	}

	// Static assets
	if err := registerStaticRoutes(r, deps.Mode); err != nil {
		return fmt.Errorf("register static routes: %w", err)
	}

	r.GET("/health", healthHandler(deps.Backend, deps.DB))

	if deps.Metrics != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(deps.Metrics))
	}

	// Home page (with CSRF so templates have a token)
	r.GET("/", middleware.CSRF(deps.CSRFSecret), func(c *gin.Context) {
		c.HTML(http.StatusOK, "home.html", gin.H{
			"CSRFToken": middleware.GetCSRFToken(c),
			"Layout":    deps.Layout,
			"Now":       time.Now(),
		})
	})

	// API routes, no CSRF
	api := r.Group("/api/v1")

	// Console pages, with CSRF
	pages := r.Group("/")
	pages.Use(middleware.CSRF(deps.CSRFSecret))

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(api, pages)
	}

	r.NoRoute(errorPages{layout: deps.Layout}.noRoute)

	return nil
}

// healthReport is the /health body. components.database is "unused" unless
// records live in the database.
type healthReport struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// healthHandler reports the data source in use. Only the database backend
// has a dependency worth pinging; the remote backend is checked per request.
func healthHandler(backend string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := healthReport{
			Status:     "ok",
			Components: map[string]string{"data_source": backend, "database": "unused"},
		}
		code := http.StatusOK

		if backend == resource.KindDatabase {
			report.Components["database"] = "ok"
			if err := pingDB(c.Request.Context(), db); err != nil {
				report.Components["database"] = "error"
				report.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		c.JSON(code, report)
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// registerStaticRoutes serves /static from the web directory on disk in
// debug mode, so asset edits show without a rebuild, and from the embedded
// copy with a cache header otherwise.
func registerStaticRoutes(r *gin.Engine, mode string) error {
	webFS := fs.FS(web.EmbeddedFS)
	if mode == gin.DebugMode {
		var err error
		if webFS, err = resolveDebugWebFS(); err != nil {
			return fmt.Errorf("resolve debug web filesystem: %w", err)
		}
	}
	staticFS, err := fs.Sub(webFS, "static")
	if err != nil {
		return fmt.Errorf("create sub filesystem for static assets: %w", err)
	}

	if mode == gin.DebugMode {
		fileServer := http.StripPrefix("/static", http.FileServer(http.FS(staticFS)))
		r.GET("/static/*filepath", gin.WrapH(fileServer))
		return nil
	}
	r.GET("/static/*filepath", cacheStaticHandler(http.FS(staticFS)))
	return nil
}

// cacheStaticHandler serves release-mode static assets with a one-day
// Cache-Control header.
func cacheStaticHandler(fsys http.FileSystem) gin.HandlerFunc {
	fileServer := http.StripPrefix("/static", http.FileServer(fsys))
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=86400")
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
