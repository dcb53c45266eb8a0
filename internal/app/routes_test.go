package app

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/module/crud"
	"github.com/simp-lee/hrdesk/internal/resource"
)

const testCSRFSecret = "test-secret-32-chars-long-enough"

// routeTestFS is the smallest template set the routes render.
func routeTestFS() fstest.MapFS {
	return fstest.MapFS{
		"templates/layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{ define "base" }}{{ block "content" . }}{{ end }}{{ end }}`),
		},
		"templates/home.html": &fstest.MapFile{
			Data: []byte(`{{ template "base" . }}{{ define "content" }}home:{{ .CSRFToken }}{{ with .Layout }}|{{ .AppName }}{{ range .Nav }}|{{ .Path }}{{ end }}{{ end }}{{ end }}`),
		},
		"templates/errors/404.html": &fstest.MapFile{
			Data: []byte(`{{ template "base" . }}{{ define "content" }}404{{ end }}`),
		},
		"templates/errors/500.html": &fstest.MapFile{
			Data: []byte(`{{ template "base" . }}{{ define "content" }}500{{ end }}`),
		},
	}
}

func setupTestRouter() *gin.Engine {
	r := gin.New()
	renderer, err := NewTemplateRenderer(routeTestFS(), true)
	if err != nil {
		panic("setup renderer: " + err.Error())
	}
	r.HTMLRender = renderer
	return r
}

type stubModule struct {
	called bool
}

func (m *stubModule) RegisterRoutes(api *gin.RouterGroup, pages *gin.RouterGroup) {
	m.called = true
	api.GET("/departments", func(c *gin.Context) { c.String(http.StatusOK, "api") })
	pages.POST("/departments", func(c *gin.Context) { c.String(http.StatusOK, "page") })
}

func openTestSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db
}

func getHealth(t *testing.T, backend string, db *gorm.DB, ctx context.Context) (int, healthReport) {
	t.Helper()
	r := gin.New()
	r.GET("/health", healthHandler(backend, db))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(ctx))

	var report healthReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, w.Body.String())
	}
	return w.Code, report
}

func TestHealthHandler(t *testing.T) {
	closed := openTestSQLiteDB(t)
	sqlDB, _ := closed.DB()
	sqlDB.Close()

	tests := []struct {
		name       string
		backend    string
		db         *gorm.DB
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{"database up", resource.KindDatabase, openTestSQLiteDB(t), http.StatusOK, "ok", "ok"},
		{"database down", resource.KindDatabase, closed, http.StatusServiceUnavailable, "degraded", "error"},
		{"database backend without db", resource.KindDatabase, nil, http.StatusServiceUnavailable, "degraded", "error"},
		{"memory backend", resource.KindMemory, nil, http.StatusOK, "ok", "unused"},
		{"remote backend ignores closed db", resource.KindRemote, closed, http.StatusOK, "ok", "unused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, report := getHealth(t, tt.backend, tt.db, context.Background())
			if code != tt.wantCode {
				t.Fatalf("status code = %d, want %d", code, tt.wantCode)
			}
			if report.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", report.Status, tt.wantStatus)
			}
			if report.Components["database"] != tt.wantDB {
				t.Errorf("database = %q, want %q", report.Components["database"], tt.wantDB)
			}
			if report.Components["data_source"] != tt.backend {
				t.Errorf("data_source = %q, want %q", report.Components["data_source"], tt.backend)
			}
		})
	}
}

const blockingPingDriverName = "hrdesk_blocking_ping"

var registerBlockingPingDriverOnce sync.Once

type blockingPingDriver struct{}

func (blockingPingDriver) Open(string) (driver.Conn, error) { return blockingPingConn{}, nil }

type blockingPingConn struct{}

func (blockingPingConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (blockingPingConn) Close() error                        { return nil }
func (blockingPingConn) Begin() (driver.Tx, error)           { return nil, driver.ErrSkip }

func (blockingPingConn) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestHealthHandler_HonorsRequestDeadline(t *testing.T) {
	registerBlockingPingDriverOnce.Do(func() {
		sql.Register(blockingPingDriverName, blockingPingDriver{})
	})
	sqlDB, err := sql.Open(blockingPingDriverName, "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)

	start := time.Now()
	code, _ := getHealth(t, resource.KindDatabase, db, ctx)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Fatalf("health check ignored the request deadline, elapsed=%v", elapsed)
	}
}

func TestRegisterStaticRoutes(t *testing.T) {
	for _, mode := range []string{gin.DebugMode, gin.ReleaseMode} {
		t.Run(mode, func(t *testing.T) {
			r := gin.New()
			if err := registerStaticRoutes(r, mode); err != nil {
				t.Fatalf("registerStaticRoutes: %v", err)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/js/app.js", nil))
			if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "showToast") {
				t.Fatalf("GET app.js = %d", w.Code)
			}
			cached := w.Header().Get("Cache-Control") != ""
			if cached != (mode == gin.ReleaseMode) {
				t.Errorf("Cache-Control = %q in %s mode", w.Header().Get("Cache-Control"), mode)
			}
		})
	}
}

func TestCacheStaticHandler_SetsCacheControl(t *testing.T) {
	r := gin.New()
	r.GET("/static/*filepath", cacheStaticHandler(http.FS(fstest.MapFS{
		"css/app.css": &fstest.MapFile{Data: []byte("body{}")},
	})))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q", cc)
	}
}

func TestRegisterRoutes_Validation(t *testing.T) {
	tests := []struct {
		name    string
		router  *gin.Engine
		deps    *RouteDeps
		wantErr string
	}{
		{"nil router", nil, &RouteDeps{}, "router is nil"},
		{"nil deps", setupTestRouter(), nil, "route dependencies are nil"},
		{"no modules", setupTestRouter(), &RouteDeps{CSRFSecret: testCSRFSecret}, "at least one module is required"},
		{"empty csrf secret", setupTestRouter(), &RouteDeps{Modules: []Module{&stubModule{}}, CSRFSecret: "  "}, "csrf secret is required"},
		{"nil module", setupTestRouter(), &RouteDeps{
			Modules: []Module{&stubModule{}, nil}, Mode: gin.ReleaseMode, CSRFSecret: testCSRFSecret,
		}, "module at index 1 is nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RegisterRoutes(tt.router, tt.deps)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("RegisterRoutes() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRoutes_ModuleGroups(t *testing.T) {
	m := &stubModule{}
	r := setupTestRouter()
	if err := RegisterRoutes(r, &RouteDeps{
		Modules:    []Module{m},
		Backend:    resource.KindMemory,
		Mode:       gin.ReleaseMode,
		CSRFSecret: testCSRFSecret,
	}); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	if !m.called {
		t.Fatal("module RegisterRoutes not called")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil))
	if w.Code != http.StatusOK || w.Body.String() != "api" {
		t.Errorf("API route = %d %q", w.Code, w.Body.String())
	}

	// Page mutations sit behind CSRF.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/departments", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("page POST without token = %d, want 403", w.Code)
	}
}

func TestRegisterRoutes_HomePageShowsLayout(t *testing.T) {
	r := setupTestRouter()
	layout := &crud.Layout{
		AppName: "HR Desk",
		Nav:     []crud.NavItem{{Title: "Employees", Path: "/employees"}, {Title: "Departments", Path: "/departments"}},
	}
	if err := RegisterRoutes(r, &RouteDeps{
		Modules:    []Module{&stubModule{}},
		Backend:    resource.KindMemory,
		Mode:       gin.ReleaseMode,
		CSRFSecret: testCSRFSecret,
		Layout:     layout,
	}); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "home:") || strings.HasPrefix(body, "home:|") {
		t.Errorf("expected a CSRF token on the home page, got %q", body)
	}
	if !strings.HasSuffix(body, "|HR Desk|/employees|/departments") {
		t.Errorf("expected layout navigation in body, got %q", body)
	}
}

func TestRegisterRoutes_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "hrdesk_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	r := setupTestRouter()
	if err := RegisterRoutes(r, &RouteDeps{
		Modules:     []Module{&stubModule{}},
		Backend:     resource.KindMemory,
		Mode:        gin.ReleaseMode,
		CSRFSecret:  testCSRFSecret,
		Metrics:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		MetricsPath: "/internal/metrics",
	}); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "hrdesk_test_total 1") {
		t.Errorf("expected exposition to contain the test counter, got %q", w.Body.String())
	}
}
