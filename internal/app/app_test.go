package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/hrdesk/internal/config"
	"github.com/simp-lee/hrdesk/internal/domain"
	"github.com/simp-lee/hrdesk/internal/resource"
)

type fakeHTTPServer struct {
	listenErr      error
	listenStarted  chan struct{}
	shutdownCalled bool
	stopCh         chan struct{}
	mu             sync.Mutex
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenStarted != nil {
		close(f.listenStarted)
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	if f.stopCh != nil {
		<-f.stopCh
		return http.ErrServerClosed
	}
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdownCalled = true
	f.mu.Unlock()
	if f.stopCh != nil {
		close(f.stopCh)
	}
	return nil
}

func (f *fakeHTTPServer) wasShutdownCalled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdownCalled
}

// testConfig returns a test-mode config served from mock data.
func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "HR Desk"},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
			Mode: gin.TestMode,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "text",
		},
		Data:    config.DataConfig{Mock: true, Audit: true},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func cleanupTestApp(t *testing.T, a *App) {
	t.Helper()
	if a == nil {
		return
	}
	if a.db != nil {
		sqlDB, dbErr := a.db.DB()
		if dbErr == nil {
			_ = sqlDB.Close()
		}
	}
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func serve(a *App, method, target, accept string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	a.Handler().ServeHTTP(w, req)
	return w
}

func TestResolveCORSConfig(t *testing.T) {
	tests := []struct {
		name            string
		mode            string
		corsCfg         config.CORSConfig
		wantOrigins     []string
		wantMethods     []string
		wantCredentials bool
		wantMaxAge      time.Duration
	}{
		{
			name:        "debug mode uses permissive default when not configured",
			mode:        gin.DebugMode,
			wantOrigins: []string{"*"},
			wantMaxAge:  24 * time.Hour,
		},
		{
			name:        "release mode denies cross-origin when not configured",
			mode:        gin.ReleaseMode,
			wantOrigins: []string{},
			wantMaxAge:  24 * time.Hour,
		},
		{
			name:        "release mode uses explicit allowlist",
			mode:        gin.ReleaseMode,
			corsCfg:     config.CORSConfig{AllowOrigins: []string{"https://admin.example.com"}},
			wantOrigins: []string{"https://admin.example.com"},
			wantMaxAge:  24 * time.Hour,
		},
		{
			name: "configured methods credentials and max age",
			mode: gin.ReleaseMode,
			corsCfg: config.CORSConfig{
				AllowOrigins:     []string{"https://example.com"},
				AllowMethods:     []string{"GET", "POST"},
				AllowCredentials: true,
				MaxAge:           "12h",
			},
			wantOrigins:     []string{"https://example.com"},
			wantMethods:     []string{"GET", "POST"},
			wantCredentials: true,
			wantMaxAge:      12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveCORSConfig(tt.mode, tt.corsCfg)

			if strings.Join(got.AllowOrigins, ",") != strings.Join(tt.wantOrigins, ",") {
				t.Fatalf("AllowOrigins = %v, want %v", got.AllowOrigins, tt.wantOrigins)
			}
			if tt.wantMethods != nil && strings.Join(got.AllowMethods, ",") != strings.Join(tt.wantMethods, ",") {
				t.Fatalf("AllowMethods = %v, want %v", got.AllowMethods, tt.wantMethods)
			}
			if got.AllowCredentials != tt.wantCredentials {
				t.Fatalf("AllowCredentials = %v, want %v", got.AllowCredentials, tt.wantCredentials)
			}
			if got.MaxAge != tt.wantMaxAge {
				t.Fatalf("MaxAge = %v, want %v", got.MaxAge, tt.wantMaxAge)
			}
		})
	}
}

func TestValidateGinMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{name: "debug mode", mode: gin.DebugMode, wantErr: false},
		{name: "release mode", mode: gin.ReleaseMode, wantErr: false},
		{name: "test mode", mode: gin.TestMode, wantErr: false},
		{name: "invalid mode", mode: "staging", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGinMode(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateGinMode() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_ReturnsError_WhenDatabaseSetupFails(t *testing.T) {
	cfg := testConfig()
	cfg.Data = config.DataConfig{Live: config.LiveDatabase}
	cfg.Database = config.DatabaseConfig{Driver: "unsupported"}

	app, err := New(cfg)
	if err == nil {
		t.Fatalf("New() error = nil, want error")
	}
	if app != nil {
		t.Fatalf("New() app = %#v, want nil", app)
	}
	if !strings.Contains(err.Error(), "setup database") {
		t.Fatalf("New() error = %q, want contains %q", err.Error(), "setup database")
	}
}

func TestNew_ReturnsError_WhenRemoteBackendInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.Data = config.DataConfig{Live: config.LiveRemote, Remote: config.RemoteConfig{BaseURL: "ftp://hr.example.com"}}

	app, err := New(cfg)
	if err == nil || !strings.Contains(err.Error(), "setup remote backend") {
		t.Fatalf("New() error = %v, want remote backend error", err)
	}
	if app != nil {
		t.Fatalf("New() app = %#v, want nil", app)
	}
}

func TestResolveCSRFSecret(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		configured string
		wantErr    bool
		wantRandom bool
	}{
		{"release rejects empty", gin.ReleaseMode, "", true, false},
		{"release rejects placeholder", gin.ReleaseMode, "Change-Me-In-Env", true, false},
		{"release keeps real secret", gin.ReleaseMode, "Abcd1234!Abcd1234!", false, false},
		{"debug generates for empty", gin.DebugMode, "   ", false, true},
		{"test generates for placeholder", gin.TestMode, "change-me-to-a-random-secret", false, true},
		{"test keeps real secret", gin.TestMode, "hrdesk-secret", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCSRFSecret(tt.mode, tt.configured)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveCSRFSecret() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantRandom {
				if len(got) != 64 || got == tt.configured {
					t.Errorf("expected a 64-char random hex secret, got %q", got)
				}
				return
			}
			if got != tt.configured {
				t.Errorf("secret = %q, want %q", got, tt.configured)
			}
		})
	}
}

func TestNew_ReleaseModeRequiresCSRFSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Mode = gin.ReleaseMode

	app, err := New(cfg)
	if err == nil || !strings.Contains(err.Error(), "csrf_secret") {
		t.Fatalf("New() error = %v, want csrf_secret error", err)
	}
	if app != nil {
		t.Fatalf("New() app = %#v, want nil", app)
	}

	cfg.Server.CSRFSecret = "Abcd1234!Abcd1234!Abcd1234!Abcd1234!"
	app, err = New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cleanupTestApp(t, app)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	tests := []struct {
		name      string
		timeout   time.Duration
		wantRead  time.Duration
		wantWrite time.Duration
	}{
		{"default", 0, 30 * time.Second, time.Minute},
		{"configured", 5 * time.Second, 5 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, ok := newHTTPServer("127.0.0.1:0", http.NotFoundHandler(), tt.timeout).(*http.Server)
			if !ok {
				t.Fatal("expected *http.Server")
			}
			if srv.ReadTimeout != tt.wantRead || srv.WriteTimeout != tt.wantWrite {
				t.Errorf("timeouts = %v/%v, want %v/%v", srv.ReadTimeout, srv.WriteTimeout, tt.wantRead, tt.wantWrite)
			}
		})
	}
}

func TestMiddlewareChain_QuietsMetricsPath(t *testing.T) {
	var buf strings.Builder
	log := slog.New(slog.NewTextHandler(&buf, nil))

	cfg := testConfig()
	cfg.Metrics.Path = "/internal/metrics"
	r := gin.New()
	r.Use(middlewareChain(cfg, log)...)
	r.GET("/internal/metrics", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/employees", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/internal/metrics", "/employees"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s: missing request id header", path)
		}
	}
	if strings.Contains(buf.String(), "/internal/metrics") {
		t.Errorf("metrics scrape was logged: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "path=/employees") {
		t.Errorf("expected access log for /employees, got %s", buf.String())
	}
}

func TestNew_MockBackend_ServesConsoleAndAPI(t *testing.T) {
	app, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cleanupTestApp(t, app)

	if app.db != nil {
		t.Fatal("expected no database connection in mock mode")
	}
	if len(app.Registry().Resources()) != 22 {
		t.Fatalf("resources = %d, want 22", len(app.Registry().Resources()))
	}

	w := serve(app, http.MethodGet, "/departments", "text/html")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /departments = %d, want 200", w.Code)
	}
	if body := w.Body.String(); !strings.Contains(body, "Engineering") || !strings.Contains(body, "data source: memory") {
		t.Errorf("department page missing seeded rows or footer: %q", body)
	}

	w = serve(app, http.MethodGet, "/api/v1/departments?status=INACTIVE", "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/departments = %d, want 200", w.Code)
	}
	var page domain.Page[domain.Department]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.TotalElements != 1 || page.Content[0].Name != "Fleet" {
		t.Errorf("page = %+v, want only Fleet", page)
	}

	w = serve(app, http.MethodGet, "/health", "")
	if !strings.Contains(w.Body.String(), `"data_source":"memory"`) {
		t.Errorf("health body = %q", w.Body.String())
	}

	w = serve(app, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `hrdesk_resource_operations_total{operation="list",outcome="ok",resource="department",source="memory"}`) {
		t.Errorf("metrics missing resource counter: %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "hrdesk_http_requests_total") {
		t.Error("metrics missing http request counter")
	}
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cleanupTestApp(t, app)

	if w := serve(app, http.MethodGet, "/metrics", "application/json"); w.Code != http.StatusNotFound {
		t.Fatalf("GET /metrics = %d, want 404", w.Code)
	}
}

func TestNew_RemoteBackend_ProxiesAPI(t *testing.T) {
	var gotPath string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content":       []map[string]any{{"id": 7, "name": "Legal", "code": "LGL", "status": "ACTIVE"}},
			"totalElements": 1,
			"totalPages":    1,
			"size":          10,
			"number":        0,
			"first":         true,
			"last":          true,
		})
	}))
	defer backend.Close()

	cfg := testConfig()
	cfg.Data = config.DataConfig{Live: config.LiveRemote, Audit: true, Remote: config.RemoteConfig{BaseURL: backend.URL}}

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cleanupTestApp(t, app)

	res, ok := app.Registry().Lookup("departments")
	if !ok || res.Kind() != resource.KindRemote {
		t.Fatalf("departments resource = %+v, want remote", res)
	}

	w := serve(app, http.MethodGet, "/api/v1/departments", "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/departments = %d, want 200: %s", w.Code, w.Body.String())
	}
	if gotPath != "/api/v1/departments" {
		t.Errorf("backend path = %q, want /api/v1/departments", gotPath)
	}
	if !strings.Contains(w.Body.String(), `"Legal"`) {
		t.Errorf("body = %q, want proxied record", w.Body.String())
	}
}

func TestAutoMigrate_CreatesResourceTablesInDebug(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Mode = gin.DebugMode
	cfg.Data = config.DataConfig{Live: config.LiveDatabase}
	cfg.Database = config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "debug-migrate.db")},
	}

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	defer cleanupTestApp(t, app)

	for _, table := range []string{"employees", "departments", "audit_logs"} {
		if !app.db.Migrator().HasTable(table) {
			t.Errorf("expected table %q after debug auto migration", table)
		}
	}
}

func TestAutoMigrate_DoesNotRunOutsideDebug(t *testing.T) {
	cfg := testConfig()
	cfg.Data = config.DataConfig{Live: config.LiveDatabase}
	cfg.Database = config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "no-migrate.db")},
	}

	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	defer cleanupTestApp(t, app)

	if app.db.Migrator().HasTable("employees") {
		t.Fatal("expected employees table to be absent outside debug mode")
	}
}

func TestRun_ReturnsError_WhenListenFails(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	originalNotifyContext := notifyContext
	defer func() {
		newHTTPServer = originalNewHTTPServer
		notifyContext = originalNotifyContext
	}()

	listenErr := errors.New("listen failed")
	server := &fakeHTTPServer{listenErr: listenErr}
	newHTTPServer = func(string, http.Handler, time.Duration) httpServer {
		return server
	}
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return context.WithCancel(context.Background())
	}

	a := &App{
		engine: gin.New(),
		logger: logger.Default(),
		cfg:    &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080}},
	}

	err := a.Run()
	if err == nil {
		t.Fatalf("Run() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "server error") {
		t.Fatalf("Run() error = %q, want contains %q", err.Error(), "server error")
	}
	if !errors.Is(err, listenErr) {
		t.Fatalf("Run() error = %v, want wraps %v", err, listenErr)
	}
}

func TestRun_ShutdownSignal_ClosesDatabase(t *testing.T) {
	originalNewHTTPServer := newHTTPServer
	originalNotifyContext := notifyContext
	defer func() {
		newHTTPServer = originalNewHTTPServer
		notifyContext = originalNotifyContext
	}()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}

	server := &fakeHTTPServer{listenStarted: make(chan struct{}), stopCh: make(chan struct{})}
	newHTTPServer = func(string, http.Handler, time.Duration) httpServer {
		return server
	}

	ctx, cancel := context.WithCancel(context.Background())
	notifyContext = func(context.Context, ...os.Signal) (context.Context, context.CancelFunc) {
		return ctx, cancel
	}

	a := &App{
		engine: gin.New(),
		db:     db,
		logger: logger.Default(),
		cfg:    &config.Config{Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080}},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run()
	}()

	select {
	case <-server.listenStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start listening in time")
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return in time after shutdown signal")
	}

	if !server.wasShutdownCalled() {
		t.Fatal("expected server Shutdown() to be called")
	}

	if pingErr := sqlDB.Ping(); pingErr == nil {
		t.Fatal("expected database connection to be closed, but Ping() succeeded")
	}
}
