package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Live data source kinds.
const (
	LiveRemote   = "remote"
	LiveDatabase = "database"
)

// Config is the top-level application configuration.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Data     DataConfig     `koanf:"data"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// AppConfig holds display settings of the console.
type AppConfig struct {
	Name string `koanf:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host       string     `koanf:"host"`
	Port       int        `koanf:"port"`
	Mode       string     `koanf:"mode"`
	CSRFSecret string     `koanf:"csrf_secret"`
	Timeout    string     `koanf:"timeout"`
	CORS       CORSConfig `koanf:"cors"`
	// TrustRequestID reuses a well-formed X-Request-ID from a trusted proxy.
	TrustRequestID bool `koanf:"trust_request_id"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver      string         `koanf:"driver"`
	AutoMigrate bool           `koanf:"auto_migrate"`
	SQLite      SQLiteConfig   `koanf:"sqlite"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Pool        PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// DataConfig selects where HR records live. Mock serves seeded in-memory
// stores; otherwise Live picks the remote HTTP backend or the database.
type DataConfig struct {
	Mock   bool         `koanf:"mock"`
	Live   string       `koanf:"live"`
	Audit  bool         `koanf:"audit"`
	Remote RemoteConfig `koanf:"remote"`
}

// RemoteConfig holds settings of the remote HR backend.
type RemoteConfig struct {
	BaseURL  string `koanf:"base_url"`
	Token    string `koanf:"token"`
	Timeout  string `koanf:"timeout"`
	RetryMax int    `koanf:"retry_max"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// UsesDatabase reports whether the configuration needs a database connection.
// An unset live source means the database.
func (c *Config) UsesDatabase() bool {
	return !c.Data.Mock && c.Data.Live != LiveRemote
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__DATA__REMOTE__BASE_URL overrides data.remote.base_url.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Load YAML config file.
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	// Overlay environment variables with prefix APP__.
	// APP__SERVER__PORT -> server.port
	// APP__DATA__MOCK -> data.mock
	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		key = strings.ReplaceAll(key, "__", ".")
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate normalizes the loaded values in place and rejects unsupported or
// inconsistent settings. Database settings are only checked when records
// live in the database.
func (c *Config) Validate() error {
	if c.App.Name = strings.TrimSpace(c.App.Name); c.App.Name == "" {
		c.App.Name = "HR Desk"
	}
	// validateData normalizes data.live, which decides whether the database
	// settings matter.
	for _, check := range []func() error{c.validateServer, c.validateData, c.validateDurations, c.validateMetrics, c.validateLog} {
		if err := check(); err != nil {
			return err
		}
	}
	if c.UsesDatabase() {
		return c.validateDatabase()
	}
	return nil
}

func (c *Config) validateServer() error {
	var err error
	if c.Server.Mode, err = oneOf("server.mode", c.Server.Mode, false, gin.DebugMode, gin.ReleaseMode, gin.TestMode); err != nil {
		return err
	}
	if !validPort(c.Server.Port) {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.Host = strings.TrimSpace(c.Server.Host); c.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode == gin.ReleaseMode {
		if secret := strings.TrimSpace(c.Server.CSRFSecret); secret != "" && CountSecretClasses(secret) < 2 {
			return fmt.Errorf("server.csrf_secret must mix at least 2 character classes (lowercase, uppercase, digit, symbol) in release mode")
		}
	}
	return nil
}

// validateDurations checks the optional duration settings. Whitespace-only
// values are treated as unset.
func (c *Config) validateDurations() error {
	fields := []struct {
		key   string
		value *string
	}{
		{"server.timeout", &c.Server.Timeout},
		{"server.cors.max_age", &c.Server.CORS.MaxAge},
		{"database.pool.conn_max_lifetime", &c.Database.Pool.ConnMaxLifetime},
		{"data.remote.timeout", &c.Data.Remote.Timeout},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			continue
		}
		d, err := time.ParseDuration(*f.value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be a valid duration (e.g. \"30s\", \"1h\"): %w", f.key, *f.value, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s %q: must be greater than 0", f.key, *f.value)
		}
	}
	return nil
}

// validateMetrics defaults the exposition path and keeps it out of the API
// tree, where CSRF-free JSON routes live.
func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	p := strings.TrimSpace(c.Metrics.Path)
	if p == "" {
		p = "/metrics"
	}
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "/api/") {
		return fmt.Errorf("invalid metrics.path %q: must start with '/' and not be under /api/", c.Metrics.Path)
	}
	c.Metrics.Path = p
	return nil
}

func (c *Config) validateLog() error {
	var err error
	if c.Log.Level, err = oneOf("log.level", c.Log.Level, true, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	c.Log.Format, err = oneOf("log.format", c.Log.Format, true, "text", "json")
	return err
}

func (c *Config) validateData() error {
	live := c.Data.Live
	if strings.TrimSpace(live) == "" {
		live = LiveDatabase
	}
	var err error
	if c.Data.Live, err = oneOf("data.live", live, true, LiveRemote, LiveDatabase); err != nil {
		return err
	}
	if c.Data.Remote.RetryMax < 0 {
		return fmt.Errorf("invalid data.remote.retry_max %d: must not be negative", c.Data.Remote.RetryMax)
	}
	if c.Data.Mock || c.Data.Live != LiveRemote {
		return nil
	}

	base := strings.TrimSpace(c.Data.Remote.BaseURL)
	if base == "" {
		return fmt.Errorf("data.remote.base_url is required when data.live is %q", LiveRemote)
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid data.remote.base_url %q: must be an absolute http(s) URL", c.Data.Remote.BaseURL)
	}
	if c.Server.Mode == gin.ReleaseMode && u.Scheme != "https" {
		return fmt.Errorf("invalid data.remote.base_url %q for server.mode %q: must use https", c.Data.Remote.BaseURL, gin.ReleaseMode)
	}
	c.Data.Remote.BaseURL = strings.TrimRight(base, "/")
	return nil
}

var (
	sslModes       = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
	secureSSLModes = []string{"require", "verify-ca", "verify-full"}
)

func (c *Config) validateDatabase() error {
	db := &c.Database
	var err error
	if db.Driver, err = oneOf("database.driver", db.Driver, false, "sqlite", "postgres"); err != nil {
		return err
	}

	if db.Driver == "sqlite" {
		if db.SQLite.Path = strings.TrimSpace(db.SQLite.Path); db.SQLite.Path == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		return nil
	}

	pg := &db.Postgres
	required := []struct {
		key   string
		value *string
	}{
		{"database.postgres.host", &pg.Host},
		{"database.postgres.user", &pg.User},
		{"database.postgres.dbname", &pg.DBName},
	}
	for _, f := range required {
		if *f.value = strings.TrimSpace(*f.value); *f.value == "" {
			return fmt.Errorf("%s is required when driver is postgres", f.key)
		}
	}
	if !validPort(pg.Port) {
		return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", pg.Port)
	}

	modes := sslModes
	key := "database.postgres.sslmode"
	if c.Server.Mode == gin.ReleaseMode {
		modes = secureSSLModes
		key += " for release mode"
	}
	pg.SSLMode, err = oneOf(key, pg.SSLMode, false, modes...)
	return err
}

// oneOf trims value, optionally lowercases it, and checks it against allowed.
func oneOf(key, value string, fold bool, allowed ...string) (string, error) {
	v := strings.TrimSpace(value)
	if fold {
		v = strings.ToLower(v)
	}
	if slices.Contains(allowed, v) {
		return v, nil
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = strconv.Quote(a)
	}
	return "", fmt.Errorf("invalid %s %q: must be one of %s", key, value, strings.Join(quoted, ", "))
}

func validPort(p int) bool { return p >= 1 && p <= 65535 }

// ServerTimeout returns server.timeout, or 0 when unset.
func (c *Config) ServerTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.Timeout)
	return d
}

// RemoteTimeout returns data.remote.timeout, or 0 when unset.
func (c *Config) RemoteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Data.Remote.Timeout)
	return d
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	var lower, upper, digit, symbol bool
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			classes++
		}
	}
	return classes
}
