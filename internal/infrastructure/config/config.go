package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	API       APIConfig
	Identity  IdentityConfig
	Postal    PostalConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Lists     ListsConfig
	Forms     FormsConfig
	Metrics   MetricsConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// APIConfig points at the upstream ConstructPro REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// IdentityConfig holds identity-provider settings
type IdentityConfig struct {
	APIKey      string
	SignInURL   string // where the BFF redirects on an expired session
	TokenLeeway time.Duration
	// TokenSecret, when set, makes the BFF verify HS256 signatures itself.
	// Otherwise claims are read as-is and the upstream API verifies.
	TokenSecret string
}

// PostalConfig holds the postal-code lookup service settings
type PostalConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CacheConfig holds query cache settings
type CacheConfig struct {
	Driver string // memory, redis
	TTL    time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds the local preference store settings
type StorageConfig struct {
	Path string // SQLite file, ":memory:" for an ephemeral store
}

// ListsConfig holds list page sizes and pagination behaviour
type ListsConfig struct {
	CustomersPageSize int
	ProjectsPageSize  int
	UnitsPageSize     int
	SalesPageSize     int
	SearchDebounce    time.Duration
	MaxVisiblePages   int
}

// FormsConfig holds form defaults
type FormsConfig struct {
	// UnitFeatureSuggestions overrides the built-in unit feature list,
	// comma separated
	UnitFeatureSuggestions string
}

// MetricsConfig holds the Prometheus endpoint settings
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// TelemetryConfig holds OpenTelemetry tracing settings. Spans are recorded
// whenever tracing is enabled so logs carry trace IDs; they are exported
// only when a collector endpoint is set.
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string // OTLP gRPC host:port
	SamplingRatio     float64
	Insecure          bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with CP_ prefix (e.g., CP_API_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.sampling_ratio", 1.0)

	v.SetEnvPrefix("CP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Identity: IdentityConfig{
			APIKey:      v.GetString("identity.api_key"),
			SignInURL:   v.GetString("identity.sign_in_url"),
			TokenLeeway: v.GetDuration("identity.token_leeway"),
			TokenSecret: v.GetString("identity.token_secret"),
		},
		Postal: PostalConfig{
			BaseURL: v.GetString("postal.base_url"),
			Timeout: v.GetDuration("postal.timeout"),
		},
		Cache: CacheConfig{
			Driver: v.GetString("cache.driver"),
			TTL:    v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Path: v.GetString("storage.path"),
		},
		Lists: ListsConfig{
			CustomersPageSize: v.GetInt("lists.customers_page_size"),
			ProjectsPageSize:  v.GetInt("lists.projects_page_size"),
			UnitsPageSize:     v.GetInt("lists.units_page_size"),
			SalesPageSize:     v.GetInt("lists.sales_page_size"),
			SearchDebounce:    v.GetDuration("lists.search_debounce"),
			MaxVisiblePages:   v.GetInt("lists.max_visible_pages"),
		},
		Forms: FormsConfig{
			UnitFeatureSuggestions: v.GetString("forms.unit_feature_suggestions"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Path:    v.GetString("metrics.path"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "constructpro-dashboard"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	// Empty CORS origins means no cross-origin requests until configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID"}
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8000"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Identity.SignInURL == "" {
		cfg.Identity.SignInURL = "/login"
	}
	if cfg.Identity.TokenLeeway == 0 {
		cfg.Identity.TokenLeeway = 30 * time.Second
	}
	if cfg.Postal.BaseURL == "" {
		cfg.Postal.BaseURL = "https://brasilapi.com.br"
	}
	if cfg.Postal.Timeout == 0 {
		cfg.Postal.Timeout = 10 * time.Second
	}
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 30 * time.Second
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "preferences.db"
	}
	if cfg.Lists.CustomersPageSize == 0 {
		cfg.Lists.CustomersPageSize = 20
	}
	if cfg.Lists.ProjectsPageSize == 0 {
		cfg.Lists.ProjectsPageSize = 20
	}
	if cfg.Lists.UnitsPageSize == 0 {
		cfg.Lists.UnitsPageSize = 20
	}
	if cfg.Lists.SalesPageSize == 0 {
		cfg.Lists.SalesPageSize = 20
	}
	if cfg.Lists.SearchDebounce == 0 {
		cfg.Lists.SearchDebounce = 300 * time.Millisecond
	}
	if cfg.Lists.MaxVisiblePages == 0 {
		cfg.Lists.MaxVisiblePages = 5
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if _, err := url.ParseRequestURI(c.Postal.BaseURL); err != nil {
		return fmt.Errorf("postal.base_url is not a valid URL: %w", err)
	}
	switch c.Cache.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.driver must be 'memory' or 'redis', got %q", c.Cache.Driver)
	}
	for name, size := range map[string]int{
		"customers": c.Lists.CustomersPageSize,
		"projects":  c.Lists.ProjectsPageSize,
		"units":     c.Lists.UnitsPageSize,
		"sales":     c.Lists.SalesPageSize,
	} {
		if size < 1 || size > 100 {
			return fmt.Errorf("lists.%s_page_size must be between 1 and 100, got %d", name, size)
		}
	}
	if c.Lists.MaxVisiblePages < 1 {
		return fmt.Errorf("lists.max_visible_pages must be positive")
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1, got %v", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if !strings.HasPrefix(c.API.BaseURL, "https://") {
			return fmt.Errorf("api.base_url must use https in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// PageSize returns the configured page size of a list resource
func (l ListsConfig) PageSize(resource string) int {
	switch resource {
	case "customers":
		return l.CustomersPageSize
	case "projects":
		return l.ProjectsPageSize
	case "units":
		return l.UnitsPageSize
	case "sales":
		return l.SalesPageSize
	}
	return 20
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
