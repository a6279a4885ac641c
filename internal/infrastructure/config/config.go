package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Shopify ShopifyConfig
	Sync    SyncConfig
	Storage StorageConfig
	Redis   RedisConfig
	HTTP    HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// ShopifyConfig holds Shopify Admin API settings
type ShopifyConfig struct {
	ShopDomain     string
	AccessToken    string
	APIVersion     string
	WebhookSecret  string
	PageSize       int
	TimeoutSeconds int
}

// SyncConfig holds catalog sync settings
type SyncConfig struct {
	Currency          string
	StorefrontBaseURL string
	DebounceWindow    time.Duration
	SyncTimeout       time.Duration
	WebhookEnabled    bool
}

// StorageConfig holds artifact sink settings
type StorageConfig struct {
	// Backend selects where feed artifacts are written: "local" or "s3"
	Backend     string
	LocalDir    string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3KeyPrefix string
	S3UseSSL    bool
	S3PathStyle bool
}

// RedisConfig holds Redis connection settings for the snapshot cache
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STORELINK_ prefix (e.g., STORELINK_SHOPIFY_ACCESS_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("STORELINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans whose zero value is not the desired default. Webhook-driven
	// resync is on unless the operator turns it off.
	v.SetDefault("sync.webhook_enabled", true)

	// Build config struct
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
		Shopify: ShopifyConfig{
			ShopDomain:     v.GetString("shopify.shop_domain"),
			AccessToken:    v.GetString("shopify.access_token"),
			APIVersion:     v.GetString("shopify.api_version"),
			WebhookSecret:  v.GetString("shopify.webhook_secret"),
			PageSize:       v.GetInt("shopify.page_size"),
			TimeoutSeconds: v.GetInt("shopify.timeout_seconds"),
		},
		Sync: SyncConfig{
			Currency:          v.GetString("sync.currency"),
			StorefrontBaseURL: v.GetString("sync.storefront_base_url"),
			DebounceWindow:    v.GetDuration("sync.debounce_window"),
			SyncTimeout:       v.GetDuration("sync.sync_timeout"),
			WebhookEnabled:    v.GetBool("sync.webhook_enabled"),
		},
		Storage: StorageConfig{
			Backend:     v.GetString("storage.backend"),
			LocalDir:    v.GetString("storage.local_dir"),
			S3Endpoint:  v.GetString("storage.s3_endpoint"),
			S3Region:    v.GetString("storage.s3_region"),
			S3Bucket:    v.GetString("storage.s3_bucket"),
			S3AccessKey: v.GetString("storage.s3_access_key"),
			S3SecretKey: v.GetString("storage.s3_secret_key"),
			S3KeyPrefix: v.GetString("storage.s3_key_prefix"),
			S3UseSSL:    v.GetBool("storage.s3_use_ssl"),
			S3PathStyle: v.GetBool("storage.s3_path_style"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storelink-backend"
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
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = "2024-07"
	}
	if cfg.Shopify.PageSize == 0 {
		cfg.Shopify.PageSize = 250
	}
	if cfg.Shopify.TimeoutSeconds == 0 {
		cfg.Shopify.TimeoutSeconds = 30
	}
	if cfg.Sync.Currency == "" {
		cfg.Sync.Currency = "EUR"
	}
	if cfg.Sync.StorefrontBaseURL == "" && cfg.Shopify.ShopDomain != "" {
		domain := cfg.Shopify.ShopDomain
		if !strings.Contains(domain, ".") {
			domain += ".myshopify.com"
		}
		cfg.Sync.StorefrontBaseURL = "https://" + domain
	}
	if cfg.Sync.DebounceWindow == 0 {
		cfg.Sync.DebounceWindow = 5 * time.Minute
	}
	if cfg.Sync.SyncTimeout == 0 {
		cfg.Sync.SyncTimeout = 10 * time.Minute
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./feeds"
	}
	if cfg.Storage.S3Region == "" {
		cfg.Storage.S3Region = "us-east-1"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
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
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB, webhook payloads are small
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("storage.backend must be 'local' or 's3', got %q", c.Storage.Backend)
	}

	if c.Storage.Backend == "s3" {
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("storage.s3_bucket is required when storage.backend is 's3'")
		}
		if c.Storage.S3AccessKey == "" || c.Storage.S3SecretKey == "" {
			return fmt.Errorf("storage.s3_access_key and storage.s3_secret_key are required when storage.backend is 's3'")
		}
	}

	if c.Shopify.PageSize < 1 || c.Shopify.PageSize > 250 {
		return fmt.Errorf("shopify.page_size must be between 1 and 250, got %d", c.Shopify.PageSize)
	}

	if c.Sync.DebounceWindow < 0 {
		return fmt.Errorf("sync.debounce_window cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Shopify.WebhookSecret == "" && c.Sync.WebhookEnabled {
			return fmt.Errorf("shopify.webhook_secret is required in production when webhooks are enabled")
		}
	}

	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
