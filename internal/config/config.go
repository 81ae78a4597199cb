// Package config defines the top-level configuration for the sports market
// reconciler and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by SPORTSETTLE_* environment variables.
type Config struct {
	Ledger    LedgerConfig    `toml:"ledger"`
	Providers ProvidersConfig `toml:"providers"`
	Cache     CacheConfig     `toml:"cache"`
	Postgres  PostgresConfig  `toml:"postgres"`
	Archive   ArchiveConfig   `toml:"archive"`
	Server    ServerConfig    `toml:"server"`
	Reconcile ReconcileConfig `toml:"reconcile"`
	Notify    NotifyConfig    `toml:"notify"`
	Mode      string          `toml:"mode"`
	LogLevel  string          `toml:"log_level"`
}

// LedgerConfig holds the prediction-market ledger API endpoint.
type LedgerConfig struct {
	BaseURL string `toml:"base_url"`
}

// ProvidersConfig holds score provider endpoints and credentials. An empty
// OddsAPIKey disables the primary provider; lookups then go straight to the
// fallback.
type ProvidersConfig struct {
	OddsAPIKey  string `toml:"odds_api_key"`
	OddsBaseURL string `toml:"odds_base_url"`
	ESPNBaseURL string `toml:"espn_base_url"`
}

// CacheConfig selects the score cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string      `toml:"backend"`
	Redis   RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// PostgresConfig holds run-history store parameters.
type PostgresConfig struct {
	Enabled       bool   `toml:"enabled"`
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// ArchiveConfig holds run-report archival parameters.
type ArchiveConfig struct {
	Enabled bool     `toml:"enabled"`
	Prefix  string   `toml:"prefix"`
	S3      S3Config `toml:"s3"`
}

// S3Config holds S3-compatible object storage parameters.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Port       int    `toml:"port"`
	CronSecret string `toml:"cron_secret"`
}

// ReconcileConfig holds reconcile loop parameters.
type ReconcileConfig struct {
	// LoopInterval is the pause between runs in loop mode.
	LoopInterval duration `toml:"loop_interval"`
}

// NotifyConfig holds notification channel credentials and the event
// allow-list.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration wraps time.Duration so TOML values like "5m" parse naturally.
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config with sensible defaults for local development.
func Defaults() Config {
	return Config{
		Ledger: LedgerConfig{
			BaseURL: "http://localhost:8080",
		},
		Providers: ProvidersConfig{
			OddsBaseURL: "https://api.the-odds-api.com",
			ESPNBaseURL: "https://site.api.espn.com",
		},
		Cache: CacheConfig{
			Backend: "memory",
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				PoolSize: 10,
			},
		},
		Postgres: PostgresConfig{
			Enabled:       false,
			Port:          5432,
			SSLMode:       "disable",
			PoolMaxConns:  4,
			PoolMinConns:  0,
			RunMigrations: true,
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Prefix:  "reconcile-reports",
			S3: S3Config{
				Region: "us-east-1",
				UseSSL: true,
			},
		},
		Server: ServerConfig{
			Port: 8000,
		},
		Reconcile: ReconcileConfig{
			LoopInterval: duration{5 * time.Minute},
		},
		Notify: NotifyConfig{
			Events: []string{"run_failed", "markets_failed"},
		},
		Mode:     "serve",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"serve": true,
	"once":  true,
	"loop":  true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validCacheBackends enumerates the accepted values for Cache.Backend.
var validCacheBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: serve, once, loop)", c.Mode))
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if strings.TrimSpace(c.Ledger.BaseURL) == "" {
		errs = append(errs, "ledger: base_url must not be empty")
	}

	if c.Providers.ESPNBaseURL == "" {
		errs = append(errs, "providers: espn_base_url must not be empty")
	}
	if c.Providers.OddsAPIKey != "" && c.Providers.OddsBaseURL == "" {
		errs = append(errs, "providers: odds_base_url must not be empty when odds_api_key is set")
	}

	if !validCacheBackends[strings.ToLower(c.Cache.Backend)] {
		errs = append(errs, fmt.Sprintf("cache: unknown backend %q (valid: memory, redis)", c.Cache.Backend))
	}
	if strings.ToLower(c.Cache.Backend) == "redis" {
		if c.Cache.Redis.Addr == "" {
			errs = append(errs, "cache.redis: addr must not be empty")
		}
		if c.Cache.Redis.PoolSize < 1 {
			errs = append(errs, "cache.redis: pool_size must be >= 1")
		}
	}

	if c.Postgres.Enabled {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	if c.Archive.Enabled {
		if c.Archive.S3.Bucket == "" {
			errs = append(errs, "archive.s3: bucket must not be empty")
		}
		if c.Archive.S3.Region == "" {
			errs = append(errs, "archive.s3: region must not be empty")
		}
	}

	if strings.ToLower(c.Mode) == "serve" {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if strings.ToLower(c.Mode) == "loop" && c.Reconcile.LoopInterval.Duration <= 0 {
		errs = append(errs, "reconcile: loop_interval must be positive in loop mode")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
