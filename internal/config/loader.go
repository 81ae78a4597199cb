package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies SPORTSETTLE_* environment variable overrides,
// and returns the final Config. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known SPORTSETTLE_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This lets
// operators inject secrets at deploy time without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Ledger.BaseURL, "SPORTSETTLE_LEDGER_BASE_URL")

	setStr(&cfg.Providers.OddsAPIKey, "SPORTSETTLE_ODDS_API_KEY")
	setStr(&cfg.Providers.OddsBaseURL, "SPORTSETTLE_ODDS_BASE_URL")
	setStr(&cfg.Providers.ESPNBaseURL, "SPORTSETTLE_ESPN_BASE_URL")

	setStr(&cfg.Cache.Backend, "SPORTSETTLE_CACHE_BACKEND")
	setStr(&cfg.Cache.Redis.Addr, "SPORTSETTLE_REDIS_ADDR")
	setStr(&cfg.Cache.Redis.Password, "SPORTSETTLE_REDIS_PASSWORD")
	setInt(&cfg.Cache.Redis.DB, "SPORTSETTLE_REDIS_DB")
	setInt(&cfg.Cache.Redis.PoolSize, "SPORTSETTLE_REDIS_POOL_SIZE")
	setBool(&cfg.Cache.Redis.TLSEnabled, "SPORTSETTLE_REDIS_TLS_ENABLED")

	setBool(&cfg.Postgres.Enabled, "SPORTSETTLE_POSTGRES_ENABLED")
	setStr(&cfg.Postgres.DSN, "SPORTSETTLE_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "SPORTSETTLE_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "SPORTSETTLE_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "SPORTSETTLE_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "SPORTSETTLE_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "SPORTSETTLE_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "SPORTSETTLE_POSTGRES_SSLMODE")
	setBool(&cfg.Postgres.RunMigrations, "SPORTSETTLE_POSTGRES_RUN_MIGRATIONS")

	setBool(&cfg.Archive.Enabled, "SPORTSETTLE_ARCHIVE_ENABLED")
	setStr(&cfg.Archive.Prefix, "SPORTSETTLE_ARCHIVE_PREFIX")
	setStr(&cfg.Archive.S3.Endpoint, "SPORTSETTLE_S3_ENDPOINT")
	setStr(&cfg.Archive.S3.Region, "SPORTSETTLE_S3_REGION")
	setStr(&cfg.Archive.S3.Bucket, "SPORTSETTLE_S3_BUCKET")
	setStr(&cfg.Archive.S3.AccessKey, "SPORTSETTLE_S3_ACCESS_KEY")
	setStr(&cfg.Archive.S3.SecretKey, "SPORTSETTLE_S3_SECRET_KEY")
	setBool(&cfg.Archive.S3.UseSSL, "SPORTSETTLE_S3_USE_SSL")
	setBool(&cfg.Archive.S3.ForcePathStyle, "SPORTSETTLE_S3_FORCE_PATH_STYLE")

	setInt(&cfg.Server.Port, "SPORTSETTLE_SERVER_PORT")
	setStr(&cfg.Server.CronSecret, "SPORTSETTLE_CRON_SECRET")

	setDuration(&cfg.Reconcile.LoopInterval, "SPORTSETTLE_LOOP_INTERVAL")

	setStr(&cfg.Notify.TelegramToken, "SPORTSETTLE_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "SPORTSETTLE_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "SPORTSETTLE_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "SPORTSETTLE_NOTIFY_EVENTS")

	setStr(&cfg.Mode, "SPORTSETTLE_MODE")
	setStr(&cfg.LogLevel, "SPORTSETTLE_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
