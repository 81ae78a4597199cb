package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	s3blob "github.com/jmcalloway/sportsettle/internal/blob/s3"
	"github.com/jmcalloway/sportsettle/internal/cache/memory"
	"github.com/jmcalloway/sportsettle/internal/cache/redis"
	"github.com/jmcalloway/sportsettle/internal/config"
	"github.com/jmcalloway/sportsettle/internal/domain"
	"github.com/jmcalloway/sportsettle/internal/metrics"
	"github.com/jmcalloway/sportsettle/internal/notify"
	"github.com/jmcalloway/sportsettle/internal/platform/espn"
	"github.com/jmcalloway/sportsettle/internal/platform/ledger"
	"github.com/jmcalloway/sportsettle/internal/platform/oddsapi"
	"github.com/jmcalloway/sportsettle/internal/provider"
	"github.com/jmcalloway/sportsettle/internal/reconciler"
	"github.com/jmcalloway/sportsettle/internal/schedule"
	"github.com/jmcalloway/sportsettle/internal/service"
	"github.com/jmcalloway/sportsettle/internal/store/postgres"
)

// Dependencies bundles everything the application modes need to operate. It is
// constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	Service *service.ReconcileService
	Metrics *metrics.Metrics
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Score cache ---
	var cache domain.ScoreCache
	switch strings.ToLower(cfg.Cache.Backend) {
	case "redis":
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Cache.Redis.Addr,
			Password:   cfg.Cache.Redis.Password,
			DB:         cfg.Cache.Redis.DB,
			PoolSize:   cfg.Cache.Redis.PoolSize,
			MaxRetries: cfg.Cache.Redis.MaxRetries,
			TLSEnabled: cfg.Cache.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		cache = redis.NewScoreCache(redisClient)
	default:
		cache = memory.NewScoreCache()
	}

	// --- Providers ---
	var primary provider.PrimaryProvider
	if cfg.Providers.OddsAPIKey != "" {
		primary = oddsapi.NewClient(cfg.Providers.OddsBaseURL, cfg.Providers.OddsAPIKey, logger)
	} else {
		logger.InfoContext(ctx, "no odds api key configured, primary provider disabled")
	}
	fallback := espn.NewClient(cfg.Providers.ESPNBaseURL, logger)
	chain := provider.NewChain(primary, fallback, logger)

	// --- Ledger gateway and job ---
	gateway := ledger.NewClient(cfg.Ledger.BaseURL)
	job := reconciler.NewJob(gateway, chain, cache, schedule.New(), logger)

	// --- Run history (optional) ---
	var runs domain.RunStore
	if cfg.Postgres.Enabled {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}
		runs = postgres.NewRunStore(pgClient.Pool())
	}

	// --- Report archival (optional) ---
	var archiver *reconciler.ReportArchiver
	if cfg.Archive.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.Archive.S3.Endpoint,
			Region:         cfg.Archive.S3.Region,
			Bucket:         cfg.Archive.S3.Bucket,
			AccessKey:      cfg.Archive.S3.AccessKey,
			SecretKey:      cfg.Archive.S3.SecretKey,
			UseSSL:         cfg.Archive.S3.UseSSL,
			ForcePathStyle: cfg.Archive.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		archiver = reconciler.NewReportArchiver(s3blob.NewWriter(s3Client), cfg.Archive.Prefix)
	}

	// --- Notifications ---
	var notifier *notify.Notifier
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	if len(senders) > 0 {
		notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
	}

	m := metrics.New()

	return &Dependencies{
		Service: service.NewReconcileService(job, runs, archiver, notifier, m, logger),
		Metrics: m,
	}, cleanup, nil
}
