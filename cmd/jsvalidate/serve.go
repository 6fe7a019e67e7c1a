package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/jsvalidation/pkg/cache"
	"github.com/dmitrymomot/jsvalidation/pkg/clientip"
	"github.com/dmitrymomot/jsvalidation/pkg/config"
	"github.com/dmitrymomot/jsvalidation/pkg/httpserver"
	"github.com/dmitrymomot/jsvalidation/pkg/i18n"
	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/logger"
	"github.com/dmitrymomot/jsvalidation/pkg/mongo"
	"github.com/dmitrymomot/jsvalidation/pkg/pg"
	"github.com/dmitrymomot/jsvalidation/pkg/ratelimiter"
	"github.com/dmitrymomot/jsvalidation/pkg/redis"
	"github.com/dmitrymomot/jsvalidation/pkg/requestid"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

var (
	errUnknownStore     = errors.New("unknown presence store")
	errUnknownLogFormat = errors.New("unknown log format")
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled rules and remote validation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, cfg, err := flags.registry()
			if err != nil {
				return err
			}
			switch logger.Format(cfg.LogFormat) {
			case logger.FormatJSON, logger.FormatText:
			default:
				return fmt.Errorf("%w: %q", errUnknownLogFormat, cfg.LogFormat)
			}
			log := logger.New(
				logger.WithLevelName(cfg.LogLevel),
				logger.WithFormat(logger.Format(cfg.LogFormat)),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
			)
			logger.SetAsDefault(log)
			return serve(cmd.Context(), cfg, reg, log)
		},
	}
}

func serve(ctx context.Context, cfg appConfig, forms formSource, log *slog.Logger) error {
	translator, err := loadTranslator(ctx, cfg.LangDir, log)
	if err != nil {
		return err
	}

	store, err := openPresenceStore(ctx, cfg.Presence)
	if err != nil {
		return err
	}
	defer store.close()

	throttle, closeThrottle, err := openRateLimiter(ctx, cfg.RateLimitStore, cfg.RateLimit)
	if err != nil {
		return err
	}
	defer closeThrottle()

	jsCfg, err := jsvalidation.LoadConfig()
	if err != nil {
		return err
	}

	hostOpts := []validator.Option{
		validator.WithTranslator(translator),
		validator.WithLogger(log),
	}
	if store.verifier != nil {
		hostOpts = append(hostOpts, validator.WithPresenceVerifier(store.verifier))
	}

	var views *cache.LRU[string, jsvalidation.ViewData]
	if cfg.ViewCacheSize > 0 {
		views = cache.NewLRU[string, jsvalidation.ViewData](cfg.ViewCacheSize)
	}

	router := newRouter(routerDeps{
		forms:      forms,
		config:     jsCfg,
		translator: translator,
		hostOpts:   hostOpts,
		checks:     store.checks,
		throttle:   throttle,
		views:      views,
		ipHeaders:  cfg.IPHeaders,
		log:        log,
	})

	log.InfoContext(ctx, "starting server",
		slog.String("addr", cfg.HTTP.Addr),
		slog.String("presence_store", cfg.Presence),
		slog.String("rate_limit_store", cfg.RateLimitStore),
		slog.Any("languages", translator.SupportedLanguages()),
	)
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, router)
}

// loadTranslator returns the built-in catalogue, extended with the language
// files found in dir when it is set.
func loadTranslator(ctx context.Context, dir string, log *slog.Logger) (*i18n.Translator, error) {
	base := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), validator.DefaultMessages(), "lang")
	t, err := i18n.NewTranslator(ctx, base, i18n.WithLogger(log), i18n.WithMissingTranslationsLogging(true))
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return t, nil
	}

	extra, err := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), os.DirFS(dir), ".").Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load languages from %s: %w", dir, err)
	}
	t.Merge(extra)
	return t, nil
}

type presenceStore struct {
	verifier validator.PresenceVerifier
	checks   []func(context.Context) error
	close    func()
}

func openPresenceStore(ctx context.Context, kind string) (presenceStore, error) {
	store := presenceStore{close: func() {}}

	switch kind {
	case "", storeNone:
		return store, nil

	case storePostgres:
		var cfg pg.Config
		if err := config.Parse(&cfg); err != nil {
			return store, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return store, err
		}
		store.verifier = pg.NewPresenceVerifier(pool, pg.WithTables(cfg.Tables...))
		store.checks = append(store.checks, pg.Healthcheck(pool))
		store.close = pool.Close
		return store, nil

	case storeRedis:
		var cfg redis.Config
		if err := config.Parse(&cfg); err != nil {
			return store, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return store, err
		}
		store.verifier = redis.NewPresenceVerifier(client, redis.WithKeyPrefix(cfg.KeyPrefix))
		store.checks = append(store.checks, redis.Healthcheck(client))
		store.close = func() { _ = client.Close() }
		return store, nil

	case storeMongo:
		var cfg mongo.Config
		if err := config.Parse(&cfg); err != nil {
			return store, err
		}
		client, err := mongo.Connect(ctx, cfg)
		if err != nil {
			return store, err
		}
		store.verifier = mongo.NewPresenceVerifier(mongo.DatabaseCounter{DB: client.Database(cfg.Database)})
		store.checks = append(store.checks, mongo.Healthcheck(client))
		store.close = func() { _ = client.Disconnect(context.Background()) }
		return store, nil
	}

	return store, fmt.Errorf("%w: %q", errUnknownStore, kind)
}

// openRateLimiter returns a nil bucket when throttling is off.
func openRateLimiter(ctx context.Context, kind string, cfg ratelimiter.Config) (*ratelimiter.Bucket, func(), error) {
	switch kind {
	case storeNone:
		return nil, func() {}, nil

	case "", storeMemory:
		store := ratelimiter.NewMemoryStore()
		bucket, err := ratelimiter.NewBucket(store, cfg)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return bucket, store.Close, nil

	case storeRedis:
		var rcfg redis.Config
		if err := config.Parse(&rcfg); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() { _ = client.Close() }
		bucket, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
		if err != nil {
			closeClient()
			return nil, nil, err
		}
		return bucket, closeClient, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", errUnknownStore, kind)
}
