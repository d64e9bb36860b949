package commands

import (
	"fmt"

	"github.com/mkale/spyglass/internal/external/wikipedia"
	"github.com/mkale/spyglass/internal/external/yahoo"
	"github.com/mkale/spyglass/internal/pipeline"
	"github.com/mkale/spyglass/internal/universe"
	"github.com/mkale/spyglass/pkg/cache"
	"github.com/mkale/spyglass/pkg/config"
	"github.com/mkale/spyglass/pkg/httputil"
	"github.com/mkale/spyglass/pkg/logger"
)

const scannerUserAgent = "spyglass/1.0 (+https://github.com/mkale/spyglass)"

// app holds the wired dependency graph shared by the CLI commands.
type app struct {
	config   *config.Config
	logger   *logger.Logger
	cache    *cache.Cache
	lister   *universe.Lister
	pipeline *pipeline.Pipeline

	closers []func() error
}

// buildApp wires configuration through to the pipeline. Commands that
// need extra pieces (server, scheduler) build those on top.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	if verbose {
		log = logger.New(&config.Config{LogLevel: "debug", LogFormat: cfg.LogFormat})
	}

	a := &app{config: cfg, logger: log}

	// Cache backend: Redis when configured, in-process memory otherwise.
	if cfg.Redis.Enabled {
		store, err := cache.NewRedisStore(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		a.cache = cache.New(store)
		log.Info("Using Redis cache backend")
	} else {
		a.cache = cache.New(cache.NewMemoryStore())
		log.Info("Using in-memory cache backend")
	}

	httpClient := httputil.NewWithTimeout(log, cfg.Yahoo.Timeout).WithUserAgent(scannerUserAgent)

	wikiClient := wikipedia.NewClient(cfg, httpClient, log)
	yahooClient := yahoo.NewClient(httpClient, cfg.Yahoo, log)

	a.lister = universe.NewLister(wikiClient, a.cache, cfg.Cache.ConstituentsTTL, log)
	a.pipeline = pipeline.New(a.lister, yahooClient, a.cache, cfg.Cache.FactsTTL, log)

	return a, nil
}

func (a *app) close() {
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			a.logger.WithError(err).Warn("Cleanup failed")
		}
	}
}
