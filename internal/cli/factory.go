package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/tetrator"
	"github.com/aretw0/tetrator/internal/config"
	"github.com/aretw0/tetrator/pkg/adapters/memory"
	"github.com/aretw0/tetrator/pkg/adapters/redis"
	"github.com/aretw0/tetrator/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	Debug      bool
	RedisURL   string
	NoCache    bool
}

// Runtime holds everything a command needs to evaluate towers.
type Runtime struct {
	Config   config.Config
	Logger   *slog.Logger
	Service  *tetrator.Service
	Registry *prometheus.Registry

	closers []func() error
}

// NewRuntime loads configuration and wires the service with its cache and metrics.
// Flags override the file and environment.
func NewRuntime(opts GlobalOptions) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.RedisURL != "" {
		cfg.Cache.Backend = config.CacheRedis
		cfg.Cache.RedisURL = opts.RedisURL
	}
	if opts.NoCache {
		cfg.Cache.Backend = config.CacheNone
	}

	logger, err := createLogger(cfg.LogLevel, opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	rt.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svcOpts := []tetrator.Option{
		tetrator.WithLogger(logger),
		tetrator.WithMetrics(observability.NewMetrics(rt.Registry)),
		tetrator.WithMaxResultBits(cfg.MaxResultBits),
	}

	cacheOpt, err := rt.createCache()
	if err != nil {
		return nil, err
	}
	if cacheOpt != nil {
		svcOpts = append(svcOpts, cacheOpt)
	}

	rt.Service = tetrator.New(svcOpts...)
	return rt, nil
}

func (rt *Runtime) createCache() (tetrator.Option, error) {
	switch rt.Config.Cache.Backend {
	case config.CacheNone:
		rt.Logger.Debug("Result cache disabled")
		return nil, nil
	case config.CacheRedis:
		cache, err := redis.New(rt.Config.Cache.RedisURL,
			redis.WithTTL(rt.Config.Cache.TTL),
			redis.WithPrefix(rt.Config.Cache.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("error initializing redis cache: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, fmt.Errorf("redis cache unreachable: %w", err)
		}
		rt.closers = append(rt.closers, cache.Close)
		rt.Logger.Debug("Using redis result cache", "prefix", rt.Config.Cache.Prefix)
		return tetrator.WithCache(cache), nil
	default:
		rt.Logger.Debug("Using memory result cache", "size", rt.Config.Cache.Size)
		return tetrator.WithCache(memory.NewCache(rt.Config.Cache.Size)), nil
	}
}

// Close releases backend connections.
func (rt *Runtime) Close() error {
	var errs []error
	for _, c := range rt.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
