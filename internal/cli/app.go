package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	unsplash "github.com/jassus213/go-unsplash"
	zapadapter "github.com/jassus213/go-unsplash/adapters/zap"
	"github.com/jassus213/go-unsplash/config"
	"github.com/jassus213/go-unsplash/metrics"
	"github.com/jassus213/go-unsplash/ratelimiter"
	"github.com/jassus213/go-unsplash/store"
)

// app holds the components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *unsplash.Client
	gate     *ratelimiter.Gate
	registry *prometheus.Registry
	closers  []func() error
}

func newLogger(cfg config.Logging) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level
	return zcfg.Build()
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: log, registry: prometheus.NewRegistry()}

	client, err := unsplash.NewClient(cfg.Unsplash.AccessKey,
		unsplash.WithBaseURL(cfg.Unsplash.BaseURI),
		unsplash.WithTimeout(cfg.Unsplash.Timeout),
		unsplash.WithLogger(zapadapter.New(log).Named("client")),
	)
	if err != nil {
		return nil, err
	}
	a.client = client

	s, err := a.newStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	opts := append(cfg.RateLimiting.GateOptions(),
		ratelimiter.WithLogger(zapadapter.New(log).Named("gate")),
		ratelimiter.WithRecorder(metrics.New(a.registry)),
	)
	a.gate = ratelimiter.NewGate(s, client, opts...)
	return a, nil
}

// newStore connects to Redis when redis.url is set and falls back to memory otherwise.
func (a *app) newStore(ctx context.Context) (ratelimiter.Store, error) {
	if a.cfg.Redis.URL == "" {
		a.logger.Info("Using in-memory rate limit store")
		return store.NewMemory(ctx, time.Minute), nil
	}

	opts, err := redis.ParseURL(a.cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis.url: %w", err)
	}
	client := redis.NewClient(opts)
	a.closers = append(a.closers, client.Close)

	s := store.NewRedis(client, a.cfg.Redis.Prefix)
	if err := s.Ping(ctx); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.logger.Info("Using Redis rate limit store", zap.String("addr", opts.Addr))
	return s, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close", zap.Error(err))
		}
	}
	// Sync errors on stdout/stderr are benign.
	_ = a.logger.Sync()
}
