package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"coinextractor/internal/coingecko"
	"coinextractor/internal/config"
	"coinextractor/internal/logging"
	"coinextractor/internal/metrics"
	"coinextractor/internal/session"
)

// runtime bundles everything a command needs for one run
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	session *session.Session
	metrics *metrics.Registry
	client  *coingecko.Client
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	base, err := logging.New(level, cfg.LogDevelopment || debug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	sess := session.New(cfg.AppName)
	log := base.With(sess.Fields()...)
	reg := metrics.NewRegistry()

	client := coingecko.NewClient(sess, cfg.CoinGeckoAPIKey, cfg.CoinGeckoBaseURL,
		coingecko.WithLogger(log),
		coingecko.WithMetrics(reg),
	)

	return &runtime{
		cfg:     cfg,
		log:     log,
		session: sess,
		metrics: reg,
		client:  client,
	}, nil
}

// runContext derives the run context: cancelled on SIGINT/SIGTERM and bounded
// by run_timeout when one is configured
func (r *runtime) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if r.cfg.RunTimeout <= 0 {
		return ctx, stop
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.RunTimeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// pushMetrics sends the run's metrics to the Pushgateway, if one is configured
func (r *runtime) pushMetrics() {
	if r.cfg.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.metrics.Push(ctx, r.cfg.PushgatewayURL, r.cfg.AppName); err != nil {
		r.log.Warn("metrics push failed", zap.Error(err))
		return
	}
	r.log.Debug("metrics pushed", zap.String("url", r.cfg.PushgatewayURL))
}
