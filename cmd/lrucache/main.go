package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/lrucache/app/lrucache"
	"github.com/dmitrymomot/lrucache/core/config"
	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/metrics"
	"github.com/dmitrymomot/lrucache/core/store"
	"github.com/dmitrymomot/lrucache/pkg/broadcast"
)

// changeBuffer is the per-subscriber queue of store changes. Live dashboards
// only need to know that something changed, so dropped messages are harmless.
const changeBuffer = 16

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg lrucache.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.ForEnv(cfg.Env, cfg.AppName),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetAsDefault(log)

	m := metrics.New(cfg.MetricsNamespace)

	changes := broadcast.NewMemoryBroadcaster[store.Change](changeBuffer)
	defer changes.Close()

	st, err := store.NewFromConfig(cfg.Store,
		store.WithLogger(log),
		store.WithMetrics(m),
		store.WithBroadcaster(changes),
	)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}

	app, err := lrucache.New(cfg, st,
		lrucache.WithLogger(log),
		lrucache.WithMetrics(m),
		lrucache.WithChanges(changes),
	)
	if err != nil {
		_ = st.Close()
		return fmt.Errorf("create app: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("Application stopped with error", logger.Component("app"), logger.Error(err))
		return err
	}
	return nil
}
