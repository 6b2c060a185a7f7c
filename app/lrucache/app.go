package lrucache

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lrucache/core/health"
	"github.com/dmitrymomot/lrucache/core/logger"
	"github.com/dmitrymomot/lrucache/core/metrics"
	"github.com/dmitrymomot/lrucache/core/response"
	"github.com/dmitrymomot/lrucache/core/router"
	"github.com/dmitrymomot/lrucache/core/server"
	"github.com/dmitrymomot/lrucache/core/store"
	"github.com/dmitrymomot/lrucache/core/zmqserver"
	"github.com/dmitrymomot/lrucache/middleware"
)

type App struct {
	config    Config
	store     *store.Store
	metrics   *metrics.Metrics
	router    *router.Router
	server    *server.Server
	zmq       *zmqserver.Server
	logger    *slog.Logger
	dashboard *template.Template
	changes   store.Changes

	// shutdown is closed when Run stops, so hijacked WebSocket connections
	// that http.Server.Shutdown does not track can end too.
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

type AppOption func(*App) error

// New wires the HTTP routes and transports around st. The app takes
// ownership of st and closes it when Run returns.
func New(cfg Config, st *store.Store, opts ...AppOption) (*App, error) {
	if st == nil {
		return nil, errors.New("store cannot be nil")
	}

	app := &App{
		config:   cfg,
		store:    st,
		logger:   logger.Nop(),
		shutdown: make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	tmpl, err := parseDashboard()
	if err != nil {
		return nil, err
	}
	app.dashboard = tmpl

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	if app.zmq == nil && app.config.ZMQAddr != "" {
		app.zmq = zmqserver.New(app.config.ZMQAddr, st, zmqserver.WithLogger(app.logger.With(logger.Component("zmq"))))
	}

	app.router = app.routes()
	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

// WithMetrics exposes m on /metrics. It should be the same instance the
// store records into.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(app *App) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		app.metrics = m
		return nil
	}
}

// WithChanges makes live dashboard connections push a fresh snapshot as soon
// as the store publishes a change instead of waiting for the next refresh.
// It should be the broadcaster passed to store.WithBroadcaster.
func WithChanges(changes store.Changes) AppOption {
	return func(app *App) error {
		if changes == nil {
			return errors.New("changes broadcaster cannot be nil")
		}
		app.changes = changes
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

func WithZMQServer(zs *zmqserver.Server) AppOption {
	return func(app *App) error {
		if zs == nil {
			return errors.New("zmq server cannot be nil")
		}
		app.zmq = zs
		return nil
	}
}

// Handler returns the HTTP handler serving every route.
func (app *App) Handler() http.Handler {
	return app.router
}

// Run serves HTTP, and ZeroMQ when configured, until ctx is canceled or a
// transport fails. The store is closed once every transport has stopped.
func (app *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		app.shutdownOnce.Do(func() { close(app.shutdown) })
		return nil
	})
	g.Go(app.server.Run(gctx, app.router))
	if app.zmq != nil {
		g.Go(app.zmq.Run(gctx))
	}

	err := g.Wait()
	if cerr := app.store.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

func (app *App) routes() *router.Router {
	r := router.New(
		router.WithErrorHandler(response.ErrorHandler),
		router.WithLogger(app.logger),
	)
	r.Use(
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: app.logger,
			Skip: func(r *http.Request) bool {
				return r.URL.Path == "/health/live" || r.URL.Path == "/metrics"
			},
		}),
		middleware.BodyLimit(app.config.MaxBodySize),
	)

	r.Get("/{$}", app.index)
	r.Get("/cache", app.snapshotJSON)
	r.Get("/cache.arrow", app.snapshotArrow)
	r.Get("/set", app.setQuery)
	r.Post("/set", app.setBody)
	r.Get("/get", app.get)
	r.Get("/ws", app.live)

	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness(app.logger, app.store.Ping))

	if app.metrics != nil {
		r.Mount("/metrics", app.metrics.Handler())
	}
	return r
}
