package lrucache

import (
	"time"

	"github.com/dmitrymomot/lrucache/core/server"
	"github.com/dmitrymomot/lrucache/core/store"
)

type Config struct {
	Server server.Config
	Store  store.Config

	AppName  string `env:"APP_NAME" envDefault:"lrucache"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ZMQAddr enables the ZeroMQ transport when set, e.g. "tcp://*:5555".
	ZMQAddr string `env:"ZMQ_ADDR"`

	DashboardRefresh time.Duration `env:"DASHBOARD_REFRESH" envDefault:"3s"`
	MaxBodySize      int64         `env:"MAX_BODY_SIZE" envDefault:"65536"`
	MetricsNamespace string        `env:"METRICS_NAMESPACE" envDefault:"lrucache"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		Server:           server.DefaultConfig(),
		Store:            store.DefaultConfig(),
		AppName:          "lrucache",
		Env:              "development",
		LogLevel:         "info",
		DashboardRefresh: 3 * time.Second,
		MaxBodySize:      64 * 1024,
		MetricsNamespace: "lrucache",
	}
}
