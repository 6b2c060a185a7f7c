package server

import (
	"crypto/tls"
	"fmt"
	"time"
)

const (
	DefaultAddr              = ":8080"
	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20
)

// Config is the HTTP listener configuration, loaded from HTTP_* variables.
// TLS is enabled only when both the certificate and the key file are set.
type Config struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxHeaderBytes    int           `env:"HTTP_MAX_HEADER_BYTES" envDefault:"1048576"`

	TLSCertFile string `env:"HTTP_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"HTTP_TLS_KEY_FILE"`
}

// DefaultConfig matches the envDefault tags of Config.
func DefaultConfig() Config {
	return Config{
		Addr:              DefaultAddr,
		ReadTimeout:       DefaultReadTimeout,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		MaxHeaderBytes:    DefaultMaxHeaderBytes,
	}
}

// NewFromConfig creates a Server from cfg. Zero durations and sizes keep the
// package defaults. Options are applied after cfg and win over it.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	var fromCfg []Option
	set := func(ok bool, opt Option) {
		if ok {
			fromCfg = append(fromCfg, opt)
		}
	}
	set(cfg.ReadTimeout > 0, WithReadTimeout(cfg.ReadTimeout))
	set(cfg.ReadHeaderTimeout > 0, WithReadHeaderTimeout(cfg.ReadHeaderTimeout))
	set(cfg.WriteTimeout > 0, WithWriteTimeout(cfg.WriteTimeout))
	set(cfg.IdleTimeout > 0, WithIdleTimeout(cfg.IdleTimeout))
	set(cfg.ShutdownTimeout > 0, WithShutdownTimeout(cfg.ShutdownTimeout))
	set(cfg.MaxHeaderBytes > 0, WithMaxHeaderBytes(cfg.MaxHeaderBytes))

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		tlsConfig, err := loadKeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS key pair %s, %s: %w", cfg.TLSCertFile, cfg.TLSKeyFile, err)
		}
		fromCfg = append(fromCfg, WithTLS(tlsConfig))
	}

	return New(cfg.Addr, append(fromCfg, opts...)...), nil
}

func loadKeyPair(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
