// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/lrucache/core/logger"
//
//	log := logger.New(
//		logger.ForEnv(cfg.Env, "lrucache"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//
//	log.Info("cache created",
//		logger.Component("store"),
//		logger.Capacity(5),
//	)
//
// # Environment Presets
//
//	// Development: text format, debug level
//	logger.New(logger.WithDevelopment("lrucache"))
//
//	// Staging and production: JSON format, info level
//	logger.New(logger.WithProduction("lrucache"))
//
// # Attribute Helpers
//
// Helpers such as Error, RequestID and Query return an empty slog.Attr for
// empty input. slog drops empty attributes, so call sites need no nil checks:
//
//	log.Error("put rejected", logger.Error(err), logger.CacheKey(key))
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("Test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
