package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotPointer is returned when Load receives a non-pointer or nil target.
var ErrNotPointer = errors.New("config target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	loaded     = map[reflect.Type]any{}
)

// Load populates cfg from the environment. The first call for a given type
// parses the environment; later calls copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	if reflect.TypeOf(*cfg).Kind() != reflect.Struct {
		return ErrNotPointer
	}

	// A missing .env file is normal outside local development.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	t := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[t]; ok {
		*cfg = cached.(T)
		return nil
	}

	var fresh T
	if err := env.Parse(&fresh); err != nil {
		return fmt.Errorf("failed to parse %s from environment: %w", t, err)
	}
	loaded[t] = fresh
	*cfg = fresh
	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// reset drops every cached configuration. Used by tests.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = map[reflect.Type]any{}
}
