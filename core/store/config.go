package store

// DefaultCapacity matches the size of the original dashboard cache.
const DefaultCapacity = 5

// Config holds store configuration with environment variable support.
type Config struct {
	Capacity int `env:"CACHE_CAPACITY" envDefault:"5"`
}

// DefaultConfig returns a Config with the default capacity.
func DefaultConfig() Config {
	return Config{Capacity: DefaultCapacity}
}

// NewFromConfig creates a Store from configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Store, error) {
	return New(cfg.Capacity, opts...)
}
