package cache

import "errors"

var (
	ErrInvalidCapacity = errors.New("cache capacity must be at least 1")
	ErrClosed          = errors.New("cache is closed")
)
