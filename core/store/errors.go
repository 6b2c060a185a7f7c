package store

import (
	"errors"

	"github.com/dmitrymomot/lrucache/core/cache"
)

var (
	// ErrInvalidCapacity is returned by New for a capacity below one.
	ErrInvalidCapacity = cache.ErrInvalidCapacity
	// ErrInvalidInput is returned when a key or value is empty or not valid UTF-8.
	ErrInvalidInput = errors.New("key and value must be non-empty UTF-8")
	// ErrNotFound is returned by Get when the key is not held.
	ErrNotFound = errors.New("key not found")
	// ErrClosed is returned after the store has been closed.
	ErrClosed = cache.ErrClosed
)
