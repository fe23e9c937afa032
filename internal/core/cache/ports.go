package cache

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotAcquired is returned when a lock stays held until the context ends.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key across processes.
// This is a port that can be implemented by different backends (Redis, in-process, etc.).
type Locker interface {
	// WithLock runs fn while holding the lock for key.
	// The lock is released when fn returns, whatever its result.
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}

// Store is the minimal key-value surface the lock needs.
type Store interface {
	// SetNX sets key to value only if it does not exist yet.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// DeleteIfEquals removes key only while it still holds value.
	DeleteIfEquals(ctx context.Context, key string, value []byte) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}

// NopLocker runs fn without any coordination. Used when Redis is not configured.
type NopLocker struct{}

// WithLock calls fn directly.
func (NopLocker) WithLock(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}
