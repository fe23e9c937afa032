package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-sync/internal/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreLocker is a Locker backed by a Store with SetNX semantics.
type StoreLocker struct {
	store        Store
	prefix       string
	ttl          time.Duration
	retryBackoff time.Duration
}

// NewStoreLocker creates a locker. Keys are namespaced with prefix.
// A non-positive ttl defaults to 30s.
func NewStoreLocker(store Store, prefix string, ttl time.Duration) *StoreLocker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &StoreLocker{
		store:        store,
		prefix:       prefix,
		ttl:          ttl,
		retryBackoff: 50 * time.Millisecond,
	}
}

// WithLock blocks until the lock for key is held or ctx ends.
func (l *StoreLocker) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	if fn == nil {
		return errors.New("lock: callback not provided")
	}
	fullKey := l.prefix + key
	token := []byte(uuid.NewString())

	for {
		ok, err := l.store.SetNX(ctx, fullKey, token, l.ttl)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, fullKey, ctx.Err())
			}
			return fmt.Errorf("lock %s: %w", fullKey, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, fullKey, ctx.Err())
		case <-timer.C:
		}
	}

	defer func() {
		// released on a fresh context so a cancelled request still frees the key
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.store.DeleteIfEquals(releaseCtx, fullKey, token); err != nil {
			logger.Get().Warn("Failed to release lock", zap.String("key", fullKey), zap.Error(err))
		}
	}()

	return fn(ctx)
}
