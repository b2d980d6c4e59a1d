//go:generate go run go.uber.org/mock/mockgen -source=limiter.go -destination=../mocks/mock_limiter.go -package=mocks

// Package ratelimit bounds the rate of post creation with a sliding window
// over externally persisted attempt state.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	errs "chirp-lab/errors"
)

// ILimiter gates a single attempt for a key.
type ILimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IAttemptStore holds per-key attempt timestamps. TakeAttempt must count the
// attempts inside [now-window, now] and record one more only when the count
// is below max, atomically: two concurrent calls for the same key must never
// both pass a stale count.
type IAttemptStore interface {
	TakeAttempt(ctx context.Context, key string, now time.Time, window time.Duration, max int) (bool, error)
}

// Limiter is a sliding-window rate limiter. Window and max are fixed at
// construction; the key is chosen per call.
type Limiter struct {
	store  IAttemptStore
	window time.Duration
	max    int
	log    *slog.Logger
	now    func() time.Time
}

func NewLimiter(store IAttemptStore, window time.Duration, max int, log *slog.Logger) *Limiter {
	return &Limiter{store: store, window: window, max: max, log: log, now: time.Now}
}

// Allow admits or denies one attempt for key. Denied attempts are not
// recorded, so denials never extend the window. A store failure counts as a
// denial: the limit guarantee holds even when the shared state is
// unreachable, and the cause stays inspectable through errors.Is/As.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	allowed, err := l.store.TakeAttempt(ctx, key, l.now().UTC(), l.window, l.max)
	if err != nil {
		l.log.Error("attempt store failed, denying", "key", key, "error", err)
		return false, fmt.Errorf("%w: %v", errs.ErrRateLimited, err)
	}
	return allowed, nil
}
