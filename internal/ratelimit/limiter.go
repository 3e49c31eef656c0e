// Package ratelimit implements a fixed-window request budget per client,
// counted in the shared cache store.
package ratelimit

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"stocktrack/internal/apperrors"
	"stocktrack/internal/caching"
)

const (
	DefaultWindow = 60 * time.Second
	DefaultBudget = 100
)

// Limiter admits or rejects requests against a per-client fixed window.
// This is deliberately a coarse fixed-window counter: up to 2x the budget
// can land across a window boundary. Smoothing it out (sliding window,
// token bucket) is an intentional non-change.
type Limiter struct {
	store  caching.Store
	window time.Duration
	budget int
	now    func() time.Time
}

func NewLimiter(store caching.Store, window time.Duration, budget int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Limiter{store: store, window: window, budget: budget, now: time.Now}
}

// SetClock overrides the time source. Test hook only.
func (l *Limiter) SetClock(now func() time.Time) { l.now = now }

// Admit checks and consumes one unit of the client's window budget.
// Returns RateLimitExceeded when the budget is exhausted.
//
// If the cache backend is unavailable the limiter fails open: the request
// is admitted and the bypass is logged. Rate limiting is a protection
// layer here, not an entitlement system, so cache downtime must not take
// the whole API down with it.
func (l *Limiter) Admit(ctx context.Context, clientID string) error {
	if clientID == "" {
		clientID = "unknown"
	}

	now := l.now()
	windowStart := now.Truncate(l.window)
	key := fmt.Sprintf("ratelimit:%s:%d", clientID, windowStart.Unix())

	data, found, err := l.store.Get(ctx, key)
	if err != nil {
		log.Printf("WARN: rate limiter bypassed for client %s: cache unavailable: %v", clientID, err)
		return nil
	}

	count := 0
	if found {
		if parsed, parseErr := strconv.Atoi(string(data)); parseErr == nil {
			count = parsed
		}
	}

	if count >= l.budget {
		return apperrors.RateLimitExceeded()
	}

	ttl := windowStart.Add(l.window).Sub(now).Round(time.Second)
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := l.store.Set(ctx, key, []byte(strconv.Itoa(count+1)), ttl); err != nil {
		log.Printf("WARN: rate limiter count not persisted for client %s: %v", clientID, err)
	}
	return nil
}
