// Package ratelimit enforces a minimum interval between dispatches to each
// external provider, shared by every request in the process.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/metrics"
)

// Limiter spaces calls to one provider at least Interval apart. Concurrent
// callers queue; each blocks only its own goroutine.
type Limiter struct {
	name     string
	interval time.Duration
	maxWait  time.Duration
	limiter  *rate.Limiter
}

// New builds a limiter allowing one dispatch per interval. A zero interval
// never delays. A zero maxWait lets callers queue until their context ends.
func New(name string, interval, maxWait time.Duration) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Limiter{
		name:     name,
		interval: interval,
		maxWait:  maxWait,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Unlimited never delays. Tests inject it in place of real limiters.
func Unlimited(name string) *Limiter {
	return New(name, 0, 0)
}

func (l *Limiter) Name() string {
	return l.name
}

func (l *Limiter) Interval() time.Duration {
	return l.interval
}

// Wait blocks until the caller may dispatch and returns how long it queued.
// A delay beyond maxWait or past the context deadline is refused up front and
// the reserved slot released.
func (l *Limiter) Wait(ctx context.Context) (time.Duration, error) {
	r := l.limiter.Reserve()
	if !r.OK() {
		return 0, apperrors.NewRateLimitWaitExceededError(l.name, 0, l.maxWait)
	}

	delay := r.Delay()
	if l.maxWait > 0 && delay > l.maxWait {
		r.Cancel()
		return delay, apperrors.NewRateLimitWaitExceededError(l.name, delay, l.maxWait)
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
		r.Cancel()
		return delay, apperrors.NewRateLimitWaitExceededError(l.name, delay, time.Until(deadline))
	}

	metrics.RateLimitWait.WithLabelValues(l.name).Observe(delay.Seconds())
	if delay == 0 {
		return 0, nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return delay, nil
	case <-ctx.Done():
		r.Cancel()
		return delay, ctx.Err()
	}
}

// Registry hands out the process-wide limiter for each provider.
type Registry struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
}

func NewRegistry() *Registry {
	return &Registry{limiters: make(map[string]*Limiter)}
}

// Register installs l under its name, replacing any earlier limiter.
func (r *Registry) Register(l *Limiter) *Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiters[l.name] = l
	return l
}

// Get returns the limiter for name, creating an unlimited one on first use so
// that every caller for a provider shares the same instance.
func (r *Registry) Get(name string) *Limiter {
	r.mu.RLock()
	l, ok := r.limiters[name]
	r.mu.RUnlock()
	if ok {
		return l
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.limiters[name]; ok {
		return l
	}
	l = Unlimited(name)
	r.limiters[name] = l
	return l
}
