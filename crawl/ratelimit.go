package crawl

import (
	"context"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/fwojciec/sitecrawl"
	"golang.org/x/time/rate"
)

// Default request spacing. A randomized interval avoids hammering the target
// at a fixed cadence; the cool-down applies after an HTTP 429.
const (
	DefaultMinDelay = 300 * time.Millisecond
	DefaultMaxDelay = 600 * time.Millisecond
	DefaultCooldown = 2500 * time.Millisecond
)

// Compile-time interface verification.
var _ sitecrawl.Limiter = (*Limiter)(nil)

// Limiter is the single shared gate that spaces outgoing requests. It wraps
// a token bucket (burst 1) whose refill interval is re-randomized within
// [minDelay, maxDelay) after every response, and stretched by the cool-down
// when the server answers 429. The single-gate design is deliberate: the
// crawl is same-domain, so one bucket covers the whole target.
type Limiter struct {
	minDelay time.Duration
	maxDelay time.Duration
	cooldown time.Duration
	rl       *rate.Limiter
}

// NewLimiter creates a Limiter with the given spacing window and throttling
// cool-down. Non-positive arguments fall back to the defaults.
func NewLimiter(minDelay, maxDelay, cooldown time.Duration) *Limiter {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Limiter{
		minDelay: minDelay,
		maxDelay: maxDelay,
		cooldown: cooldown,
		rl:       rate.NewLimiter(rate.Every(minDelay), 1),
	}
}

// Wait blocks until the next request may be issued, or the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.rl.Wait(ctx)
}

// Observe records the status of a completed request and schedules the
// earliest time the next one may start. A 429 stretches the interval by the
// cool-down and burns a token so the next request waits out the penalty in
// full, even if part of a token had already accrued during the request.
func (l *Limiter) Observe(status int) {
	spacing := l.spacing()
	if status == http.StatusTooManyRequests {
		l.rl.SetLimit(rate.Every(l.cooldown + spacing))
		l.rl.ReserveN(time.Now(), 1)
		return
	}
	l.rl.SetLimit(rate.Every(spacing))
}

// spacing returns a uniformly random delay in [minDelay, maxDelay).
func (l *Limiter) spacing() time.Duration {
	if l.maxDelay <= l.minDelay {
		return l.minDelay
	}
	return l.minDelay + rand.N(l.maxDelay-l.minDelay)
}
