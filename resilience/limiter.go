package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiterConfig configures a rate limiter.
type RateLimiterConfig struct {
	// Name identifies the limiter in OnWait callbacks.
	Name string `yaml:"name" mapstructure:"name"`
	// Rate is the number of calls allowed per second. Zero disables limiting.
	Rate float64 `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	// Burst is how many calls may go through back to back.
	Burst int `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
	// OnWait is called when a caller has to wait for its turn.
	OnWait func(name string, wait time.Duration) `yaml:"-" mapstructure:"-"`
}

// DefaultRateLimiterConfig allows 10 calls per second with bursts of 20.
func DefaultRateLimiterConfig(name string) RateLimiterConfig {
	return RateLimiterConfig{Name: name, Rate: 10, Burst: 20}
}

// Enabled reports whether the config asks for limiting at all.
func (c RateLimiterConfig) Enabled() bool {
	return c.Rate > 0
}

// RateLimiter paces calls with the generic cell rate algorithm: it keeps
// the theoretical arrival time of the next call and admits a call when
// that time lies at most one burst window ahead of now.
type RateLimiter struct {
	name   string
	rate   float64
	burst  int
	onWait func(string, time.Duration)

	interval time.Duration
	window   time.Duration
	now      func() time.Time

	mu  sync.Mutex
	tat time.Time
}

// NewRateLimiter creates a limiter. A missing rate defaults to 10/s and a
// missing burst follows the rate, with a floor of one.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = max(int(cfg.Rate), 1)
	}
	interval := time.Duration(float64(time.Second) / cfg.Rate)
	return &RateLimiter{
		name:     cfg.Name,
		rate:     cfg.Rate,
		burst:    cfg.Burst,
		onWait:   cfg.OnWait,
		interval: interval,
		window:   time.Duration(cfg.Burst) * interval,
		now:      time.Now,
	}
}

// schedule computes the arrival time a new call would claim and how long
// it would have to wait. Callers hold mu.
func (rl *RateLimiter) schedule(now time.Time) (next time.Time, wait time.Duration) {
	base := rl.tat
	if base.Before(now) {
		base = now
	}
	next = base.Add(rl.interval)
	return next, max(next.Sub(now)-rl.window, 0)
}

// Allow admits a call without blocking. It returns false, and claims
// nothing, when the caller would have to wait.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	next, wait := rl.schedule(rl.now())
	if wait > 0 {
		return false
	}
	rl.tat = next
	return true
}

// Wait blocks until the caller's turn or until ctx is done. A caller that
// gives up hands its slot back.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	next, wait := rl.schedule(rl.now())
	rl.tat = next
	rl.mu.Unlock()

	if wait == 0 {
		return nil
	}
	if rl.onWait != nil {
		rl.onWait(rl.name, wait)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		rl.mu.Lock()
		rl.tat = rl.tat.Add(-rl.interval)
		rl.mu.Unlock()
		return ctx.Err()
	}
}

// Tokens reports how many calls could go through right now. It is
// negative while callers are queued in Wait.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	ahead := time.Duration(0)
	if rl.tat.After(now) {
		ahead = rl.tat.Sub(now)
	}
	return float64(rl.window-ahead) / float64(rl.interval)
}

// Rate returns the configured calls per second.
func (rl *RateLimiter) Rate() float64 { return rl.rate }

// Burst returns the configured burst size.
func (rl *RateLimiter) Burst() int { return rl.burst }
