package http

import (
	"context"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiterSettings configures the per-client request budget of form submissions.
type RateLimiterSettings struct {
	Requests int64
	Period   time.Duration
}

// RateLimiter limits requests per client key within a fixed window.
type RateLimiter struct {
	instance *limiter.Limiter
}

// RateLimitResult is the budget left for a key after a request was counted.
type RateLimitResult struct {
	Limit     int64
	Remaining int64
	Reset     int64
	Reached   bool
}

// Headers returns the X-RateLimit-* headers describing the result.
func (r RateLimitResult) Headers() map[string]string {
	return map[string]string{
		"X-RateLimit-Limit":     strconv.FormatInt(r.Limit, 10),
		"X-RateLimit-Remaining": strconv.FormatInt(r.Remaining, 10),
		"X-RateLimit-Reset":     strconv.FormatInt(r.Reset, 10),
	}
}

// NewRateLimiter constructs an in-memory limiter.
func NewRateLimiter(settings RateLimiterSettings) (*RateLimiter, error) {
	if settings.Requests <= 0 {
		return nil, eris.New("rate limiter requests must be greater than zero")
	}
	if settings.Period <= 0 {
		return nil, eris.New("rate limiter period must be greater than zero")
	}

	rate := limiter.Rate{
		Period: settings.Period,
		Limit:  settings.Requests,
	}
	return &RateLimiter{instance: limiter.New(memory.NewStore(), rate)}, nil
}

// Allow counts one request for key.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	if key == "" {
		key = "unknown"
	}

	lctx, err := rl.instance.Get(ctx, key)
	if err != nil {
		return RateLimitResult{}, eris.Wrap(err, "checking rate limit")
	}

	return RateLimitResult{
		Limit:     lctx.Limit,
		Remaining: lctx.Remaining,
		Reset:     lctx.Reset,
		Reached:   lctx.Reached,
	}, nil
}
