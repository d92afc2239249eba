package models

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/reagentlib/reagent"
)

// RetryConfig controls the Retry decorator.
type RetryConfig struct {
	// MaxAttempts caps the total number of attempts, including the first.
	// Values below one are treated as one.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles each
	// further attempt.
	BaseDelay time.Duration

	// MaxDelay caps the pre-jitter delay.
	MaxDelay time.Duration

	// JitterFraction adds a random delay in [0, JitterFraction*delay) on
	// top of each backoff so concurrent loops don't retry in lockstep.
	JitterFraction float64
}

// DefaultRetryConfig returns the defaults: 3 attempts, 500ms base delay
// doubling up to 8s, 25% jitter.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    3,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       8 * time.Second,
		JitterFraction: 0.25,
	}
}

// Retry decorates a reagent.Client with retry and exponential backoff.
//
// Policy, per classified failure kind:
//   - Transport (and unclassified) failures retry with doubling, capped,
//     jittered backoff.
//   - RateLimit retries only when the error carries a Retry-After hint; the
//     hint replaces the computed backoff for that retry.
//   - Auth and BadRequest fail immediately.
//
// When attempts are exhausted the result is a *reagent.ClientError with
// KindUnavailable wrapping the last underlying cause.
type Retry struct {
	inner  reagent.Client
	config RetryConfig

	// sleep is swapped out in tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetry wraps inner with the given config.
func NewRetry(inner reagent.Client, config RetryConfig) *Retry {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = DefaultRetryConfig().BaseDelay
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = DefaultRetryConfig().MaxDelay
	}
	return &Retry{
		inner:  inner,
		config: config,
		sleep:  sleepContext,
	}
}

// Complete implements reagent.Client.
func (r *Retry) Complete(
	ctx context.Context,
	transcript *reagent.Transcript,
) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		text, err := r.inner.Complete(ctx, transcript)
		if err == nil {
			return text, nil
		}

		delay, retryable := r.disposition(err, attempt)
		if !retryable {
			return "", err
		}

		lastErr = err
		if attempt == r.config.MaxAttempts {
			break
		}
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return "", sleepErr
		}
	}

	return "", &reagent.ClientError{
		Kind: reagent.KindUnavailable,
		Err:  lastErr,
	}
}

// disposition decides whether err warrants another attempt and with what
// delay.
func (r *Retry) disposition(err error, attempt int) (time.Duration, bool) {
	var ce *reagent.ClientError
	if !errors.As(err, &ce) {
		// Unclassified failures are treated as transient.
		return r.backoff(attempt), true
	}
	if !ce.Retryable() {
		return 0, false
	}
	if ce.Kind == reagent.KindRateLimit {
		// Retryable rate limits always carry a hint; honor it as the delay.
		return ce.RetryAfter, true
	}
	return r.backoff(attempt), true
}

// backoff computes the jittered exponential delay after the given attempt.
func (r *Retry) backoff(attempt int) time.Duration {
	delay := r.config.BaseDelay << (attempt - 1)
	if delay > r.config.MaxDelay || delay <= 0 {
		delay = r.config.MaxDelay
	}
	if r.config.JitterFraction > 0 {
		delay += time.Duration(rand.Float64() * r.config.JitterFraction * float64(delay))
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Compile-time check that Retry implements reagent.Client.
var _ reagent.Client = (*Retry)(nil)
