package dfs

import (
	"context"
	"fmt"
	"time"
)

// Retry configuration for connecting to a namenode
const (
	MaxConnectAttempts = 3
	InitialBackoff     = 250 * time.Millisecond
	MaxBackoff         = 2 * time.Second
	BackoffMultiplier  = 2.0
)

// CalculateBackoff returns the backoff duration for a given attempt number
func CalculateBackoff(attempt int) time.Duration {
	backoff := InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * BackoffMultiplier)
		if backoff > MaxBackoff {
			backoff = MaxBackoff
			break
		}
	}
	return backoff
}

// backoff is replaced in tests
var backoff = CalculateBackoff

// RetryableFunc is a function that can be retried
type RetryableFunc[T any] func() (T, error)

// WithRetry calls fn up to attempts times, sleeping with exponential backoff
// between failures. An error for which retryable returns false is returned
// at once.
func WithRetry[T any](ctx context.Context, attempts int, retryable func(error) bool, fn RetryableFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("operation cancelled: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable(err) {
			return zero, err
		}

		if attempt < attempts-1 {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("operation cancelled: %w", ctx.Err())
			case <-time.After(backoff(attempt)):
			}
		}
	}

	return zero, fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, lastErr)
}
