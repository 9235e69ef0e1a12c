package storage

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultMaxAttempts = 5

// retryConflicts runs fn until it succeeds, fails with an error that is not a
// write conflict, or maxAttempts is exhausted.
func retryConflicts(ctx context.Context, maxAttempts uint, isConflict func(error) bool, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn()
		if err == nil {
			return struct{}{}, nil
		}
		if isConflict(err) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxAttempts))
	return err
}
