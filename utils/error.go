package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/datazip-inc/tap-persona/constants"
	"github.com/datazip-inc/tap-persona/utils/logger"
)

// ErrExec executes a list of functions concurrently and returns an error if any function fails.
func ErrExec(functions ...func() error) error {
	group, ctx := errgroup.WithContext(context.Background())

	for _, one := range functions {
		one := one
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return one()
			}
		})
	}

	return group.Wait()
}

// ErrExecSequential executes a list of functions sequentially, accumulating errors if any occur.
func ErrExecSequential(functions ...func() error) error {
	var multErr error

	for _, one := range functions {
		if err := one(); err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}

	return multErr
}

// ErrExecFormat formats the error returned from a function according to the provided format string.
func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}
		return nil
	}
}

// RetryOnBackoff retries fn with exponential backoff until it succeeds,
// returns a non-retryable error, attempts are exhausted, or ctx is done.
// Errors wrapping constants.ErrNonRetryable fail immediately.
func RetryOnBackoff(ctx context.Context, attempts int, interval time.Duration, fn func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ExponentialBackOff{
		InitialInterval:     interval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         constants.DefaultMaxRetryBackoff,
		MaxElapsedTime:      0, // bounded by attempts, not wall time
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}, uint64(attempts)), ctx)
	policy.Reset()

	attempt := 0
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, constants.ErrNonRetryable) {
			return backoff.Permanent(err)
		}

		attempt++
		logger.Warnf("retry attempt %d failed: %s", attempt, err)
		return err
	}, policy)
}
