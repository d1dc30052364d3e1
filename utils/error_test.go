package utils

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datazip-inc/tap-persona/constants"
)

func TestRetryOnBackoffRecovers(t *testing.T) {
	calls := 0
	err := RetryOnBackoff(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient failure")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnBackoffExhaustsAttempts(t *testing.T) {
	calls := 0
	err := RetryOnBackoff(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return errors.New("still failing")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus the configured retries")
}

func TestRetryOnBackoffStopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := RetryOnBackoff(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return fmt.Errorf("credential rejected: %w", constants.ErrNonRetryable)
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "non-retryable errors must not be retried")
}

func TestRetryOnBackoffHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryOnBackoff(ctx, 5, time.Second, func() error {
		return errors.New("failure")
	})
	require.Error(t, err)
}

func TestErrExecRunsConcurrently(t *testing.T) {
	var counter atomic.Int64
	err := ErrExec(
		func() error { counter.Add(1); return nil },
		func() error { counter.Add(1); return nil },
		func() error { counter.Add(1); return nil },
	)

	require.NoError(t, err)
	assert.Equal(t, int64(3), counter.Load())

	err = ErrExec(
		func() error { return nil },
		func() error { return errors.New("one failed") },
	)
	require.Error(t, err)
}

func TestErrExecFormatWrapsError(t *testing.T) {
	fn := ErrExecFormat("failed to run full load: %s", func() error {
		return errors.New("boom")
	})
	assert.EqualError(t, fn(), "failed to run full load: boom")

	fn = ErrExecFormat("unused: %s", func() error { return nil })
	assert.NoError(t, fn())
}

func TestErrExecSequentialAccumulates(t *testing.T) {
	err := ErrExecSequential(
		func() error { return errors.New("first") },
		func() error { return nil },
		func() error { return errors.New("second") },
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
}
