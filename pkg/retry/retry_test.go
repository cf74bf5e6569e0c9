package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Name:          "catalog",
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastConfig()
	cfg.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		retried = append(retried, attempt)
	}

	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	cause := errors.New("bad request")

	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return Permanent(cause)
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, cause)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return errors.New("down")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "catalog: max retry attempts (3) exceeded")
}

func TestDo_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}
