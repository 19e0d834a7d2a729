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
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastConfig()
	cfg.OnRetry = func(attempt int, err error, _ time.Duration) {
		retried = append(retried, attempt)
	}

	err := Do(context.Background(), cfg, "test", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDo_ReturnsLastError(t *testing.T) {
	sentinel := errors.New("connection refused")

	err := Do(context.Background(), fastConfig(), "postgres", func(context.Context) error {
		return sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "postgres")
}

func TestDo_RespectsTotalTimeout(t *testing.T) {
	cfg := Bounded(50 * time.Millisecond)
	cfg.MaxAttempts = 100

	start := time.Now()
	err := Do(context.Background(), cfg, "slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
