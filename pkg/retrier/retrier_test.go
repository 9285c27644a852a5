package retrier

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRetrier_Do(t *testing.T) {
	t.Run("success on first attempt", func(t *testing.T) {
		attempts := 0
		err := New().Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("success after retries", func(t *testing.T) {
		r := New(WithMaxRetries(3), WithInitialInterval(time.Millisecond))
		attempts := 0
		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		r := New(WithMaxRetries(2), WithInitialInterval(time.Millisecond))
		attempts := 0
		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errors.New("transient")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("zero retries", func(t *testing.T) {
		attempts := 0
		err := New(WithMaxRetries(0)).Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errors.New("transient")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("permanent error is not retried", func(t *testing.T) {
		r := New(WithMaxRetries(5), WithInitialInterval(time.Millisecond), WithRetryIf(func(err error) bool {
			return !errors.Is(err, os.ErrNotExist)
		}))
		attempts := 0
		err := r.Do(context.Background(), func(ctx context.Context) error {
			attempts++
			return errors.Wrap(os.ErrNotExist, "open rates.txt")
		})
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, 1, attempts)
	})

	t.Run("context cancellation", func(t *testing.T) {
		r := New(WithMaxRetries(5), WithInitialInterval(100*time.Millisecond))
		ctx, cancel := context.WithCancel(context.Background())

		attempts := 0
		err := r.Do(ctx, func(ctx context.Context) error {
			attempts++
			if attempts == 2 {
				cancel()
			}
			return errors.New("transient")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 2, attempts)
	})
}

func TestRetrier_DoWithData(t *testing.T) {
	t.Run("returns data", func(t *testing.T) {
		val, err := DoWithData(New(), context.Background(), func(ctx context.Context) ([]byte, error) {
			return []byte("EUR;1;USD"), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "EUR;1;USD", string(val))
	})

	t.Run("returns error", func(t *testing.T) {
		r := New(WithMaxRetries(1), WithInitialInterval(time.Millisecond))
		val, err := DoWithData(r, context.Background(), func(ctx context.Context) ([]byte, error) {
			return nil, errors.New("transient")
		})
		assert.Error(t, err)
		assert.Empty(t, val)
	})
}
