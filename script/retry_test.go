package script

import (
	"errors"
	"testing"
)

func TestWithAttempts(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("stops on first success", func(t *testing.T) {
		calls := 0
		err := withAttempts(3, func(attempt int) error {
			calls++
			return nil
		}, nil)
		if err != nil || calls != 1 {
			t.Fatalf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("exhausts budget", func(t *testing.T) {
		calls := 0
		err := withAttempts(3, func(attempt int) error {
			calls++
			return errBoom
		}, func(error) bool { return true })
		if !errors.Is(err, errBoom) || calls != 3 {
			t.Fatalf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("non-retryable aborts immediately", func(t *testing.T) {
		calls := 0
		err := withAttempts(3, func(attempt int) error {
			calls++
			return errBoom
		}, func(error) bool { return false })
		if !errors.Is(err, errBoom) || calls != 1 {
			t.Fatalf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("zero budget still runs once", func(t *testing.T) {
		calls := 0
		_ = withAttempts(0, func(attempt int) error {
			calls++
			return errBoom
		}, nil)
		if calls != 1 {
			t.Fatalf("calls=%d", calls)
		}
	})
}
