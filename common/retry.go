package common

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times, doubling the wait between tries
// starting from base. attempts < 1 is treated as a single try. Waits are
// interruptible through the context; the last error is returned when every
// try fails.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	delay := base
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
