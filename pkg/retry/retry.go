package retry

import (
	"context"
	"fmt"
	"time"
)

const defaultDelay = 100 * time.Millisecond

// Backoff espera antes del siguiente intento (attempt empieza en 1).
type Backoff func(attempt int) time.Duration

// ShouldRetry decide si un error es transitorio.
type ShouldRetry func(error) bool

// Config parámetros de reintento. MaxAttempts cuenta también el primer intento.
type Config struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry ShouldRetry
}

func (c *Config) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = LinearBackoff(defaultDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = neverRetry
	}
}

func neverRetry(error) bool { return false }

// LinearBackoff espera attempt*delay: 1x, 2x, 3x...
func LinearBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * delay
	}
}

// Do ejecuta fn con reintentos.
func Do(ctx context.Context, c Config, fn func() error) error {
	_, err := DoWithResult(ctx, c, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult ejecuta fn hasta que tenga éxito, devuelva un error no reintentable
// o se agoten los intentos. El último error se devuelve tal cual.
func DoWithResult[T any](ctx context.Context, c Config, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.normalize()

	var timer *time.Timer
	for attempt := 1; ; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if attempt >= c.MaxAttempts || !c.ShouldRetry(err) {
			return zero, err
		}

		wait := c.Backoff(attempt)
		if timer == nil {
			timer = time.NewTimer(wait)
			defer timer.Stop()
		} else {
			timer.Reset(wait)
		}
		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
}
