package connector

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// retryConnect calls connectFn until it succeeds, cfg.MaxRetries retries are
// spent or ctx is done. The delay grows by cfg.Backoff after each failure.
func retryConnect(ctx context.Context, cfg RetryConfig, logger *slog.Logger, connectFn func(context.Context) (Connection, error)) (Connection, error) {
	delay := cfg.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	backoff := cfg.Backoff
	if backoff < 1 {
		backoff = 2
	}

	for attempt := 1; ; attempt++ {
		conn, err := connectFn(ctx)
		if err == nil {
			return conn, nil
		}
		if attempt > cfg.MaxRetries {
			return nil, fmt.Errorf("connect failed after %d attempts: %w", attempt, err)
		}

		logger.WarnContext(ctx, "connect failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("connect: %w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
}
