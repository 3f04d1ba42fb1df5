// AngelaMos | 2026
// retry.go

package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// minRetryInterval floors Interval since a constant backoff needs a
// positive wait.
const minRetryInterval = time.Millisecond

// RetryPolicy is a fixed-interval retry used for startup connections.
type RetryPolicy struct {
	Attempts int
	Interval time.Duration
}

// Do calls fn until it succeeds or the attempts are spent. The last error
// is returned wrapped with the attempt count.
func (p RetryPolicy) Do(
	ctx context.Context,
	name string,
	fn func(ctx context.Context) error,
) error {
	attempts := max(p.Attempts, 1)
	backoff := retry.WithMaxRetries(
		uint64(attempts-1),
		retry.NewConstant(max(p.Interval, minRetryInterval)),
	)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil {
			return nil
		}

		slog.Warn("connection attempt failed",
			"target", name,
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
		return retry.RetryableError(err)
	})

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return fmt.Errorf("%s: %w", name, err)
	default:
		return fmt.Errorf("%s: giving up after %d attempts: %w", name, attempt, err)
	}
}
