package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAllAttemptsFailed = errors.New("all attempts failed")
)

// Retry calls function once per entry of attemptDelays, waiting the entry's
// delay after every attempt but the last, until onFinished reports that no
// retry is needed. When every attempt fails the error of the last one is
// joined with ErrAllAttemptsFailed.
func Retry[T any](
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) (T, error),
	onFinished func(T, error) (needRetry bool),
) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for i, delay := range attemptDelays {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		res, err := function(ctx)
		if !onFinished(res, err) {
			return res, err
		}
		lastErr = err
		if i == len(attemptDelays)-1 {
			break
		}
		if err := SleepCtx(ctx, delay); err != nil {
			return zero, err
		}
	}
	if lastErr != nil {
		return zero, errors.Join(ErrAllAttemptsFailed, lastErr)
	}
	return zero, ErrAllAttemptsFailed
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}
