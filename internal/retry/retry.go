// Package retry runs an operation under a fixed attempt budget.
//
// Each failure is passed to a Classifier that decides whether the loop moves on
// to another attempt or stops. Sleeps between attempts honour context
// cancellation, and no attempt starts after the context is done.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Verdict is the decision taken for a failed attempt.
type Verdict int

const (
	// Stop ends the loop and returns the attempt's error unchanged.
	Stop Verdict = iota
	// Again schedules another attempt if the budget allows it.
	Again
)

func (v Verdict) String() string {
	switch v {
	case Stop:
		return "stop"
	case Again:
		return "again"
	default:
		return "unknown"
	}
}

// Classifier maps an attempt error onto a Verdict.
type Classifier func(err error) Verdict

// Always retries every error.
func Always(error) Verdict { return Again }

// Policy is an attempt budget with a fixed delay between attempts.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// ErrExhausted is matched by errors returned once every attempt failed with a retryable error.
var ErrExhausted = errors.New("retry budget exhausted")

// ExhaustedError carries the last error seen before the budget ran out.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrExhausted, e.Attempts, e.Last)
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Do calls fn until it succeeds, the classifier says Stop, the budget runs out
// or ctx is done. It returns the number of attempts made.
func Do(ctx context.Context, p Policy, classify Classifier, fn func(ctx context.Context, attempt int) error) (int, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	if classify == nil {
		classify = Always
	}

	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := Sleep(ctx, p.Delay); err != nil {
				return attempt - 1, fmt.Errorf("%w: %w", err, last)
			}
		}
		if err := ctx.Err(); err != nil {
			if last == nil {
				return attempt - 1, err
			}
			return attempt - 1, fmt.Errorf("%w: %w", err, last)
		}

		last = fn(ctx, attempt)
		if last == nil {
			return attempt, nil
		}
		if classify(last) == Stop {
			return attempt, last
		}
	}

	return attempts, &ExhaustedError{Attempts: attempts, Last: last}
}

// Sleep waits for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
