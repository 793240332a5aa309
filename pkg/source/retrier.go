package source

import (
	"context"
	"errors"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newsbot/pkg/domain"
)

// errStopRetry terminates repeater on non-retryable outcomes
var errStopRetry = errors.New("stop retry")

// Retrier wraps a fetcher and retries transient failures with linear backoff.
// Fetch errors never escape it, every result is a domain.FetchOutcome.
type Retrier struct {
	fetcher     Fetcher
	maxAttempts int
	delay       time.Duration // base delay, attempt n waits n*delay before the next one
}

// NewRetrier makes a retrier, maxAttempts below 1 is treated as 1
func NewRetrier(f Fetcher, maxAttempts int, delay time.Duration) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrier{fetcher: f, maxAttempts: maxAttempts, delay: delay}
}

// ID returns id of the wrapped source
func (r *Retrier) ID() domain.SourceID { return r.fetcher.ID() }

// Fetch runs the wrapped fetcher up to maxAttempts times. Only transient outcomes are retried,
// the last transient outcome is returned when attempts are exhausted.
func (r *Retrier) Fetch(ctx context.Context) domain.FetchOutcome {
	var outcome domain.FetchOutcome
	attempt := 0

	rp := repeater.NewBackoff(r.maxAttempts, r.delay,
		repeater.WithBackoffType(repeater.BackoffLinear), repeater.WithJitter(0))
	err := rp.Do(ctx, func() error {
		attempt++
		outcome = Classify(r.fetcher.Fetch(ctx))
		if outcome.Kind != domain.OutcomeTransient {
			return errStopRetry
		}
		lgr.Printf("[DEBUG] %s attempt %d/%d failed: %v", r.ID(), attempt, r.maxAttempts, outcome.Err)
		return outcome.Err
	}, errStopRetry)

	if err != nil && !errors.Is(err, errStopRetry) && attempt == 0 {
		// context canceled before the first attempt
		return domain.Transient(err)
	}
	if outcome.Kind == domain.OutcomeTransient {
		lgr.Printf("[WARN] %s failed after %d attempt(s): %v", r.ID(), attempt, outcome.Err)
	}
	return outcome
}
