// Package retry provides backoff policies for transient failures.
package retry

import (
	"context"
	"time"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

// BackoffMode selects how the delay grows between attempts.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // attempts after the first failure
}

// DefaultPolicy returns exponential backoff from 250ms capped at 2s with two
// retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffExponential, Initial: 250 * time.Millisecond, Max: 2 * time.Second, MaxRetries: 2}
}

// NewPolicy builds a policy from raw fields; zero or invalid values fall
// back to the defaults.
func NewPolicy(mode BackoffMode, initial, maxDuration time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDuration > 0 {
		p.Max = maxDuration
	}
	switch mode {
	case BackoffFixed, BackoffLinear, BackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff before retry number retryCount (1-based).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		d = p.Initial
	case BackoffExponential:
		d = p.Initial << (retryCount - 1)
	default:
		d = time.Duration(retryCount) * p.Initial
	}
	if d > p.Max || d <= 0 {
		return p.Max
	}
	return d
}

// Validate reports a policy that cannot be applied.
func (p Policy) Validate() error {
	switch {
	case p.Initial <= 0:
		return errors.ValidationError("retry initial delay must be positive").WithContext("initial", p.Initial).Build()
	case p.Max <= 0:
		return errors.ValidationError("retry max delay must be positive").WithContext("max", p.Max).Build()
	case p.MaxRetries < 0:
		return errors.ValidationError("retry count cannot be negative").WithContext("max_retries", p.MaxRetries).Build()
	}
	return nil
}

// Do calls fn until it succeeds, reports a permanent failure or the retries
// are exhausted. fn returns whether its error is worth retrying. The last
// error is returned; waiting stops early when ctx is done.
func (p Policy) Do(ctx context.Context, fn func(attempt int) (retryable bool, err error)) error {
	for attempt := 0; ; attempt++ {
		retryable, err := fn(attempt)
		if err == nil || !retryable || attempt >= p.MaxRetries {
			return err
		}
		timer := time.NewTimer(p.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
