// Package retry implements bounded exponential backoff for requests the
// server reports as still in progress.
package retry

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultMaxRetries is the number of re-attempts allowed per step.
	DefaultMaxRetries = 5

	// DefaultBaseDelay is the delay before the first re-attempt.
	DefaultBaseDelay = 100 * time.Millisecond

	// DefaultMultiplier scales the delay after every re-attempt.
	DefaultMultiplier = 2.0

	// DefaultMaxDelay caps any single delay.
	DefaultMaxDelay = time.Second
)

// Policy bounds how often and how late a step is re-attempted.
type Policy struct {
	// MaxRetries is the number of re-attempts allowed after the first try.
	MaxRetries int

	// BaseDelay is the delay before the first re-attempt.
	BaseDelay time.Duration

	// Multiplier grows the delay per re-attempt.
	Multiplier float64

	// MaxDelay caps a single delay.
	MaxDelay time.Duration
}

// DefaultPolicy returns 5 re-attempts delayed 100ms, 200ms, 400ms, 800ms and 1s.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		Multiplier: DefaultMultiplier,
		MaxDelay:   DefaultMaxDelay,
	}
}

// Allow reports whether a step that has already been re-attempted retries
// times may be re-attempted again.
func (p Policy) Allow(retries int) bool {
	return retries < p.MaxRetries
}

// Delay returns the wait before re-attempt number retries+1:
// min(BaseDelay * Multiplier^retries, MaxDelay).
func (p Policy) Delay(retries int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(retries))
	if d >= float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// BackOff returns a fresh backoff sequence following the policy: Delay(0),
// Delay(1), ... for as long as Allow permits, then backoff.Stop.
func (p Policy) BackOff() backoff.BackOff {
	return &policyBackOff{policy: p}
}

// policyBackOff adapts a Policy to the backoff.BackOff interface.
type policyBackOff struct {
	policy  Policy
	retries int
}

func (b *policyBackOff) NextBackOff() time.Duration {
	if !b.policy.Allow(b.retries) {
		return backoff.Stop
	}
	d := b.policy.Delay(b.retries)
	b.retries++
	return d
}

func (b *policyBackOff) Reset() {
	b.retries = 0
}

// Do runs op until it succeeds, fails with an error retryable rejects, or
// the policy is exhausted. The final error is returned exactly as op
// produced it. Delays are waited out on timer, a nil timer uses a real one;
// cancelling ctx aborts the wait. notify, if set, is called before every
// delay with the error that caused it.
func Do(
	ctx context.Context,
	p Policy,
	timer backoff.Timer,
	op func() error,
	retryable func(error) bool,
	notify func(err error, delay time.Duration),
) error {
	operation := func() error {
		err := op()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var n backoff.Notify
	if notify != nil {
		n = backoff.Notify(notify)
	}

	return backoff.RetryNotifyWithTimer(operation, backoff.WithContext(p.BackOff(), ctx), n, timer)
}
