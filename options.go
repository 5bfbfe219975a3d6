package smb

import (
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jmgilman/go/smb/internal/retry"
)

// RetryPolicy bounds how pending requests are re-issued.
type RetryPolicy = retry.Policy

// DefaultRetryPolicy returns 5 re-attempts delayed 100ms, 200ms, 400ms,
// 800ms and 1s.
func DefaultRetryPolicy() RetryPolicy {
	return retry.DefaultPolicy()
}

// Timer waits out retry delays. It matches the timer contract of
// github.com/cenkalti/backoff/v4.
type Timer interface {
	Start(d time.Duration)
	Stop()
	C() <-chan time.Time
}

// Option configures a Share.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	policy      RetryPolicy
	defaultMode fs.FileMode
	newTimer    func() Timer
	concurrency int
}

func defaultConfig() *config {
	return &config{
		logger:      slog.New(slog.DiscardHandler),
		policy:      DefaultRetryPolicy(),
		defaultMode: DefaultMode,
		concurrency: 4,
	}
}

func (c *config) validate() error {
	if c.logger == nil {
		return fmt.Errorf("logger cannot be nil")
	}
	if c.policy.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative: %d", c.policy.MaxRetries)
	}
	if c.policy.MaxRetries > 0 {
		if c.policy.BaseDelay <= 0 {
			return fmt.Errorf("base delay must be positive: %s", c.policy.BaseDelay)
		}
		if c.policy.MaxDelay < c.policy.BaseDelay {
			return fmt.Errorf("max delay %s is shorter than base delay %s", c.policy.MaxDelay, c.policy.BaseDelay)
		}
		if c.policy.Multiplier < 1 {
			return fmt.Errorf("multiplier must be at least 1: %g", c.policy.Multiplier)
		}
	}
	if c.concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1: %d", c.concurrency)
	}
	return nil
}

// WithLogger sets the logger used for per-step debug output and warnings.
// Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *config) {
		c.policy = policy
	}
}

// WithDefaultMode sets the mode used when a call does not pass WithMode.
func WithDefaultMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.defaultMode = mode
	}
}

// WithTimer sets the factory for the timer used to wait out retry delays.
// A new timer is requested for every ancestor that needs one.
func WithTimer(newTimer func() Timer) Option {
	return func(c *config) {
		c.newTimer = newTimer
	}
}

// WithConcurrency limits how many paths MkdirAllMany processes at once.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

// MkdirOption configures a single directory creation call.
type MkdirOption func(*mkdirOptions)

type mkdirOptions struct {
	mode fs.FileMode
}

// WithMode sets the mode forwarded with every create request of the call.
func WithMode(mode fs.FileMode) MkdirOption {
	return func(o *mkdirOptions) {
		o.mode = mode
	}
}

func (s *Share) mkdirOptions(opts []MkdirOption) mkdirOptions {
	o := mkdirOptions{mode: s.cfg.defaultMode}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
