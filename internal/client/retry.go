package client

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryState is the state of a bounded retry loop.
type RetryState int

const (
	StateAttempting RetryState = iota
	StateBackingOff
	StateSucceeded
	StateExhausted
)

func (s RetryState) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateBackingOff:
		return "backing-off"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// retryableError marks an error as transient.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable wraps err so that a RetryController will retry the operation.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err was marked transient via Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// RetryController runs an operation through an explicit bounded state
// machine: attempting -> backing-off -> attempting ... until the
// operation succeeds, a terminal error occurs, or attempts are
// exhausted. Backoff doubles per attempt starting from baseDelay.
type RetryController struct {
	maxAttempts int
	baseDelay   time.Duration

	state   RetryState
	attempt int
	lastErr error
}

// NewRetryController creates a controller allowing maxAttempts attempts
// with exponential backoff starting at baseDelay.
func NewRetryController(maxAttempts int, baseDelay time.Duration) *RetryController {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryController{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		state:       StateAttempting,
	}
}

// State returns the current state of the controller.
func (r *RetryController) State() RetryState { return r.state }

// Attempts returns the number of attempts made so far.
func (r *RetryController) Attempts() int { return r.attempt }

// NextBackoff returns the pause before the next attempt: baseDelay,
// 2*baseDelay, 4*baseDelay, ...
func (r *RetryController) NextBackoff() time.Duration {
	if r.attempt < 1 {
		return r.baseDelay
	}
	return r.baseDelay * time.Duration(1<<uint(r.attempt-1))
}

// Run drives op through the state machine. It returns nil once op
// succeeds, the terminal error immediately for non-retryable failures,
// and the last error once attempts are exhausted. Backoff sleeps are
// context-aware.
func (r *RetryController) Run(ctx context.Context, op func(context.Context) error) error {
	for {
		switch r.state {
		case StateAttempting:
			r.attempt++
			err := op(ctx)
			if err == nil {
				r.state = StateSucceeded
				return nil
			}
			r.lastErr = err
			if !IsRetryable(err) || r.attempt >= r.maxAttempts {
				r.state = StateExhausted
				return err
			}
			r.state = StateBackingOff

		case StateBackingOff:
			backoff := r.NextBackoff()
			log.Warn().
				Int("attempt", r.attempt).
				Dur("backoff", backoff).
				Err(r.lastErr).
				Msg("Transient error, backing off before retry")
			select {
			case <-ctx.Done():
				r.state = StateExhausted
				r.lastErr = ctx.Err()
				return ctx.Err()
			case <-time.After(backoff):
			}
			r.state = StateAttempting

		case StateSucceeded:
			return nil

		case StateExhausted:
			return r.lastErr
		}
	}
}
