package backend

import "time"

// RetryPolicy controls re-issuing of idempotent (GET) requests after transport
// failures or 5xx responses. Mutating calls are never retried so answer and
// attempt submissions stay at-most-once.
type RetryPolicy interface {
	// Retries is the number of additional attempts after the first.
	Retries() int
	// Backoff is the delay before the given retry (1-based).
	Backoff(try int) time.Duration
}

type noRetry struct{}

func (noRetry) Retries() int              { return 0 }
func (noRetry) Backoff(int) time.Duration { return 0 }

// NoRetry is the default policy: every call is issued exactly once.
func NoRetry() RetryPolicy { return noRetry{} }

// FixedRetry retries a fixed number of times with a constant delay.
type FixedRetry struct {
	Attempts int
	Delay    time.Duration
}

func (f FixedRetry) Retries() int {
	if f.Attempts < 0 {
		return 0
	}
	return f.Attempts
}

func (f FixedRetry) Backoff(int) time.Duration { return f.Delay }
