package fetch

import (
	"net/http"
	"time"
)

// Outcome classifies a fetch attempt for the retry loop.
type Outcome int

// Attempt outcomes.
const (
	// OutcomeSuccess means the page was fetched and should be cached.
	OutcomeSuccess Outcome = iota
	// OutcomeTransient means the server pushed back (rate limit, forbidden,
	// unavailable) and the attempt may be retried after a backoff.
	OutcomeTransient
	// OutcomeFatal means retrying will not help.
	OutcomeFatal
)

// RetryPolicy is a pure classification and backoff schedule, kept free of
// sleeping so the fetch loop can be tested without real delays.
type RetryPolicy struct {
	MaxAttempts int
}

// NewRetryPolicy builds a policy with the default attempt budget.
func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3}
}

// Classify maps an HTTP status code to an attempt outcome.
func (p RetryPolicy) Classify(statusCode int) Outcome {
	switch statusCode {
	case http.StatusOK:
		return OutcomeSuccess
	case http.StatusTooManyRequests, http.StatusForbidden, http.StatusServiceUnavailable:
		return OutcomeTransient
	default:
		return OutcomeFatal
	}
}

// Backoff returns the wait before retrying a transient response. The attempt
// index is 0-based: 2s after the first attempt, 3s after the second.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)+1) * time.Second
}

// TransportWait returns the pause after a network-level failure.
func (p RetryPolicy) TransportWait() time.Duration {
	return time.Second
}
