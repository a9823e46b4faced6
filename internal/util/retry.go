// ABOUTME: Backoff helper for retried API calls
// ABOUTME: Used by the embedding client; generation calls are single-attempt
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay between attempts
const maxBackoff = 30 * time.Second

// CalculateBackoff returns the delay before the given retry attempt:
// exponential in the attempt number with up to 25% random jitter.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}

	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
