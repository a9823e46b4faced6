// ABOUTME: Tests for backoff calculation
// ABOUTME: Verifies growth, jitter bounds, and the cap
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroForFirstAttempt(t *testing.T) {
	if got := CalculateBackoff(time.Second, 0); got != 0 {
		t.Errorf("CalculateBackoff(1s, 0) = %v, want 0", got)
	}
	if got := CalculateBackoff(time.Second, -1); got != 0 {
		t.Errorf("CalculateBackoff(1s, -1) = %v, want 0", got)
	}
}

func TestCalculateBackoff_GrowsWithAttempts(t *testing.T) {
	base := 100 * time.Millisecond
	// Jitter is ±25%, so compare against conservative bounds.
	first := CalculateBackoff(base, 1)
	if first < 150*time.Millisecond || first > 250*time.Millisecond {
		t.Errorf("attempt 1 backoff = %v, want ~200ms ±25%%", first)
	}
	second := CalculateBackoff(base, 2)
	if second < 300*time.Millisecond || second > 500*time.Millisecond {
		t.Errorf("attempt 2 backoff = %v, want ~400ms ±25%%", second)
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	for _, attempt := range []int{10, 30, 100} {
		got := CalculateBackoff(2*time.Second, attempt)
		if got > 38*time.Second {
			t.Errorf("attempt %d backoff = %v, want capped near 30s", attempt, got)
		}
		if got <= 0 {
			t.Errorf("attempt %d backoff = %v, want positive", attempt, got)
		}
	}
}
