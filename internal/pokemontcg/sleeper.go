package pokemontcg

import (
	"context"
	"time"
)

// Sleeper pauses between requests. The tracker's rate-limit courtesy and
// backoff all go through it, so tests can substitute a recorder.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and returns early with the context's
// error when ctx is cancelled.
type TimerSleeper struct{}

// Sleep blocks for d or until ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
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

// RetryPolicy controls how often and how long the resolver retries a
// strategy.
type RetryPolicy struct {
	// MaxAttempts is the number of requests per strategy.
	MaxAttempts int

	// BusyBase and BusyStep give the wait after a throttling or server
	// error status: BusyBase + BusyStep*attempt.
	BusyBase time.Duration
	BusyStep time.Duration

	// TransportDelay is the wait after a network failure or an unreadable
	// response.
	TransportDelay time.Duration
}

// DefaultRetryPolicy returns three attempts per strategy, 5s/10s/15s waits
// while the API is busy and 2s after transport failures.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		BusyBase:       5 * time.Second,
		BusyStep:       5 * time.Second,
		TransportDelay: 2 * time.Second,
	}
}

// BusyWait returns the wait before retrying after the given zero-based
// attempt hit a transient status.
func (p RetryPolicy) BusyWait(attempt int) time.Duration {
	return p.BusyBase + time.Duration(attempt)*p.BusyStep
}
