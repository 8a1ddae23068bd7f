package redis

import (
	"context"
	"strconv"
	"time"
)

const attemptKeyPrefix = "signin_attempts:"

// AttemptLimiter counts failed sign-in attempts per email within a rolling
// window. It is advisory: callers are expected to fail open when Redis is
// unavailable, so a broken cache never locks everyone out.
type AttemptLimiter struct {
	maxAttempts int64
	window      time.Duration
}

// NewAttemptLimiter creates a limiter allowing maxAttempts failures per window.
func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// TooMany reports whether the email has exhausted its failure budget.
func (l *AttemptLimiter) TooMany(ctx context.Context, email string) (bool, error) {
	val, err := Get(ctx, attemptKeyPrefix+email)
	if err != nil {
		// Missing key counts as zero attempts.
		return false, nil
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, nil
	}
	return count >= l.maxAttempts, nil
}

// RecordFailure registers one failed attempt and starts the window on the
// first failure.
func (l *AttemptLimiter) RecordFailure(ctx context.Context, email string) error {
	count, err := Incr(ctx, attemptKeyPrefix+email)
	if err != nil {
		return err
	}
	if count == 1 {
		return Expire(ctx, attemptKeyPrefix+email, l.window)
	}
	return nil
}

// Reset clears the failure count after a successful sign-in.
func (l *AttemptLimiter) Reset(ctx context.Context, email string) error {
	return Del(ctx, attemptKeyPrefix+email)
}
