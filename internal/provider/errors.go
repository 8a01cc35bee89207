package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTranscriptUnavailable marks a review source without accessible text
var ErrTranscriptUnavailable = errors.New("transcript unavailable")

// RecoverableError is a transient provider failure (timeout, rate limit,
// network). It is retried with bounded backoff; after exhausting retries it
// degrades to "no evidence from this provider", never a fatal error.
type RecoverableError struct {
	Provider string
	Err      error
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("%s: recoverable: %v", e.Provider, e.Err)
}

func (e *RecoverableError) Unwrap() error { return e.Err }

// MalformedResponseError is unparseable analyzer or provider output. It is
// logged with its payload and treated as an empty result for that call.
type MalformedResponseError struct {
	Provider string
	Payload  string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	payload := e.Payload
	if len(payload) > 200 {
		payload = payload[:200] + "..."
	}
	return fmt.Sprintf("%s: malformed response: %v (payload: %q)", e.Provider, e.Err, payload)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsRecoverable reports whether an error should be retried
func IsRecoverable(err error) bool {
	var re *RecoverableError
	if errors.As(err, &re) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "rate limit")
}

// IsMalformed reports whether an error is unparseable provider output
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

// retrySleep is the sleep function used between retries (injectable for tests)
var retrySleep = func(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Retry runs fn up to maxAttempts times with exponential backoff on
// recoverable errors. Non-recoverable errors return immediately.
func Retry(ctx context.Context, maxAttempts int, fn func(context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !IsRecoverable(err) {
			return err
		}
		if attempt < maxAttempts-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if sleepErr := retrySleep(ctx, backoff); sleepErr != nil {
				return sleepErr
			}
		}
	}
	return err
}
