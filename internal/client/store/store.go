// Package store implements the client's persistent key/value store: a
// cookie jar with one expiry per key.
//
// Writes to different keys are independent. Nothing ties a group of Set
// calls together, so a crash half way through leaves whatever was written;
// readers of multi-key records (see package session) must cope with that.
package store

import (
	"context"
	"time"
)

// Store is the cookie-jar contract consumed by the session layer.
//
// Get reports ok=false for keys that were never set, were cleared, or
// have expired. Clear ignores keys that are absent.
type Store interface {
	Set(ctx context.Context, key, value string, ttlDays int) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Clear(ctx context.Context, keys ...string) error
}

// Clock supplies the current time for expiry checks.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// expiry returns the instant a value written at now with ttlDays expires.
// A non-positive TTL yields an instant that is already in the past, which
// is how a cookie jar deletes a key.
func expiry(now time.Time, ttlDays int) time.Time {
	if ttlDays <= 0 {
		return now.Add(-time.Second)
	}
	return now.AddDate(0, 0, ttlDays)
}
