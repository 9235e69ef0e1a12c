package services

import (
	"sync"
	"time"
)

const (
	defaultMaxLoginFailures = 5
	defaultLoginWindow      = 15 * time.Minute
)

// LoginLimiter counts failed sign-ins per email over a sliding window.
type LoginLimiter struct {
	failures    map[string][]time.Time
	maxFailures int
	window      time.Duration
	mutex       sync.Mutex
}

// NewLoginLimiter creates a limiter allowing maxFailures failed attempts per window.
func NewLoginLimiter(maxFailures int, window time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxLoginFailures
	}
	if window <= 0 {
		window = defaultLoginWindow
	}
	return &LoginLimiter{
		failures:    make(map[string][]time.Time),
		maxFailures: maxFailures,
		window:      window,
	}
}

// Blocked reports whether key has used up its failed attempts at now.
func (l *LoginLimiter) Blocked(key string, now time.Time) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	recent := l.prune(key, now)
	return len(recent) >= l.maxFailures
}

// RecordFailure records a failed attempt for key.
func (l *LoginLimiter) RecordFailure(key string, now time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.failures[key] = append(l.prune(key, now), now)
}

// Reset clears the failures for key after a successful sign-in.
func (l *LoginLimiter) Reset(key string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.failures, key)
}

// prune drops timestamps outside the window. Caller holds the mutex.
func (l *LoginLimiter) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	timestamps := l.failures[key]

	filtered := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			filtered = append(filtered, ts)
		}
	}

	if len(filtered) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = filtered
	return filtered
}
