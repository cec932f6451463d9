package summitweb

import (
	"sync"
	"time"
)

// LoginLimiter throttles failed admin logins per client IP. Only failures are
// recorded, so a legitimate admin is never locked out by their own successful
// sessions.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
}

// NewLoginLimiter creates a limiter allowing max failures per IP per window.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
	}
	go l.reap()
	return l
}

// Check reports whether the IP is still under the failure limit. It records
// nothing; call Record when the login actually fails.
func (l *LoginLimiter) Check(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.recentLocked(ip, time.Now())
	l.failures[ip] = recent
	return len(recent) < l.max
}

// Record registers a failed login attempt for the given IP.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.failures[ip] = append(l.failures[ip], time.Now())
	l.mu.Unlock()
}

// recentLocked returns the failures for ip still inside the window, reusing
// the backing array. Callers must hold mu.
func (l *LoginLimiter) recentLocked(ip string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	recent := l.failures[ip][:0]
	for _, ts := range l.failures[ip] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	return recent
}

// reap drops idle IPs so the map stays bounded.
func (l *LoginLimiter) reap() {
	for range time.Tick(l.window) {
		now := time.Now()
		l.mu.Lock()
		for ip := range l.failures {
			recent := l.recentLocked(ip, now)
			if len(recent) == 0 {
				delete(l.failures, ip)
				continue
			}
			l.failures[ip] = recent
		}
		l.mu.Unlock()
	}
}
