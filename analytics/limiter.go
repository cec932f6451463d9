package analytics

import (
	"sync"
	"time"
)

// rateLimiter enforces a sliding-window request cap per key (client IP).
// State for idle keys is reaped by a background ticker so the map cannot
// grow without bound under churning addresses.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string][]time.Time
	limit   int
	window  time.Duration
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
	go rl.reap()
	return rl
}

// allow reports whether key may make another request now, and counts it if so.
func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := pruneBefore(rl.clients[key], now.Add(-rl.window))
	if len(recent) >= rl.limit {
		rl.clients[key] = recent
		return false
	}
	rl.clients[key] = append(recent, now)
	return true
}

func (rl *rateLimiter) reap() {
	for range time.Tick(rl.window) {
		cutoff := time.Now().Add(-rl.window)
		rl.mu.Lock()
		for key, stamps := range rl.clients {
			recent := pruneBefore(stamps, cutoff)
			if len(recent) == 0 {
				delete(rl.clients, key)
				continue
			}
			rl.clients[key] = recent
		}
		rl.mu.Unlock()
	}
}

// pruneBefore drops timestamps at or before cutoff, reusing the backing array.
func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	recent := stamps[:0]
	for _, ts := range stamps {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}
	return recent
}
