package service

import (
	"fmt"
	"sync"
	"time"
)

// SlidingWindow is an in-memory per-key rate limiter that allows at
// most limit events per rolling window. It is safe for concurrent use.
// Stale keys are automatically cleaned up. State is process-local and
// not shared across instances.
type SlidingWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewSlidingWindow creates a limiter allowing limit events per key per
// rolling window. It starts a background goroutine that periodically
// removes keys with no recent activity.
func NewSlidingWindow(limit int, window time.Duration) *SlidingWindow {
	sw := &SlidingWindow{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	go sw.cleanup()
	return sw
}

// Allow reports whether the given key may proceed, recording the event
// when it does. The nth+1 event inside one window is denied and not
// recorded, so a rejected request does not extend the caller's window.
func (sw *SlidingWindow) Allow(key string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	recent := pruneOlder(sw.hits[key], now.Add(-sw.window))

	if len(recent) >= sw.limit {
		sw.hits[key] = recent
		return false
	}

	sw.hits[key] = append(recent, now)
	return true
}

// Describe returns a human-readable form of the quota, e.g. "5 per 1 minute".
func (sw *SlidingWindow) Describe() string {
	switch {
	case sw.window == time.Minute:
		return fmt.Sprintf("%d per 1 minute", sw.limit)
	case sw.window%time.Minute == 0:
		return fmt.Sprintf("%d per %d minutes", sw.limit, sw.window/time.Minute)
	default:
		return fmt.Sprintf("%d per %d seconds", sw.limit, int(sw.window.Seconds()))
	}
}

func pruneOlder(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// cleanup runs periodically and removes keys with no hits inside the
// last two windows.
func (sw *SlidingWindow) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		sw.mu.Lock()
		cutoff := sw.now().Add(-2 * sw.window)
		for key, hits := range sw.hits {
			if recent := pruneOlder(hits, cutoff); len(recent) == 0 {
				delete(sw.hits, key)
			} else {
				sw.hits[key] = recent
			}
		}
		sw.mu.Unlock()
	}
}
