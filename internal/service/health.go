package service

import (
	"sync"
	"time"
)

// HealthStatus is the outcome of a health check. Fresh checks carry the
// check timestamp; cached checks carry the time left in the window.
type HealthStatus struct {
	Fresh         bool
	Timestamp     time.Time
	TimeRemaining time.Duration
}

// HealthService reports service health with a cache window: the first
// check (and any check after the window expires) is fresh and resets
// the window; checks inside the window report the cached variant. The
// state lives on the service, never at package scope, so tests can
// reset it by constructing a new instance.
type HealthService struct {
	mu        sync.Mutex
	ttl       time.Duration
	lastCheck time.Time
	now       func() time.Time
}

// NewHealthService creates a HealthService with the given cache window.
// now is the clock; pass time.Now outside of tests.
func NewHealthService(ttl time.Duration, now func() time.Time) *HealthService {
	return &HealthService{ttl: ttl, now: now}
}

// Check runs a health check, returning the fresh variant when the cache
// window has expired and the cached variant otherwise.
func (s *HealthService) Check() HealthStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.now()
	if current.Sub(s.lastCheck) >= s.ttl {
		s.lastCheck = current
		return HealthStatus{Fresh: true, Timestamp: current}
	}

	return HealthStatus{
		Fresh:         false,
		TimeRemaining: s.ttl - current.Sub(s.lastCheck),
	}
}
