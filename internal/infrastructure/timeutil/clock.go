// Package timeutil provides the clock abstraction used to pick the schedule month window.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time.Now() for testability.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock uses the actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ZonedClock reports another clock's time in a fixed location, so the
// calendar month follows the portal's zone rather than the host's.
type ZonedClock struct {
	base Clock
	loc  *time.Location
}

// NewZonedClock wraps base. A nil location means UTC.
func NewZonedClock(base Clock, loc *time.Location) *ZonedClock {
	if loc == nil {
		loc = time.UTC
	}
	return &ZonedClock{base: base, loc: loc}
}

// Now returns the base clock's time in the configured location.
func (z *ZonedClock) Now() time.Time {
	return z.base.Now().In(z.loc)
}

// Location returns the clock's location.
func (z *ZonedClock) Location() *time.Location {
	return z.loc
}

// MockClock returns a controllable time for testing.
// It is safe for concurrent use.
type MockClock struct {
	mu        sync.RWMutex
	fixedTime time.Time
}

// NewMockClock creates a mock clock with the given fixed time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{fixedTime: t}
}

// NewMockClockFromString creates a mock clock from an RFC3339 time string.
// Panics if the time string is invalid (for use in tests only).
func NewMockClockFromString(timeStr string) *MockClock {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return &MockClock{fixedTime: t}
}

// Now returns the fixed time.
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fixedTime
}

// Set sets the mock clock to a specific time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.fixedTime = t
	m.mu.Unlock()
}

// Ensure interfaces are implemented.
var (
	_ Clock = (*RealClock)(nil)
	_ Clock = (*ZonedClock)(nil)
	_ Clock = (*MockClock)(nil)
)
