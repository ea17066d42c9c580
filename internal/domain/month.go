package domain

import (
	"fmt"
	"time"
)

// MonthKeyLayout is the time layout used to render a MonthKey (e.g., "2026-03").
const MonthKeyLayout = "2006-01"

// WindowSize is the number of months fetched per scrape.
const WindowSize = 3

// MonthKey identifies one monthly schedule page.
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey returns the MonthKey containing t, in t's location.
func NewMonthKey(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey parses a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(MonthKeyLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("parse month key %q: %w", s, err)
	}
	return NewMonthKey(t), nil
}

// String renders the key as "YYYY-MM".
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// AddMonths returns the key n calendar months away. n may be negative.
func (m MonthKey) AddMonths(n int) MonthKey {
	// Day 1 never overflows into the next month, unlike time.AddDate on the 31st.
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return NewMonthKey(t)
}

// MonthWindow returns the previous, current and next month relative to now, in that order.
func MonthWindow(now time.Time) [WindowSize]MonthKey {
	current := NewMonthKey(now)
	return [WindowSize]MonthKey{
		current.AddMonths(-1),
		current,
		current.AddMonths(1),
	}
}
