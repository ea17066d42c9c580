// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/crewlink/crew-schedule-scraper/internal/domain"
	"github.com/crewlink/crew-schedule-scraper/internal/infrastructure/timeutil"
)

// Fixture names under test/testdata.
const (
	EventsSemantic = "events_semantic.json"
	EventsCalendar = "events_calendar.json"
	FlatList       = "flat_list.json"
	Unrecognized   = "unrecognized.json"
	TenantsYAML    = "tenants.yaml"
)

// TestdataPath returns the absolute path of a file in the testdata directory.
func TestdataPath(t *testing.T, filename string) string {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	return filepath.Join(projectRoot, "test", "testdata", filename)
}

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// FixedClock returns a UTC clock stopped at the given RFC3339 time.
func FixedClock(t *testing.T, timeStr string) *timeutil.MockClock {
	t.Helper()
	return timeutil.NewMockClock(MustParseTime(t, timeStr))
}

// Window returns the month keys ("YYYY-MM") a scrape at now fetches, in order.
func Window(now time.Time) []string {
	window := domain.MonthWindow(now)
	keys := make([]string, 0, len(window))
	for _, m := range window {
		keys = append(keys, m.String())
	}
	return keys
}

// Credentials builds credentials for a tenant.
func Credentials(tenant, userID, password string) domain.Credentials {
	return domain.Credentials{UserID: userID, Password: password, TenantCode: tenant}
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}
