package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want [WindowSize]string
	}{
		{
			name: "mid year",
			now:  time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
			want: [WindowSize]string{"2026-02", "2026-03", "2026-04"},
		},
		{
			name: "january crosses into previous year",
			now:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: [WindowSize]string{"2025-12", "2026-01", "2026-02"},
		},
		{
			name: "december crosses into next year",
			now:  time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: [WindowSize]string{"2025-11", "2025-12", "2026-01"},
		},
		{
			name: "31st does not skip short months",
			now:  time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC),
			want: [WindowSize]string{"2026-02", "2026-03", "2026-04"},
		},
		{
			name: "uses the location of now",
			now:  time.Date(2026, time.May, 1, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)),
			want: [WindowSize]string{"2026-04", "2026-05", "2026-06"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := MonthWindow(tt.now)
			var got [WindowSize]string
			for i, m := range window {
				got[i] = m.String()
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthKey_AddMonths(t *testing.T) {
	m := MonthKey{Year: 2026, Month: time.January}

	assert.Equal(t, MonthKey{Year: 2025, Month: time.December}, m.AddMonths(-1))
	assert.Equal(t, MonthKey{Year: 2026, Month: time.February}, m.AddMonths(1))
	assert.Equal(t, MonthKey{Year: 2027, Month: time.January}, m.AddMonths(12))
	assert.Equal(t, m, m.AddMonths(0))
}

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		input   string
		want    MonthKey
		wantErr bool
	}{
		{input: "2026-03", want: MonthKey{Year: 2026, Month: time.March}},
		{input: "1999-12", want: MonthKey{Year: 1999, Month: time.December}},
		{input: "2026-13", wantErr: true},
		{input: "2026/03", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonthKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}
