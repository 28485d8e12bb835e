package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayCodesToRecurrence(t *testing.T) {
	tests := []struct {
		codes string
		want  []string
	}{
		{"MWF", []string{"MO", "WE", "FR"}},
		{"MW", []string{"MO", "WE"}},
		{"WF", []string{"WE", "FR"}},
		{"TTh", []string{"TU", "TH"}},
		{"TuTh", []string{"TU", "TH"}},
		{"TR", []string{"TU", "TH"}},
		{"R", []string{"TH"}},
		{"Th", []string{"TH"}},
		{"T", []string{"TU"}},
		{"Tu", []string{"TU"}},
		{"MTWRF", []string{"MO", "TU", "WE", "TH", "FR"}},
		{"SaSu", []string{"SA", "SU"}},
		{"FM", []string{"MO", "FR"}},
		{"MM", []string{"MO"}},
		{"MXW", []string{"MO", "WE"}},
		{"X", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.codes, func(t *testing.T) {
			assert.Equal(t, tt.want, DayCodesToRecurrence(tt.codes))
		})
	}
}

func TestDayCodesToRecurrence_OneTokenPerDay(t *testing.T) {
	inputs := map[string]int{
		"M": 1, "TuTh": 2, "MWF": 3, "TWR": 3, "MTuWThF": 5, "SaSu": 2, "RF": 2,
	}

	for codes, days := range inputs {
		got := DayCodesToRecurrence(codes)
		assert.Len(t, got, days, codes)

		seen := make(map[string]bool)
		for _, tok := range got {
			assert.False(t, seen[tok], "%s repeats %s", codes, tok)
			seen[tok] = true
		}
	}
}

func TestRecurrenceDays(t *testing.T) {
	got := RecurrenceDays([]time.Weekday{time.Sunday, time.Friday, time.Monday, time.Friday})
	assert.Equal(t, []string{"MO", "FR", "SU"}, got)
	assert.Empty(t, RecurrenceDays(nil))
}

func TestFirstOccurrence(t *testing.T) {
	// Wednesday
	start := time.Date(2024, time.August, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days []time.Weekday
		want time.Time
	}{
		{"anchors on lowest weekday", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC)},
		{"start day matches", []time.Weekday{time.Wednesday}, start},
		{"sunday is lowest", []time.Weekday{time.Saturday, time.Sunday}, time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)},
		{"order does not matter", []time.Weekday{time.Thursday, time.Tuesday}, time.Date(2024, time.September, 3, 0, 0, 0, 0, time.UTC)},
		{"empty set returns start", nil, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstOccurrence(start, tt.days))
		})
	}
}

func TestFirstOccurrence_WithinAWeek(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		start := base.AddDate(0, 0, offset)
		for d := time.Sunday; d <= time.Saturday; d++ {
			got := FirstOccurrence(start, []time.Weekday{d})
			assert.Equal(t, d, got.Weekday())
			assert.False(t, got.Before(start))
			assert.LessOrEqual(t, got.Sub(start), 6*24*time.Hour)
		}
	}
}
