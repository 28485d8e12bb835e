package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayCodes(t *testing.T) {
	tests := []struct {
		codes string
		want  DaySet
		ok    bool
	}{
		{"M", DaySet{time.Monday}, true},
		{"T", DaySet{time.Tuesday}, true},
		{"R", DaySet{time.Thursday}, true},
		{"Th", DaySet{time.Thursday}, true},
		{"Tu", DaySet{time.Tuesday}, true},
		{"TTh", DaySet{time.Tuesday, time.Thursday}, true},
		{"TuTh", DaySet{time.Tuesday, time.Thursday}, true},
		{"TR", DaySet{time.Tuesday, time.Thursday}, true},
		{"MWF", DaySet{time.Monday, time.Wednesday, time.Friday}, true},
		{"MW", DaySet{time.Monday, time.Wednesday}, true},
		{"WF", DaySet{time.Wednesday, time.Friday}, true},
		{"MTuWThF", DaySet{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, true},
		{"SaSu", DaySet{time.Saturday, time.Sunday}, true},
		{"MM", DaySet{time.Monday}, true},
		{"", nil, false},
		{"X", nil, false},
		{"MWX", nil, false},
		{"Lec", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.codes, func(t *testing.T) {
			got, ok := ParseDayCodes(tt.codes)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDayTime(t *testing.T) {
	dt, ok := ParseDayTime("MWF 10:00am-10:50am")
	require.True(t, ok)
	assert.Equal(t, "MWF", dt.DayCodes)
	assert.Equal(t, DaySet{time.Monday, time.Wednesday, time.Friday}, dt.Days)
	assert.Equal(t, Clock{10, 0}, dt.Start)
	assert.Equal(t, Clock{10, 50}, dt.End)

	dt, ok = ParseDayTime("TTh 3:30pm - 4:45pm EST")
	require.True(t, ok)
	assert.Equal(t, DaySet{time.Tuesday, time.Thursday}, dt.Days)
	assert.Equal(t, Clock{15, 30}, dt.Start)
	assert.Equal(t, Clock{16, 45}, dt.End)

	dt, ok = ParseDayTime("  T 9:30am - 10:45am EST")
	require.True(t, ok)
	assert.Equal(t, DaySet{time.Tuesday}, dt.Days)

	dt, ok = ParseDayTime("TuTh 11:00am-12:15pm")
	require.True(t, ok)
	assert.Equal(t, Clock{12, 15}, dt.End)
}

func TestParseDayTime_Rejects(t *testing.T) {
	tests := []string{
		"",
		"TBA",
		"MWF",
		"10:00am-10:50am",
		"XYZ 10:00am-10:50am",
		"MWF 10:50am-10:00am",
		"MWF 13:00pm-14:00pm",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			_, ok := ParseDayTime(text)
			assert.False(t, ok)
		})
	}
}

func TestHasTimeAndTBA(t *testing.T) {
	assert.True(t, HasTime("MWF 10:00am-10:50am"))
	assert.False(t, HasTime("Time TBA"))
	assert.True(t, IsTBA("TBA"))
	assert.True(t, IsTBA("Class time to be announced"))
	assert.False(t, IsTBA("TTh 3:30pm-4:45pm"))
}
