package cli

import (
	"testing"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

func codes(meetings []schedule.MeetingRecord) []string {
	out := make([]string, len(meetings))
	for i, m := range meetings {
		out[i] = m.CourseCode + "/" + m.DayCodes
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortFixture() []schedule.MeetingRecord {
	return []schedule.MeetingRecord{
		meeting("MATH140", "0221", "TuTh", schedule.DaySet{time.Tuesday, time.Thursday}, 11),
		meeting("CMSC131", "0101", "F", schedule.DaySet{time.Friday}, 8),
		meeting("ENGL101", "0301", "Su", schedule.DaySet{time.Sunday}, 9),
		meeting("CMSC131", "0101", "MWF", schedule.DaySet{time.Monday, time.Wednesday, time.Friday}, 10),
	}
}

func TestSortMeetings(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByPage, []string{"MATH140/TuTh", "CMSC131/F", "ENGL101/Su", "CMSC131/MWF"}},
		{SortByCourse, []string{"CMSC131/MWF", "CMSC131/F", "ENGL101/Su", "MATH140/TuTh"}},
		{SortByDay, []string{"CMSC131/MWF", "MATH140/TuTh", "CMSC131/F", "ENGL101/Su"}},
		{SortByTime, []string{"CMSC131/F", "ENGL101/Su", "CMSC131/MWF", "MATH140/TuTh"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			meetings := sortFixture()
			sortMeetings(meetings, tt.order)
			if got := codes(meetings); !equal(got, tt.want) {
				t.Errorf("sortMeetings(%q) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, in := range []string{"", "course", " Day ", "TIME"} {
		if _, err := parseSortOrder(in); err != nil {
			t.Errorf("parseSortOrder(%q) error = %v", in, err)
		}
	}
	if _, err := parseSortOrder("room"); err == nil {
		t.Error("expected error for unknown sort order")
	}
}

func TestFirstDay(t *testing.T) {
	tests := []struct {
		days schedule.DaySet
		want int
	}{
		{schedule.DaySet{time.Monday}, 0},
		{schedule.DaySet{time.Sunday}, 6},
		{schedule.DaySet{time.Sunday, time.Thursday}, 3},
		{nil, 7},
	}
	for _, tt := range tests {
		if got := firstDay(tt.days); got != tt.want {
			t.Errorf("firstDay(%v) = %d, want %d", tt.days, got, tt.want)
		}
	}
}
