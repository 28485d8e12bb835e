package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage   SortOrder = ""
	SortByCourse SortOrder = "course"
	SortByDay    SortOrder = "day"
	SortByTime   SortOrder = "time"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByPage, SortByCourse, SortByDay, SortByTime:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'course', 'day' or 'time')", s)
}

// sortMeetings sorts meetings in place; SortByPage keeps page order
func sortMeetings(meetings []schedule.MeetingRecord, sortOrder SortOrder) {
	switch sortOrder {
	case SortByCourse:
		sort.SliceStable(meetings, func(i, j int) bool {
			if meetings[i].CourseCode != meetings[j].CourseCode {
				return meetings[i].CourseCode < meetings[j].CourseCode
			}
			if meetings[i].Section != meetings[j].Section {
				return meetings[i].Section < meetings[j].Section
			}
			// Same section, sort by week position
			return compareByWeek(meetings[i], meetings[j])
		})
	case SortByDay:
		sort.SliceStable(meetings, func(i, j int) bool {
			return compareByWeek(meetings[i], meetings[j])
		})
	case SortByTime:
		sort.SliceStable(meetings, func(i, j int) bool {
			if meetings[i].Start != meetings[j].Start {
				return meetings[i].Start.Before(meetings[j].Start)
			}
			return compareByWeek(meetings[i], meetings[j])
		})
	}
}

// compareByWeek orders meetings by their first day of the week (Monday first),
// then start time, then course code
func compareByWeek(i, j schedule.MeetingRecord) bool {
	di, dj := firstDay(i.Days), firstDay(j.Days)
	if di != dj {
		return di < dj
	}
	if i.Start != j.Start {
		return i.Start.Before(j.Start)
	}
	return i.CourseCode < j.CourseCode
}

// firstDay returns the earliest day of the set counting Monday as 0 and Sunday as 6.
// Meetings without days sort last.
func firstDay(days schedule.DaySet) int {
	first := 7
	for _, d := range days {
		pos := (int(d) + 6) % 7
		if pos < first {
			first = pos
		}
	}
	return first
}
