package schedule

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// DefaultLocation is used when a meeting's room cannot be found.
const DefaultLocation = "TBA"

// MeetingRecord represents one weekly recurring class meeting
type MeetingRecord struct {
	CourseCode   string `json:"course_code"`
	Section      string `json:"section"`
	Title        string `json:"title"`
	DayCodes     string `json:"day_codes"` // Shorthand as printed on the page, e.g. "MWF"
	Days         DaySet `json:"days"`
	Start        Clock  `json:"start"`
	End          Clock  `json:"end"`
	Location     string `json:"location"`
	ActivityType string `json:"activity_type,omitempty"`
}

// ScheduleData is the result of one extraction: the meetings in page order plus the
// detected semester label.
type ScheduleData struct {
	Meetings []MeetingRecord `json:"meetings"`
	Semester string          `json:"semester"`
	Strategy string          `json:"strategy,omitempty"` // Which discovery strategy produced the meetings
}

// GenerateKey creates a deterministic key for a meeting based on the fields that
// identify one physical meeting
func GenerateKey(courseCode, section string, days DaySet, start, end Clock, location string) string {
	h := sha1.New()
	h.Write([]byte(strings.Join([]string{
		courseCode,
		section,
		days.String(),
		start.String(),
		end.String(),
		location,
	}, "|")))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Key returns the identity key of the meeting.
func (m MeetingRecord) Key() string {
	return GenerateKey(m.CourseCode, m.Section, m.Days, m.Start, m.End, m.Location)
}

// Summary renders the meeting the way calendar clients show it,
// e.g. "CMSC131 (0101) - Object-Oriented Programming I".
func (m MeetingRecord) Summary() string {
	label := m.CourseCode
	if m.Section != "" {
		label = fmt.Sprintf("%s (%s)", m.CourseCode, m.Section)
	}
	return fmt.Sprintf("%s - %s", label, m.Title)
}

// Description returns the long form used for calendar descriptions.
func (m MeetingRecord) Description() string {
	desc := fmt.Sprintf("%s - %s", m.CourseCode, m.Title)
	if m.ActivityType != "" {
		desc = fmt.Sprintf("%s (%s)", desc, m.ActivityType)
	}
	return desc
}

// Empty reports whether the extraction produced no meetings.
func (s ScheduleData) Empty() bool {
	return len(s.Meetings) == 0
}
