package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Clock is a civil time of day.
type Clock struct {
	Hour   int
	Minute int
}

var (
	twelveHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	clockTextPattern  = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// To24Hour converts a 12-hour clock hour and its am/pm suffix to a 24-hour hour.
// 12am becomes 0, 12pm stays 12, any other pm hour gains 12.
func To24Hour(hour int, meridiem string) int {
	switch strings.ToLower(meridiem) {
	case "am":
		if hour == 12 {
			return 0
		}
	case "pm":
		if hour != 12 {
			return hour + 12
		}
	}
	return hour
}

// ParseClock parses a 12-hour clock time such as "10:00am" or "3:30 PM".
func ParseClock(s string) (Clock, error) {
	m := twelveHourPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("invalid clock time: %q", s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return Clock{}, fmt.Errorf("clock time out of range: %q", s)
	}
	return Clock{Hour: To24Hour(hour, m[3]), Minute: minute}, nil
}

// Valid reports whether the clock is a real time of day.
func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour <= 23 && c.Minute >= 0 && c.Minute <= 59
}

// Before reports whether c is earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Hour*60+c.Minute < other.Hour*60+other.Minute
}

// String formats the clock as 24-hour "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the 24-hour "HH:MM" form written by MarshalText.
func (c *Clock) UnmarshalText(text []byte) error {
	m := clockTextPattern.FindStringSubmatch(string(text))
	if m == nil {
		return fmt.Errorf("invalid clock: %q", text)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	parsed := Clock{Hour: hour, Minute: minute}
	if !parsed.Valid() {
		return fmt.Errorf("clock out of range: %q", text)
	}
	*c = parsed
	return nil
}
