package schedule

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DaySet is an ordered set of weekdays. Order is the order the days were
// encountered; a weekday never appears twice.
type DaySet []time.Weekday

var weekdayByAbbrev = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// Abbrev returns the three-letter code for a weekday ("Mon", "Tue", ...).
func Abbrev(d time.Weekday) string {
	return d.String()[:3]
}

// ParseAbbrev is the inverse of Abbrev.
func ParseAbbrev(s string) (time.Weekday, bool) {
	d, ok := weekdayByAbbrev[s]
	return d, ok
}

// Add appends d unless it is already present.
func (s DaySet) Add(d time.Weekday) DaySet {
	if s.Contains(d) {
		return s
	}
	return append(s, d)
}

// Contains reports whether d is in the set.
func (s DaySet) Contains(d time.Weekday) bool {
	for _, day := range s {
		if day == d {
			return true
		}
	}
	return false
}

// Codes returns the three-letter codes in set order.
func (s DaySet) Codes() []string {
	codes := make([]string, 0, len(s))
	for _, d := range s {
		codes = append(codes, Abbrev(d))
	}
	return codes
}

func (s DaySet) String() string {
	return strings.Join(s.Codes(), ",")
}

// MarshalJSON writes the set as a list of three-letter codes.
func (s DaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Codes())
}

// UnmarshalJSON reads a list of three-letter codes.
func (s *DaySet) UnmarshalJSON(data []byte) error {
	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return err
	}
	var set DaySet
	for _, code := range codes {
		d, ok := ParseAbbrev(code)
		if !ok {
			return fmt.Errorf("unknown weekday: %q", code)
		}
		set = set.Add(d)
	}
	*s = set
	return nil
}
