package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Season names used as keys in a Terms table.
const (
	SeasonFall   = "fall"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonWinter = "winter"
)

// DefaultSemester is the label used when no semester can be found on the page.
const DefaultSemester = "Fall 2024"

// MonthDay is a month and day without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// String formats the month-day as "MM-DD".
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// TermDates is the instructional period of a season.
type TermDates struct {
	Start MonthDay
	End   MonthDay
}

// Terms maps a season keyword to its instructional dates.
type Terms map[string]TermDates

// DefaultTerms follows the institution's typical academic calendar.
var DefaultTerms = Terms{
	SeasonFall:   {Start: MonthDay{time.August, 28}, End: MonthDay{time.December, 13}},
	SeasonSpring: {Start: MonthDay{time.January, 22}, End: MonthDay{time.May, 10}},
	SeasonSummer: {Start: MonthDay{time.June, 3}, End: MonthDay{time.August, 9}},
}

// DateRange is an inclusive range of civil dates. Both ends are midnight UTC and
// carry no meaningful time component.
type DateRange struct {
	Start time.Time
	End   time.Time
}

var (
	semesterPattern = regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s+(\d{4})\b`)
	yearPattern     = regexp.MustCompile(`\d{4}`)
	monthDayPattern = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)
)

// FindSemester returns the first "<Season> <year>" label in text, with the season
// in title case.
func FindSemester(text string) (string, bool) {
	m := semesterPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	season := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
	return season + " " + m[2], true
}

// ParseMonthDay parses "MM-DD".
func ParseMonthDay(s string) (MonthDay, error) {
	m := monthDayPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return MonthDay{}, fmt.Errorf("invalid month-day: %q", s)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return MonthDay{}, fmt.Errorf("month-day out of range: %q", s)
	}
	return MonthDay{Month: time.Month(month), Day: day}, nil
}

// IsSeason reports whether name is a season keyword a Terms table can hold.
func IsSeason(name string) bool {
	switch strings.ToLower(name) {
	case SeasonFall, SeasonSpring, SeasonSummer, SeasonWinter:
		return true
	}
	return false
}

// Season returns the season keyword found in a semester label. Labels without a
// recognized season resolve to fall.
func Season(semester string) string {
	lower := strings.ToLower(semester)
	switch {
	case strings.Contains(lower, SeasonWinter):
		return SeasonWinter
	case strings.Contains(lower, SeasonFall):
		return SeasonFall
	case strings.Contains(lower, SeasonSpring):
		return SeasonSpring
	case strings.Contains(lower, SeasonSummer):
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// Range resolves a semester label to its instructional dates. The year comes from
// the first four-digit number in the label, or from now when the label has none.
func (t Terms) Range(semester string, now time.Time) DateRange {
	year := now.Year()
	if match := yearPattern.FindString(semester); match != "" {
		year, _ = strconv.Atoi(match)
	}

	dates, ok := t.lookup(Season(semester))
	if !ok {
		// Winter has no built-in dates and runs on the fall term unless configured.
		dates, _ = t.lookup(SeasonFall)
	}

	return DateRange{
		Start: time.Date(year, dates.Start.Month, dates.Start.Day, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, dates.End.Month, dates.End.Day, 0, 0, 0, 0, time.UTC),
	}
}

// lookup prefers the table's own dates and falls back to DefaultTerms.
func (t Terms) lookup(season string) (TermDates, bool) {
	if dates, ok := t[season]; ok {
		return dates, true
	}
	dates, ok := DefaultTerms[season]
	return dates, ok
}

// SemesterDateRange resolves a semester label with DefaultTerms.
func SemesterDateRange(semester string, now time.Time) DateRange {
	return DefaultTerms.Range(semester, now)
}
