package calendar

import (
	"sort"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

// recurrenceTokens maps weekdays to their RRULE BYDAY tokens.
var recurrenceTokens = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// Order of BYDAY tokens in generated rules.
var canonicalOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// Compound day strings matched whole before scanning.
var compoundDays = map[string][]time.Weekday{
	"MWF":  {time.Monday, time.Wednesday, time.Friday},
	"MW":   {time.Monday, time.Wednesday},
	"WF":   {time.Wednesday, time.Friday},
	"TTh":  {time.Tuesday, time.Thursday},
	"TuTh": {time.Tuesday, time.Thursday},
}

var (
	twoLetterDays = map[string]time.Weekday{
		"Tu": time.Tuesday,
		"Th": time.Thursday,
		"Sa": time.Saturday,
		"Su": time.Sunday,
	}
	oneLetterDays = map[byte]time.Weekday{
		'M': time.Monday,
		'T': time.Tuesday,
		'W': time.Wednesday,
		'R': time.Thursday,
		'F': time.Friday,
	}
)

// DayCodesToRecurrence maps a day-code string such as "MWF" or "TuTh" to BYDAY
// tokens in canonical order. Unrecognized letters are ignored.
func DayCodesToRecurrence(codes string) []string {
	if days, ok := compoundDays[codes]; ok {
		return RecurrenceDays(days)
	}

	var days schedule.DaySet
	for i := 0; i < len(codes); {
		if i+2 <= len(codes) {
			if d, ok := twoLetterDays[codes[i:i+2]]; ok {
				days = days.Add(d)
				i += 2
				continue
			}
		}
		if d, ok := oneLetterDays[codes[i]]; ok {
			days = days.Add(d)
		}
		i++
	}
	return RecurrenceDays(days)
}

// RecurrenceDays returns the BYDAY tokens for a set of weekdays, Monday first,
// without repeats.
func RecurrenceDays(days []time.Weekday) []string {
	var tokens []string
	for _, d := range canonicalOrder {
		for _, want := range days {
			if want == d {
				tokens = append(tokens, recurrenceTokens[d])
				break
			}
		}
	}
	return tokens
}

// recurrenceWeekdays converts BYDAY tokens back to weekday numbers, ascending.
func recurrenceWeekdays(tokens []string) []time.Weekday {
	var days []time.Weekday
	for _, tok := range tokens {
		for d, t := range recurrenceTokens {
			if t == tok {
				days = append(days, d)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// FirstOccurrence returns the first date on or after start that falls on the
// lowest-numbered weekday in days (Sunday is 0). With no days it returns start.
func FirstOccurrence(start time.Time, days []time.Weekday) time.Time {
	if len(days) == 0 {
		return start
	}

	anchor := days[0]
	for _, d := range days[1:] {
		if d < anchor {
			anchor = d
		}
	}

	date := start
	for i := 0; i < 7 && date.Weekday() != anchor; i++ {
		date = date.AddDate(0, 0, 1)
	}
	return date
}
