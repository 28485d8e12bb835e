package schedule

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// dayToken is one entry of the day-code vocabulary.
type dayToken struct {
	code string
	days []time.Weekday
}

// dayVocabulary lists the institutional day codes. Compound codes are listed so that
// the tokenizer can match them whole; the slice is sorted longest first in init.
// A bare "T" is Tuesday; Thursday is written "R" or "Th".
var dayVocabulary = []dayToken{
	{"TuTh", []time.Weekday{time.Tuesday, time.Thursday}},
	{"TTh", []time.Weekday{time.Tuesday, time.Thursday}},
	{"MWF", []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
	{"MW", []time.Weekday{time.Monday, time.Wednesday}},
	{"WF", []time.Weekday{time.Wednesday, time.Friday}},
	{"Tu", []time.Weekday{time.Tuesday}},
	{"Th", []time.Weekday{time.Thursday}},
	{"Sa", []time.Weekday{time.Saturday}},
	{"Su", []time.Weekday{time.Sunday}},
	{"M", []time.Weekday{time.Monday}},
	{"T", []time.Weekday{time.Tuesday}},
	{"W", []time.Weekday{time.Wednesday}},
	{"R", []time.Weekday{time.Thursday}},
	{"F", []time.Weekday{time.Friday}},
}

func init() {
	sort.SliceStable(dayVocabulary, func(i, j int) bool {
		return len(dayVocabulary[i].code) > len(dayVocabulary[j].code)
	})
}

var (
	// Day-code group, start time and end time. A trailing zone abbreviation such as
	// "EST" is allowed and ignored.
	dayTimePattern = regexp.MustCompile(`([A-Za-z]+)\s*(\d{1,2}:\d{2}\s*[AaPp][Mm])\s*-\s*(\d{1,2}:\d{2}\s*[AaPp][Mm])`)
	timePattern    = regexp.MustCompile(`\d{1,2}:\d{2}\s*[AaPp][Mm]`)
	tbaPattern     = regexp.MustCompile(`(?i)\bTBA\b|to be announced`)
)

// ParseDayCodes tokenizes a day-code group such as "MWF" or "TuTh", trying the
// longest vocabulary entry first at every position. It fails if any part of the
// group is not in the vocabulary.
func ParseDayCodes(codes string) (DaySet, bool) {
	codes = strings.TrimSpace(codes)
	if codes == "" {
		return nil, false
	}

	var days DaySet
	for i := 0; i < len(codes); {
		matched := false
		for _, tok := range dayVocabulary {
			if strings.HasPrefix(codes[i:], tok.code) {
				for _, d := range tok.days {
					days = days.Add(d)
				}
				i += len(tok.code)
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return days, true
}

// DayTime is a parsed "days start-end" meeting time.
type DayTime struct {
	DayCodes string
	Days     DaySet
	Start    Clock
	End      Clock
}

// ParseDayTime reads free text such as "MWF 10:00am-10:50am" or
// "TTh 3:30pm - 4:45pm EST". It returns false when the text has no day/time group,
// when the day codes are not in the vocabulary, or when the end is not after the start.
func ParseDayTime(text string) (DayTime, bool) {
	m := dayTimePattern.FindStringSubmatch(text)
	if m == nil {
		return DayTime{}, false
	}

	days, ok := ParseDayCodes(m[1])
	if !ok {
		return DayTime{}, false
	}
	start, err := ParseClock(m[2])
	if err != nil {
		return DayTime{}, false
	}
	end, err := ParseClock(m[3])
	if err != nil {
		return DayTime{}, false
	}
	if !start.Before(end) {
		return DayTime{}, false
	}

	return DayTime{DayCodes: m[1], Days: days, Start: start, End: end}, true
}

// HasTime reports whether text contains a 12-hour clock time.
func HasTime(text string) bool {
	return timePattern.MatchString(text)
}

// IsTBA reports whether text carries a to-be-announced marker.
func IsTBA(text string) bool {
	return tbaPattern.MatchString(text)
}
