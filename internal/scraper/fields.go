package scraper

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"go.uber.org/zap"
)

// Selector cascades, most specific first.
var (
	semesterSelector = `.course-table-header, .semester-info, h1, [class*="semester"], [class*="term"]`

	codeSelectors     = []string{".course-id", `[class*="course-id"]`, ".course-code", `[class*="course-code"]`}
	sectionSelectors  = []string{".course-section-id", ".section-id", `[class*="section-id"]`}
	titleSelectors    = []string{".course-title", `[class*="course-title"]`, ".course-name", `[class*="course-name"]`}
	activitySelectors = []string{".course-card-activity", ".section-activity", `[class*="activity-row"]`, ".activity"}
	timeSelectors     = []string{".course-card-activity--time", `[class*="activity--time"]`, `[class*="time"]`}
	locationSelectors = []string{".course-card-activity--location", `[class*="activity--location"]`, `[class*="location"]`, `[class*="building"]`}
	typeSelectors     = []string{".course-card-activity--type", `[class*="activity--type"]`, `[class*="activity-type"]`}
)

var sectionIDPattern = regexp.MustCompile(`\b\d{4}\b`)

// firstMatch returns every element matched by the first selector in the cascade
// that matches anything under sel.
func firstMatch(sel *goquery.Selection, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if found := sel.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// innermost drops matches that contain another match, such as a "meeting-times"
// wrapper around the individual ".time" rows.
func innermost(sel *goquery.Selection) *goquery.Selection {
	return sel.NotSelection(sel.HasSelection(sel))
}

// firstText returns the first non-empty text found through the cascade.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		text := ""
		sel.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text = collapseSpace(el.Text())
			return text == ""
		})
		if text != "" {
			return text
		}
	}
	return ""
}

// courseCode returns the canonical code of a container, or "" when none is found.
func courseCode(card *goquery.Selection) (code, raw string) {
	raw = firstText(card, codeSelectors)
	if m := codePattern.FindString(raw); m != "" {
		return stripSpace(m), raw
	}
	if m := codePattern.FindString(card.Text()); m != "" {
		return stripSpace(m), raw
	}
	return "", raw
}

// section runs the section cascade, then looks for "CODE (NNNN)" in the code
// element and finally in the container text.
func section(card *goquery.Selection, rawCode string) string {
	if text := firstText(card, sectionSelectors); text != "" {
		if id := sectionIDPattern.FindString(text); id != "" {
			return id
		}
		return text
	}
	if m := codeSectionPattern.FindStringSubmatch(rawCode); m != nil {
		return m[2]
	}
	if m := codeSectionPattern.FindStringSubmatch(card.Text()); m != nil {
		return m[2]
	}
	return ""
}

// parseContainer extracts the meetings of one course container. A container without
// a usable course code is noise and yields nothing.
func (s *Scraper) parseContainer(card *goquery.Selection) []schedule.MeetingRecord {
	code, rawCode := courseCode(card)
	if len(code) < 5 {
		return nil
	}

	title := firstText(card, titleSelectors)
	if title == "" {
		title = code
	}
	base := schedule.MeetingRecord{
		CourseCode: code,
		Section:    section(card, rawCode),
		Title:      title,
	}

	activities := firstMatch(card, activitySelectors)
	if activities == nil {
		activities = card
	}

	var meetings []schedule.MeetingRecord
	activities.Each(func(_ int, activity *goquery.Selection) {
		meetings = append(meetings, s.parseActivity(base, activity)...)
	})
	return meetings
}

// parseActivity turns each time element of an activity into a meeting. When the
// activity lists as many locations as times they are paired in order; otherwise the
// first location applies to every time.
func (s *Scraper) parseActivity(base schedule.MeetingRecord, activity *goquery.Selection) []schedule.MeetingRecord {
	times := firstMatch(activity, timeSelectors)
	if times == nil {
		return nil
	}
	times = innermost(times)

	var locations []string
	if found := firstMatch(activity, locationSelectors); found != nil {
		innermost(found).Each(func(_ int, el *goquery.Selection) {
			locations = append(locations, collapseSpace(el.Text()))
		})
	}
	activityType := firstText(activity, typeSelectors)

	var meetings []schedule.MeetingRecord
	times.Each(func(i int, el *goquery.Selection) {
		text := collapseSpace(el.Text())
		if !schedule.HasTime(text) || schedule.IsTBA(text) {
			s.log.Debug("skipping activity without a scheduled time",
				zap.String("course", base.CourseCode), zap.String("text", text))
			return
		}
		dt, ok := schedule.ParseDayTime(text)
		if !ok {
			s.log.Debug("unrecognized meeting time",
				zap.String("course", base.CourseCode), zap.String("text", text))
			return
		}

		location := ""
		switch {
		case len(locations) == times.Length():
			location = locations[i]
		case len(locations) > 0:
			location = locations[0]
		}
		if location == "" {
			location = schedule.DefaultLocation
		}

		m := base
		m.DayCodes = dt.DayCodes
		m.Days = dt.Days
		m.Start = dt.Start
		m.End = dt.End
		m.Location = location
		m.ActivityType = activityType
		meetings = append(meetings, m)
	})
	return meetings
}
