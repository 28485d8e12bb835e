package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"go.uber.org/zap"
)

// Calendar defaults.
const (
	DefaultTimezone     = "America/New_York"
	DefaultProductID    = "-//UMD Testudo Exporter//EN"
	DefaultCalendarName = "UMD Schedule"
	DefaultUIDDomain    = "testudo.umd.edu"
)

const (
	localTimeFormat = "20060102T150405"
	utcTimeFormat   = "20060102T150405Z"
	dateFormat      = "20060102"
)

// Generator builds iCalendar documents from schedule data
type Generator struct {
	timezone     string
	productID    string
	calendarName string
	uidDomain    string
	terms        schedule.Terms
	now          func() time.Time
	newID        func() string
	log          *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimezone sets the TZID applied to event start and end times.
func WithTimezone(tzid string) Option {
	return func(g *Generator) {
		if tzid != "" {
			g.timezone = tzid
		}
	}
}

// WithProductID sets the PRODID of generated calendars.
func WithProductID(id string) Option {
	return func(g *Generator) {
		if id != "" {
			g.productID = id
		}
	}
}

// WithCalendarName sets the X-WR-CALNAME prefix; the semester is appended.
func WithCalendarName(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.calendarName = name
		}
	}
}

// WithUIDDomain sets the domain part of event UIDs.
func WithUIDDomain(domain string) Option {
	return func(g *Generator) {
		if domain != "" {
			g.uidDomain = domain
		}
	}
}

// WithTerms sets the semester date table.
func WithTerms(terms schedule.Terms) Option {
	return func(g *Generator) {
		if len(terms) > 0 {
			g.terms = terms
		}
	}
}

// WithClock sets the time source used for DTSTAMP, UIDs and label years.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithIDSource sets the source of the random part of event UIDs.
func WithIDSource(newID func() string) Option {
	return func(g *Generator) {
		if newID != nil {
			g.newID = newID
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// NewGenerator creates a Generator with the UMD defaults.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		timezone:     DefaultTimezone,
		productID:    DefaultProductID,
		calendarName: DefaultCalendarName,
		uidDomain:    DefaultUIDDomain,
		terms:        schedule.DefaultTerms,
		now:          time.Now,
		newID:        uuid.NewString,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stats counts what happened to the meetings of one generation.
type Stats struct {
	Events  int
	Skipped int
}

// GenerateICS generates an iCalendar document for a schedule with the default settings
func GenerateICS(data schedule.ScheduleData) string {
	return NewGenerator().Generate(data)
}

// Generate renders the schedule as iCalendar text with CRLF line endings.
func (g *Generator) Generate(data schedule.ScheduleData) string {
	text, _ := g.Render(data)
	return text
}

// Render is Generate that also reports how many meetings became events.
func (g *Generator) Render(data schedule.ScheduleData) (string, Stats) {
	cal, stats := g.Calendar(data)
	return cal.Serialize(ics.WithNewLineWindows), stats
}

// Calendar builds the calendar model for a schedule. A schedule without usable
// meetings still produces the calendar wrapper.
func (g *Generator) Calendar(data schedule.ScheduleData) (*ics.Calendar, Stats) {
	now := g.now()
	semester := data.Semester
	if semester == "" {
		semester = schedule.DefaultSemester
	}
	dates := g.terms.Range(semester, now)

	cal := ics.NewCalendar()
	cal.SetProductId(g.productID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(fmt.Sprintf("%s %s", g.calendarName, semester))
	cal.SetXWRTimezone(g.timezone)

	var stats Stats
	for _, m := range data.Meetings {
		if g.addEvent(cal, m, dates, now) {
			stats.Events++
		} else {
			stats.Skipped++
		}
	}

	g.log.Debug("calendar built",
		zap.String("semester", semester),
		zap.Time("term_start", dates.Start),
		zap.Time("term_end", dates.End),
		zap.Int("events", stats.Events),
		zap.Int("skipped", stats.Skipped))

	return cal, stats
}

// addEvent appends the recurring event for one meeting, reporting false when the
// meeting has no usable time or days.
func (g *Generator) addEvent(cal *ics.Calendar, m schedule.MeetingRecord, dates schedule.DateRange, now time.Time) bool {
	if !m.Start.Valid() || !m.End.Valid() || !m.Start.Before(m.End) {
		g.log.Debug("skipping meeting with unusable time",
			zap.String("course", m.CourseCode), zap.Stringer("start", m.Start), zap.Stringer("end", m.End))
		return false
	}

	byDay := RecurrenceDays(m.Days)
	if len(byDay) == 0 {
		byDay = DayCodesToRecurrence(m.DayCodes)
	}
	if len(byDay) == 0 {
		g.log.Debug("skipping meeting without days",
			zap.String("course", m.CourseCode), zap.String("day_codes", m.DayCodes))
		return false
	}

	first := FirstOccurrence(dates.Start, recurrenceWeekdays(byDay))
	start := atClock(first, m.Start)
	end := atClock(first, m.End)

	event := cal.AddEvent(g.uid(m, now))
	event.SetDtStampTime(now)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(localTimeFormat), ics.WithTZID(g.timezone))
	event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(localTimeFormat), ics.WithTZID(g.timezone))
	event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
		strings.Join(byDay, ","), g.until(dates.End)))
	event.SetSummary(m.Summary())

	location := m.Location
	if location == "" {
		location = schedule.DefaultLocation
	}
	event.SetLocation(location)
	event.SetDescription(m.Description())
	return true
}

// until renders the recurrence bound, 23:59:59 on the last day of term. RRULE
// requires UTC once DTSTART carries a TZID, so the local end of day is converted.
// An unknown zone leaves the bound as floating local time.
func (g *Generator) until(last time.Time) string {
	loc, err := time.LoadLocation(g.timezone)
	if err != nil {
		g.log.Warn("unknown timezone, writing floating UNTIL",
			zap.String("timezone", g.timezone), zap.Error(err))
		return last.Format(dateFormat) + "T235959"
	}
	end := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc)
	return end.UTC().Format(utcTimeFormat)
}

// uid combines the course, the generation time and a random part so that two
// otherwise identical meetings never share an identifier.
func (g *Generator) uid(m schedule.MeetingRecord, now time.Time) string {
	parts := []string{m.CourseCode}
	if m.Section != "" {
		parts = append(parts, m.Section)
	}
	parts = append(parts, fmt.Sprintf("%d", now.UnixMilli()), g.newID())
	return fmt.Sprintf("%s@%s", strings.Join(parts, "-"), g.uidDomain)
}

// atClock returns the civil date of day at the given clock time.
func atClock(day time.Time, c schedule.Clock) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}
