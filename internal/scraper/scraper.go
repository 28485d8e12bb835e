package scraper

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"go.uber.org/zap"
)

// Scraper extracts schedule data from a rendered schedule page
type Scraper struct {
	log             *zap.Logger
	defaultSemester string
	ancestorLevels  int
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scraper) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultSemester sets the label used when the page carries no semester.
func WithDefaultSemester(semester string) Option {
	return func(s *Scraper) {
		if semester != "" {
			s.defaultSemester = semester
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		log:             zap.NewNop(),
		defaultSemester: schedule.DefaultSemester,
		ancestorLevels:  DefaultAncestorLevels,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseSchedule parses an HTML page and extracts its schedule. The only error is a
// failure to read the HTML itself.
func (s *Scraper) ParseSchedule(r io.Reader) (schedule.ScheduleData, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return schedule.ScheduleData{}, fmt.Errorf("parsing HTML: %w", err)
	}
	return s.Extract(doc), nil
}

// Extract walks the document and returns the meetings it describes, in page order
// and without repeats, together with the detected semester label.
func (s *Scraper) Extract(doc *goquery.Document) schedule.ScheduleData {
	if doc == nil || doc.Selection == nil {
		return schedule.ScheduleData{Semester: s.defaultSemester}
	}

	data := schedule.ScheduleData{
		Semester: s.detectSemester(doc.Selection),
	}

	seen := make(map[string]bool)
	add := func(m schedule.MeetingRecord) bool {
		key := m.Key()
		if seen[key] {
			s.log.Debug("dropping repeated meeting",
				zap.String("course", m.CourseCode), zap.String("days", m.Days.String()))
			return false
		}
		seen[key] = true
		data.Meetings = append(data.Meetings, m)
		return true
	}

	strategy, containers := s.findContainers(doc.Selection)
	if containers != nil {
		containers.Each(func(i int, card *goquery.Selection) {
			for _, m := range s.parseContainer(card) {
				add(m)
			}
		})
		if !data.Empty() {
			data.Strategy = strategy
		}
	}

	if data.Empty() {
		s.log.Debug("no meetings found in containers, scanning page text")
		for _, m := range scanLines(visibleLines(doc)) {
			add(m)
		}
		if !data.Empty() {
			data.Strategy = StrategyTextScan
		}
	}

	s.log.Info("schedule extracted",
		zap.String("semester", data.Semester),
		zap.String("strategy", data.Strategy),
		zap.Int("meetings", len(data.Meetings)))

	return data
}

// detectSemester returns the first "<Season> <year>" found in a header-like element,
// then anywhere in the page, then the configured default.
func (s *Scraper) detectSemester(root *goquery.Selection) string {
	label := ""
	root.Find(semesterSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if sem, ok := schedule.FindSemester(el.Text()); ok {
			label = sem
			return false
		}
		return true
	})
	if label != "" {
		return label
	}

	if sem, ok := schedule.FindSemester(root.Find("body").Text()); ok {
		return sem
	}

	s.log.Debug("no semester on page, using default", zap.String("semester", s.defaultSemester))
	return s.defaultSemester
}
