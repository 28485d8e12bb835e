package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	headerPattern   = regexp.MustCompile(`^([A-Z]{4}\s*\d{3}[A-Z]?)\s*\((\d{4})\)\s*(.*)$`)
	activityPattern = regexp.MustCompile(`^(?i:lec(?:ture)?|dis(?:cussion)?|lab(?:oratory)?|sem(?:inar)?|rec(?:itation)?|stu(?:dio)?)$`)
)

// Elements whose content is never shown.
var invisible = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// Elements that start a new line of visible text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tbody: true, atom.Td: true,
	atom.Tfoot: true, atom.Th: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
}

// visibleLines renders the document's visible text as trimmed, non-empty lines.
func visibleLines(doc *goquery.Document) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if line := collapseSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			if invisible[n.DataAtom] || hidden(n) {
				return
			}
		}

		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	flush()
	return lines
}

func hidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "hidden":
			return true
		case "aria-hidden":
			if attr.Val == "true" {
				return true
			}
		case "style":
			style := strings.ReplaceAll(strings.ToLower(attr.Val), " ", "")
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

// scanLines recovers meetings from plain text lines. It tracks the last course
// header ("CMSC131 (0101) Title") and the last activity label ("Lec"), and emits a
// meeting for every day/time line seen after a header. Both values persist until a
// later line overwrites them.
func scanLines(lines []string) []schedule.MeetingRecord {
	var (
		meetings []schedule.MeetingRecord
		course   *schedule.MeetingRecord
		activity string
	)

	for i, line := range lines {
		if m := headerPattern.FindStringSubmatch(line); m != nil {
			code := stripSpace(m[1])
			title := strings.TrimSpace(m[3])
			if title == "" {
				title = code
			}
			course = &schedule.MeetingRecord{CourseCode: code, Section: m[2], Title: title}
			continue
		}
		if activityPattern.MatchString(line) {
			activity = line
			continue
		}
		if course == nil {
			continue
		}
		dt, ok := schedule.ParseDayTime(line)
		if !ok {
			continue
		}

		location := schedule.DefaultLocation
		if i+1 < len(lines) && isLocationLine(lines[i+1]) {
			location = lines[i+1]
		}

		m := *course
		m.DayCodes = dt.DayCodes
		m.Days = dt.Days
		m.Start = dt.Start
		m.End = dt.End
		m.Location = location
		m.ActivityType = activity
		meetings = append(meetings, m)
	}
	return meetings
}

// isLocationLine reports whether a line following a day/time line names a room.
func isLocationLine(line string) bool {
	if line == "" || line[0] < 'A' || line[0] > 'Z' {
		return false
	}
	if headerPattern.MatchString(line) || activityPattern.MatchString(line) || schedule.IsTBA(line) {
		return false
	}
	_, isTime := schedule.ParseDayTime(line)
	return !isTime
}
