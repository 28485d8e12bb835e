package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Strategy names reported in ScheduleData.Strategy.
const (
	StrategyCourseCard    = "course-card"
	StrategyCardSubstring = "course-card-substring"
	StrategyCourseClass   = "course-class"
	StrategyCodeAncestor  = "code-ancestor"
	StrategyTextScan      = "text-scan"
)

// DefaultAncestorLevels is how far the code-ancestor strategy climbs from an element
// carrying a course code to approximate its card.
const DefaultAncestorLevels = 3

var (
	// Course code followed by its parenthesized section, e.g. "CMSC131 (0101)".
	codeSectionPattern = regexp.MustCompile(`([A-Z]{4}\s*\d{3}[A-Z]?)\s*\((\d{4})\)`)
	codePattern        = regexp.MustCompile(`[A-Z]{4}\s*\d{3}[A-Z]?`)
)

// containerStrategy finds candidate course containers under root. An empty result
// hands over to the next strategy.
type containerStrategy struct {
	name string
	find func(s *Scraper, root *goquery.Selection) *goquery.Selection
}

// containerStrategies is evaluated in order; the first strategy that yields at least
// one container wins.
var containerStrategies = []containerStrategy{
	{
		name: StrategyCourseCard,
		find: func(_ *Scraper, root *goquery.Selection) *goquery.Selection {
			return root.Find(".course-card, .course-section")
		},
	},
	{
		name: StrategyCardSubstring,
		find: func(_ *Scraper, root *goquery.Selection) *goquery.Selection {
			return root.Find(`[class*="course-card"]`).FilterFunction(singleCourse)
		},
	},
	{
		name: StrategyCourseClass,
		find: func(_ *Scraper, root *goquery.Selection) *goquery.Selection {
			return root.Find(`[class*="course"]`).FilterFunction(singleCourse)
		},
	},
	{
		name: StrategyCodeAncestor,
		find: func(s *Scraper, root *goquery.Selection) *goquery.Selection {
			return codeAncestors(root, s.ancestorLevels)
		},
	},
}

// findContainers runs the container strategies and returns the winning strategy's
// name and its containers.
func (s *Scraper) findContainers(root *goquery.Selection) (string, *goquery.Selection) {
	for _, strategy := range containerStrategies {
		found := strategy.find(s, root)
		if found == nil || found.Length() == 0 {
			continue
		}
		found = outermost(found)
		s.log.Debug("course containers found",
			zap.String("strategy", strategy.name), zap.Int("count", found.Length()))
		return strategy.name, found
	}
	return "", nil
}

// singleCourse rejects wrappers that hold several different courses, which the
// substring strategies would otherwise treat as one card.
func singleCourse(_ int, sel *goquery.Selection) bool {
	return distinctCodes(sel.Text()) <= 1
}

// outermost drops candidates nested inside another candidate for the same course,
// so a row repeating the course code is parsed only as part of its card.
func outermost(found *goquery.Selection) *goquery.Selection {
	return found.FilterFunction(func(_ int, el *goquery.Selection) bool {
		code := firstCode(el.Text())
		nested := false
		el.Parents().FilterSelection(found).EachWithBreak(func(_ int, ancestor *goquery.Selection) bool {
			nested = firstCode(ancestor.Text()) == code
			return !nested
		})
		return !nested
	})
}

func firstCode(text string) string {
	return stripSpace(codePattern.FindString(text))
}

func distinctCodes(text string) int {
	codes := make(map[string]bool)
	for _, m := range codePattern.FindAllString(text, -1) {
		codes[stripSpace(m)] = true
	}
	return len(codes)
}

// codeAncestors locates the innermost elements whose text carries a code and
// section, climbs up to levels ancestors from each without swallowing a second
// course, and returns the distinct elements reached in document order.
func codeAncestors(root *goquery.Selection, levels int) *goquery.Selection {
	var nodes []*html.Node
	seen := make(map[*html.Node]bool)

	root.Find("*").Each(func(_ int, el *goquery.Selection) {
		if !codeSectionPattern.MatchString(el.Text()) {
			return
		}
		// Only the innermost carrier; its ancestors match too.
		leaf := true
		el.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
			if codeSectionPattern.MatchString(child.Text()) {
				leaf = false
			}
			return leaf
		})
		if !leaf {
			return
		}

		card := el
		for i := 0; i < levels; i++ {
			parent := card.Parent()
			if parent.Length() == 0 || isDocumentRoot(parent) || distinctCodes(parent.Text()) > 1 {
				break
			}
			card = parent
		}

		node := card.Get(0)
		if !seen[node] {
			seen[node] = true
			nodes = append(nodes, node)
		}
	})

	if len(nodes) == 0 {
		return nil
	}
	return root.FindNodes(nodes...)
}

func isDocumentRoot(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "body", "html", "#document":
		return true
	}
	return false
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// collapseSpace trims s and folds runs of whitespace into a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
