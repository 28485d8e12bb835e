package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	ExportedAt   time.Time                `json:"exported_at"`
	Semester     string                   `json:"semester"`
	Strategy     string                   `json:"strategy,omitempty"`
	Path         string                   `json:"path,omitempty"`
	MeetingCount int                      `json:"meeting_count"`
	EventCount   int                      `json:"event_count"`
	Skipped      int                      `json:"skipped,omitempty"`
	Meetings     []schedule.MeetingRecord `json:"meetings"`
}

func newResult(data schedule.ScheduleData) *OutputResult {
	return &OutputResult{
		ExportedAt:   time.Now().UTC(),
		Semester:     data.Semester,
		Strategy:     data.Strategy,
		MeetingCount: len(data.Meetings),
		Meetings:     data.Meetings,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, grouped by course section in
// the order the sections first appear
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.MeetingCount == 0 {
		fmt.Fprintln(w, "No class meetings found.")
		return nil
	}

	fmt.Fprintf(w, "%s\n", result.Semester)

	var order []string
	groups := make(map[string][]schedule.MeetingRecord)
	for _, m := range result.Meetings {
		key := m.Summary()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], m)
	}

	for _, key := range order {
		meetings := groups[key]
		fmt.Fprintf(w, "\n%s (%d %s):\n", key, len(meetings), plural(len(meetings), "meeting"))
		for _, m := range meetings {
			fmt.Fprintf(w, "  %s\n", meetingLine(m))
			if verbose {
				fmt.Fprintf(w, "       Days: %s\n", m.Days)
				fmt.Fprintf(w, "       ID: %s\n", m.Key())
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d %s across %d %s\n",
		result.MeetingCount, plural(result.MeetingCount, "meeting"),
		len(order), plural(len(order), "section"))
	if result.EventCount > 0 || result.Skipped > 0 {
		fmt.Fprintf(w, "Calendar events: %d", result.EventCount)
		if result.Skipped > 0 {
			fmt.Fprintf(w, " (%d skipped)", result.Skipped)
		}
		fmt.Fprintln(w)
	}
	if result.Path != "" {
		fmt.Fprintf(w, "Saved to %s\n", result.Path)
	}
	if verbose && result.Strategy != "" {
		fmt.Fprintf(w, "Found by: %s\n", result.Strategy)
	}

	return nil
}

// meetingLine renders a meeting as "Lec MWF 10:00-10:50 IRB 0324".
func meetingLine(m schedule.MeetingRecord) string {
	days := m.DayCodes
	if days == "" {
		days = m.Days.String()
	}
	line := fmt.Sprintf("%s %s-%s %s", days, m.Start, m.End, m.Location)
	if m.ActivityType != "" {
		line = m.ActivityType + " " + line
	}
	return line
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
