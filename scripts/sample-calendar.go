//go:build ignore

// Writes a two-course sample calendar for checking imports in calendar apps.
//
//	go run scripts/sample-calendar.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/calendar"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

func main() {
	data := schedule.ScheduleData{
		Semester: "Fall 2024",
		Meetings: []schedule.MeetingRecord{
			{
				CourseCode:   "CMSC131",
				Section:      "0101",
				Title:        "Object-Oriented Programming I",
				DayCodes:     "MWF",
				Days:         schedule.DaySet{time.Monday, time.Wednesday, time.Friday},
				Start:        schedule.Clock{Hour: 10},
				End:          schedule.Clock{Hour: 10, Minute: 50},
				Location:     "IRB 0324",
				ActivityType: "Lec",
			},
			{
				CourseCode:   "MATH140",
				Section:      "0221",
				Title:        "Calculus I",
				DayCodes:     "TuTh",
				Days:         schedule.DaySet{time.Tuesday, time.Thursday},
				Start:        schedule.Clock{Hour: 14},
				End:          schedule.Clock{Hour: 15, Minute: 15},
				Location:     "MTH 0101",
				ActivityType: "Lec",
			},
		},
	}

	icsContent := calendar.GenerateICS(data)

	// Write to file (owner read/write only)
	filename := "sample-schedule.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
