// Package calendar turns extracted schedule data into an iCalendar document.
//
// Every meeting becomes one weekly recurring VEVENT. The first occurrence is anchored
// on the semester's start date, start and end times are civil times qualified by a
// single TZID, and the recurrence ends at 23:59:59 on the semester's last day.
// Meetings whose times or days cannot be used are skipped, so generation never fails.
package calendar
