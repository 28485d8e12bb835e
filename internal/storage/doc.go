// Package storage writes exported calendars and extracted schedules to disk.
//
// Calendars are saved as umd_schedule_<semester>.ics and schedules as
// umd_schedule_<semester>.json inside the output directory, with whitespace in the
// semester label replaced by underscores. A saved schedule can be read back and
// turned into a calendar later without the original page.
package storage
