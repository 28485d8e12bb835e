package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

const filePrefix = "umd_schedule"

var unsafeChars = regexp.MustCompile(`[\s/\\:]+`)

// Storage handles writing export files into one directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	if dataDir == "" {
		dataDir = "."
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the output directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// BaseName returns the file name without extension for a semester,
// e.g. "umd_schedule_Fall_2024".
func BaseName(semester string) string {
	label := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSpace(semester), "_"), "_")
	if label == "" {
		return filePrefix
	}
	return filePrefix + "_" + label
}

// CalendarFilename returns the .ics file name for a semester.
func CalendarFilename(semester string) string {
	return BaseName(semester) + ".ics"
}

// ScheduleFilename returns the .json file name for a semester.
func ScheduleFilename(semester string) string {
	return BaseName(semester) + ".json"
}

// SaveCalendar writes calendar text for a semester and returns its path
func (s *Storage) SaveCalendar(semester, content string) (string, error) {
	path := filepath.Join(s.dataDir, CalendarFilename(semester))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}
	return path, nil
}

// SaveSchedule writes extracted schedule data as JSON and returns its path
func (s *Storage) SaveSchedule(data schedule.ScheduleData) (string, error) {
	path := filepath.Join(s.dataDir, ScheduleFilename(data.Semester))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("writing schedule: %w", err)
	}
	defer f.Close() // nolint:errcheck

	if err := WriteSchedule(f, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteSchedule encodes schedule data as indented JSON.
func WriteSchedule(w io.Writer, data schedule.ScheduleData) error {
	if data.Meetings == nil {
		data.Meetings = []schedule.MeetingRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return nil
}

// LoadSchedule reads schedule data saved by SaveSchedule
func LoadSchedule(path string) (schedule.ScheduleData, error) {
	f, err := os.Open(path)
	if err != nil {
		return schedule.ScheduleData{}, fmt.Errorf("reading schedule: %w", err)
	}
	defer f.Close() // nolint:errcheck

	return ReadSchedule(f)
}

// ReadSchedule decodes schedule data from JSON.
func ReadSchedule(r io.Reader) (schedule.ScheduleData, error) {
	var data schedule.ScheduleData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return schedule.ScheduleData{}, fmt.Errorf("parsing schedule: %w", err)
	}
	return data, nil
}
