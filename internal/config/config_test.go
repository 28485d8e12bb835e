package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/logger"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
)

// chdirTemp runs the test from an empty directory so no stray config or .env is read.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %v", cfg.Timezone)
	}
	if cfg.ProdID != "-//UMD Testudo Exporter//EN" {
		t.Errorf("ProdID = %v", cfg.ProdID)
	}
	if cfg.CalendarName != "UMD Schedule" {
		t.Errorf("CalendarName = %v", cfg.CalendarName)
	}
	if cfg.UIDDomain != "testudo.umd.edu" {
		t.Errorf("UIDDomain = %v", cfg.UIDDomain)
	}
	if cfg.DefaultSemester != schedule.DefaultSemester {
		t.Errorf("DefaultSemester = %v", cfg.DefaultSemester)
	}
	if cfg.Render.Timeout != 30*time.Second {
		t.Errorf("Render.Timeout = %v", cfg.Render.Timeout)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("Output.Dir = %v", cfg.Output.Dir)
	}
	if cfg.LogLevel() != logger.LevelInfo {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}

	terms := cfg.SemesterTerms()
	for season, want := range schedule.DefaultTerms {
		if terms[season] != want {
			t.Errorf("terms[%s] = %v, want %v", season, terms[season], want)
		}
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TESTUDO_ICS_TIMEZONE", "America/Chicago")
	t.Setenv("TESTUDO_ICS_LOG_LEVEL", "debug")
	t.Setenv("TESTUDO_ICS_RENDER_TIMEOUT", "5s")
	t.Setenv("TESTUDO_ICS_TERMS_SPRING_START", "01-27")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %v", cfg.Timezone)
	}
	if cfg.LogLevel() != logger.LevelDebug {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
	if cfg.Render.Timeout != 5*time.Second {
		t.Errorf("Render.Timeout = %v", cfg.Render.Timeout)
	}
	spring := cfg.SemesterTerms()[schedule.SeasonSpring]
	if spring.Start != (schedule.MonthDay{Month: time.January, Day: 27}) {
		t.Errorf("spring start = %v", spring.Start)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	// godotenv never overrides variables that are already set.
	os.Unsetenv("TESTUDO_ICS_UID_DOMAIN") // nolint:errcheck
	t.Cleanup(func() { os.Unsetenv("TESTUDO_ICS_UID_DOMAIN") }) // nolint:errcheck

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TESTUDO_ICS_UID_DOMAIN=example.edu\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UIDDomain != "example.edu" {
		t.Errorf("UIDDomain = %v, want example.edu", cfg.UIDDomain)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
calendar_name: Classes
default_semester: Spring 2025
terms:
  spring:
    start: "01-27"
    end: "05-16"
  summer:
    start: "bogus"
    end: "08-15"
  winter:
    start: "01-02"
    end: "01-23"
  autumn:
    start: "09-01"
    end: "12-01"
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CalendarName != "Classes" {
		t.Errorf("CalendarName = %v", cfg.CalendarName)
	}
	if cfg.DefaultSemester != "Spring 2025" {
		t.Errorf("DefaultSemester = %v", cfg.DefaultSemester)
	}
	if cfg.LogLevel() != logger.LevelWarn {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}

	terms := cfg.SemesterTerms()
	wantSpring := schedule.TermDates{
		Start: schedule.MonthDay{Month: time.January, Day: 27},
		End:   schedule.MonthDay{Month: time.May, Day: 16},
	}
	if terms[schedule.SeasonSpring] != wantSpring {
		t.Errorf("spring = %v, want %v", terms[schedule.SeasonSpring], wantSpring)
	}
	// Malformed dates keep the built-in summer term.
	if terms[schedule.SeasonSummer] != schedule.DefaultTerms[schedule.SeasonSummer] {
		t.Errorf("summer = %v", terms[schedule.SeasonSummer])
	}
	wantWinter := schedule.TermDates{
		Start: schedule.MonthDay{Month: time.January, Day: 2},
		End:   schedule.MonthDay{Month: time.January, Day: 23},
	}
	if terms[schedule.SeasonWinter] != wantWinter {
		t.Errorf("winter = %v, want %v", terms[schedule.SeasonWinter], wantWinter)
	}
	if r := terms.Range("Winter 2026", time.Now()); r.Start.Month() != time.January {
		t.Errorf("winter range = %v", r)
	}
	if _, ok := terms["autumn"]; ok {
		t.Error("unknown season should be ignored")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}

	t.Setenv("TESTUDO_ICS_LOG_LEVEL", "loud")
	if _, err := Load(""); err == nil {
		t.Error("expected error for an unknown log level")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timezone: "UTC", Log: LogConfig{Level: "info"}, Render: RenderConfig{Timeout: time.Second}}, false},
		{"zero timeout", Config{Timezone: "UTC", Log: LogConfig{Level: "info"}}, true},
		{"empty timezone", Config{Log: LogConfig{Level: "info"}, Render: RenderConfig{Timeout: time.Second}}, true},
		{"unknown timezone", Config{Timezone: "Mars/Olympus_Mons", Log: LogConfig{Level: "info"}, Render: RenderConfig{Timeout: time.Second}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
