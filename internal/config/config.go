// Package config loads testudo-ics settings from defaults, an optional config file,
// a .env file and TESTUDO_ICS_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/testudo-ics/internal/logger"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "TESTUDO_ICS"

// Config holds all settings
type Config struct {
	Timezone        string                `mapstructure:"timezone"`
	ProdID          string                `mapstructure:"prodid"`
	CalendarName    string                `mapstructure:"calendar_name"`
	UIDDomain       string                `mapstructure:"uid_domain"`
	DefaultSemester string                `mapstructure:"default_semester"`
	Terms           map[string]TermConfig `mapstructure:"terms"`
	Log             LogConfig             `mapstructure:"log"`
	Output          OutputConfig          `mapstructure:"output"`
	Render          RenderConfig          `mapstructure:"render"`
}

// TermConfig is a season's first and last day of classes as "MM-DD".
type TermConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// RenderConfig configures headless Chrome rendering of saved pages.
type RenderConfig struct {
	Timeout      time.Duration `mapstructure:"timeout"`
	WaitSelector string        `mapstructure:"wait_selector"`
	ChromePath   string        `mapstructure:"chrome_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "America/New_York")
	v.SetDefault("prodid", "-//UMD Testudo Exporter//EN")
	v.SetDefault("calendar_name", "UMD Schedule")
	v.SetDefault("uid_domain", "testudo.umd.edu")
	v.SetDefault("default_semester", schedule.DefaultSemester)
	for season, dates := range schedule.DefaultTerms {
		v.SetDefault("terms."+season+".start", dates.Start.String())
		v.SetDefault("terms."+season+".end", dates.End.String())
	}
	v.SetDefault("log.level", "info")
	v.SetDefault("output.dir", ".")
	v.SetDefault("render.timeout", 30*time.Second)
	v.SetDefault("render.wait_selector", "body")
	v.SetDefault("render.chrome_path", "")
}

// Load reads the configuration. An explicit path must exist; without one,
// testudo-ics.{yaml,json,toml} is looked up in the working directory and in
// $HOME/.config/testudo-ics, and its absence is not an error.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("testudo-ics")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "testudo-ics"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Render.Timeout <= 0 {
		return fmt.Errorf("render.timeout must be positive, got %s", c.Render.Timeout)
	}
	if strings.TrimSpace(c.Timezone) == "" {
		return errors.New("timezone must not be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

// SemesterTerms converts the configured term dates. Seasons with a malformed date
// keep their built-in dates; unknown seasons are ignored.
func (c *Config) SemesterTerms() schedule.Terms {
	terms := make(schedule.Terms, len(schedule.DefaultTerms))
	for season, dates := range schedule.DefaultTerms {
		terms[season] = dates
	}

	for season, tc := range c.Terms {
		if !schedule.IsSeason(season) {
			logger.Warn("ignoring unknown season", logger.Fields{"season": season})
			continue
		}
		start, err := schedule.ParseMonthDay(tc.Start)
		if err != nil {
			logger.Warn("ignoring term dates", logger.Fields{"season": season, "start": tc.Start})
			continue
		}
		end, err := schedule.ParseMonthDay(tc.End)
		if err != nil {
			logger.Warn("ignoring term dates", logger.Fields{"season": season, "end": tc.End})
			continue
		}
		terms[strings.ToLower(season)] = schedule.TermDates{Start: start, End: end}
	}
	return terms
}
