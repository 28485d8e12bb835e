package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/testudo-ics/internal/calendar"
	"github.com/pfrederiksen/testudo-ics/internal/config"
	"github.com/pfrederiksen/testudo-ics/internal/logger"
	"github.com/pfrederiksen/testudo-ics/internal/metrics"
	"github.com/pfrederiksen/testudo-ics/internal/render"
	"github.com/pfrederiksen/testudo-ics/internal/schedule"
	"github.com/pfrederiksen/testudo-ics/internal/scraper"
	"github.com/pfrederiksen/testudo-ics/internal/storage"
	"github.com/spf13/cobra"
)

// app carries what one command invocation needs.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	format  OutputFormat
	sort    SortOrder
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(cmd *cobra.Command) (*app, error) {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return nil, err
	}
	order, err := parseSortOrder(flagSort)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel()
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		format:  format,
		sort:    order,
		stdin:   cmd.InOrStdin(),
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
	}, nil
}

// finish flushes logs and writes the metrics file if one was requested.
func (a *app) finish() {
	if flagMetricsFile != "" {
		if err := a.metrics.WriteToTextfile(flagMetricsFile); err != nil {
			a.log.Error("writing metrics failed", logger.Fields{"path": flagMetricsFile}, err)
		}
	}
	_ = a.log.Sync()
}

// readPage returns the HTML of a page file, "-" meaning stdin.
func (a *app) readPage(ctx context.Context, path string) (io.Reader, error) {
	if path == "-" {
		if flagRender {
			return nil, fmt.Errorf("--render needs a page file, not stdin")
		}
		return a.stdin, nil
	}

	if flagRender {
		start := time.Now()
		html, err := render.File(ctx, path, render.Options{
			Timeout:      a.cfg.Render.Timeout,
			WaitSelector: a.cfg.Render.WaitSelector,
			ChromePath:   a.cfg.Render.ChromePath,
		})
		a.metrics.RecordTiming(metrics.StageRender, time.Since(start))
		if err != nil {
			return nil, err
		}
		a.log.Debug("page rendered", logger.Fields{"path": path, "bytes": len(html)})
		return strings.NewReader(html), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	return bytes.NewReader(data), nil
}

// extract reads a page and returns its schedule with the semester override applied.
func (a *app) extract(ctx context.Context, path string) (schedule.ScheduleData, error) {
	r, err := a.readPage(ctx, path)
	if err != nil {
		return schedule.ScheduleData{}, err
	}

	sc := scraper.New(
		scraper.WithLogger(a.log.Zap()),
		scraper.WithDefaultSemester(a.cfg.DefaultSemester),
	)

	start := time.Now()
	data, err := sc.ParseSchedule(r)
	a.metrics.RecordTiming(metrics.StageExtract, time.Since(start))
	if err != nil {
		return schedule.ScheduleData{}, err
	}
	a.metrics.ObserveExtraction(data.Strategy, len(data.Meetings))

	if flagSemester != "" {
		data.Semester = flagSemester
	}
	sortMeetings(data.Meetings, a.sort)

	a.log.Info("schedule extracted", logger.Fields{
		"page":     path,
		"semester": data.Semester,
		"strategy": data.Strategy,
		"meetings": len(data.Meetings),
	})
	return data, nil
}

// loadSchedule reads a schedule saved by extract, "-" meaning stdin.
func (a *app) loadSchedule(path string) (schedule.ScheduleData, error) {
	var (
		data schedule.ScheduleData
		err  error
	)
	if path == "-" {
		data, err = storage.ReadSchedule(a.stdin)
	} else {
		data, err = storage.LoadSchedule(path)
	}
	if err != nil {
		return schedule.ScheduleData{}, err
	}

	if flagSemester != "" {
		data.Semester = flagSemester
	}
	sortMeetings(data.Meetings, a.sort)
	return data, nil
}

func (a *app) generator() *calendar.Generator {
	return calendar.NewGenerator(
		calendar.WithTimezone(a.cfg.Timezone),
		calendar.WithProductID(a.cfg.ProdID),
		calendar.WithCalendarName(a.cfg.CalendarName),
		calendar.WithUIDDomain(a.cfg.UIDDomain),
		calendar.WithTerms(a.cfg.SemesterTerms()),
		calendar.WithLogger(a.log.Zap()),
	)
}

func (a *app) store() (*storage.Storage, error) {
	dir := flagOutDir
	if dir == "" {
		dir = a.cfg.Output.Dir
	}
	return storage.New(dir)
}

// export generates the calendar, writes it and reports the result.
func (a *app) export(data schedule.ScheduleData) error {
	if data.Empty() {
		return ErrNoMeetings
	}

	start := time.Now()
	text, stats := a.generator().Render(data)
	a.metrics.RecordTiming(metrics.StageGenerate, time.Since(start))
	a.metrics.ObserveGeneration(stats.Events, stats.Skipped)

	result := newResult(data)
	result.EventCount = stats.Events
	result.Skipped = stats.Skipped

	summaryOut := a.stdout
	if flagStdout {
		if _, err := io.WriteString(a.stdout, text); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		summaryOut = a.stderr
	} else {
		store, err := a.store()
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		path, err := store.SaveCalendar(data.Semester, text)
		if err != nil {
			return err
		}
		result.Path = path
		a.log.Info("calendar written", logger.Fields{"path": path, "events": stats.Events})
	}

	if stats.Skipped > 0 {
		a.log.Warn("some meetings were left out of the calendar", logger.Fields{"skipped": stats.Skipped})
	}

	if err := WriteOutput(summaryOut, result, a.format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// saveSchedule prints the schedule JSON, or saves it when an output directory is set.
func (a *app) saveSchedule(data schedule.ScheduleData) error {
	if flagOutDir == "" {
		return storage.WriteSchedule(a.stdout, data)
	}

	store, err := a.store()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	path, err := store.SaveSchedule(data)
	if err != nil {
		return err
	}

	result := newResult(data)
	result.Path = path
	if err := WriteOutput(a.stdout, result, a.format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
