// Package metrics tracks extraction and generation counters on a private
// Prometheus registry. A CLI run is short-lived, so the registry is exported with
// WriteToTextfile for the node exporter's textfile collector rather than served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "schedule"

// Stage names used with RecordTiming.
const (
	StageRender   = "render"
	StageExtract  = "extract"
	StageGenerate = "generate"
)

// Metrics holds the collectors of one process.
type Metrics struct {
	registry    *prometheus.Registry
	extractions *prometheus.CounterVec
	meetings    prometheus.Counter
	events      prometheus.Counter
	skipped     prometheus.Counter
	duration    *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Schedule extractions by the strategy that found the meetings.",
		}, []string{"strategy"}),
		meetings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "meetings_extracted_total",
			Help:      "Meetings extracted from schedule pages.",
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_generated_total",
			Help:      "Recurring calendar events generated.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_skipped_total",
			Help:      "Meetings left out of the calendar because their time or days were unusable.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage"}),
	}

	m.registry.MustRegister(m.extractions, m.meetings, m.events, m.skipped, m.duration)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveExtraction records one extraction. An empty strategy means nothing was found.
func (m *Metrics) ObserveExtraction(strategy string, meetings int) {
	if strategy == "" {
		strategy = "none"
	}
	m.extractions.WithLabelValues(strategy).Inc()
	m.meetings.Add(float64(meetings))
}

// ObserveGeneration records the outcome of one calendar generation.
func (m *Metrics) ObserveGeneration(events, skipped int) {
	m.events.Add(float64(events))
	m.skipped.Add(float64(skipped))
}

// RecordTiming records how long a stage took.
func (m *Metrics) RecordTiming(stage string, d time.Duration) {
	m.duration.WithLabelValues(stage).Observe(d.Seconds())
}

// WriteToTextfile writes all metrics in the text exposition format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
