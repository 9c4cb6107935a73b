package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	eventsProcessed      metric.Int64Counter
	messagesDispatched   metric.Int64Counter
	checkRunDuration     metric.Float64Histogram
	eventProcessDuration metric.Float64Histogram

	// Scrape-side view of the check loop, for alerting on a stalled trigger.
	lastSuccessTS prometheus.Gauge
	checkRuns     *prometheus.CounterVec
}

// NewReminderMetrics registers the scrape collectors on reg. A nil reg
// skips registration.
func NewReminderMetrics(reg prometheus.Registerer) (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	eventsProcessed, err := meter.Int64Counter(
		"reminder_events_total",
		metric.WithDescription("Total number of calendar events examined"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	messagesDispatched, err := meter.Int64Counter(
		"reminder_messages_total",
		metric.WithDescription("Total number of chat messages dispatched"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	checkRunDuration, err := meter.Float64Histogram(
		"reminder_check_run_duration_seconds",
		metric.WithDescription("Duration of one reminder check run"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	eventProcessDuration, err := meter.Float64Histogram(
		"reminder_event_duration_seconds",
		metric.WithDescription("Time spent processing a single event"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	lastSuccessTS := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "reminder",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last check run that fetched events",
	})
	checkRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "reminder",
		Name:      "check_runs_total",
		Help:      "Number of reminder check runs by status",
	}, []string{"status"})

	if reg != nil {
		if err := reg.Register(lastSuccessTS); err != nil {
			return nil, err
		}
		if err := reg.Register(checkRuns); err != nil {
			return nil, err
		}
	}

	return &ReminderMetrics{
		eventsProcessed:      eventsProcessed,
		messagesDispatched:   messagesDispatched,
		checkRunDuration:     checkRunDuration,
		eventProcessDuration: eventProcessDuration,
		lastSuccessTS:        lastSuccessTS,
		checkRuns:            checkRuns,
	}, nil
}

func (m *ReminderMetrics) RecordEventProcessed(ctx context.Context, verdict, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("verdict", verdict),
		attribute.String("outcome", outcome),
	)
	m.eventsProcessed.Add(ctx, 1, attrs)
	m.eventProcessDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordMessageDispatched counts count messages of kind ("channel" or
// "direct").
func (m *ReminderMetrics) RecordMessageDispatched(ctx context.Context, kind string, count int) {
	if count <= 0 {
		return
	}
	m.messagesDispatched.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *ReminderMetrics) RecordCheckRun(ctx context.Context, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	m.checkRunDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("status", status),
	))
	m.checkRuns.WithLabelValues(status).Inc()
	if err == nil {
		m.lastSuccessTS.Set(float64(time.Now().Unix()))
	}
}
