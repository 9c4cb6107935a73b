package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-event-reminder/internal/service/reminder"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartCheckRunSpan(ctx context.Context, now time.Time, runID string, limit int) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.check_run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.now", now.Format(time.RFC3339)),
			attribute.Int("run.event_limit", limit),
		),
	)
}

func StartEventSpan(ctx context.Context, eventID, summary string, untilStart time.Duration) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.event",
		trace.WithAttributes(
			attribute.String("event.id", eventID),
			attribute.String("event.summary", summary),
			attribute.Int64("event.until_start_seconds", int64(untilStart.Seconds())),
		),
	)
}

func StartDispatchSpan(ctx context.Context, kind string, targets int) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.dispatch."+kind,
		trace.WithAttributes(
			attribute.Int("dispatch.targets", targets),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordCheckRunResult(span trace.Span, processed, sent, suppressed, notYet, alreadySent, failed int, err error) {
	span.SetAttributes(
		attribute.Int("run.processed_count", processed),
		attribute.Int("run.sent_count", sent),
		attribute.Int("run.suppressed_count", suppressed),
		attribute.Int("run.not_yet_actionable_count", notYet),
		attribute.Int("run.already_sent_count", alreadySent),
		attribute.Int("run.failed_count", failed),
	)
	RecordResult(span, err)
}

func RecordEventResult(span trace.Span, verdict, outcome string, err error) {
	span.SetAttributes(
		attribute.String("event.verdict", verdict),
		attribute.String("event.outcome", outcome),
	)
	RecordResult(span, err)
}

// RecordResult marks span failed when err is non-nil.
func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
