package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

// GoogleSource reads upcoming events through the Google Calendar API.
type GoogleSource struct {
	events     *gcal.EventsService
	calendarID string
}

func NewGoogleSource(ctx context.Context, calendarID string, opts ...option.ClientOption) (*GoogleSource, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &GoogleSource{
		events:     gcal.NewEventsService(svc),
		calendarID: calendarID,
	}, nil
}

func (s *GoogleSource) UpcomingEvents(ctx context.Context, now time.Time, limit int) (events []domain.Event, err error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "calendar.events.list", s.calendarID)
	defer func() {
		tracing.RecordResult(span, err)
		span.End()
	}()

	resp, err := s.events.List(s.calendarID).
		Context(ctx).
		TimeMin(now.Format(time.RFC3339)).
		MaxResults(int64(limit)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		slog.ErrorContext(ctx, "failed to list calendar events",
			slog.String("calendar_id", s.calendarID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("calendar events.list: %w", err)
	}

	events = make([]domain.Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, ok := toDomainEvent(item)
		if !ok {
			slog.DebugContext(ctx, "skipping event without a start time",
				slog.String("event_id", item.Id),
			)
			continue
		}
		events = append(events, ev)
	}

	slog.DebugContext(ctx, "fetched upcoming events",
		slog.String("calendar_id", s.calendarID),
		slog.Int("item_count", len(resp.Items)),
		slog.Int("event_count", len(events)),
	)

	return events, nil
}

// toDomainEvent drops all-day items, which carry only a date.
func toDomainEvent(item *gcal.Event) (domain.Event, bool) {
	if item.Start == nil || item.Start.DateTime == "" {
		return domain.Event{}, false
	}
	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return domain.Event{}, false
	}

	return domain.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: nonEmpty(item.Description),
		Location:    nonEmpty(item.Location),
		Start:       start,
	}, true
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
