package calendar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

const (
	// DefaultICSHorizon bounds recurrence expansion.
	DefaultICSHorizon = 14 * 24 * time.Hour

	maxICSBodyBytes = 10 << 20
)

// ICSSource reads upcoming events from an iCalendar feed.
type ICSSource struct {
	feedURL    string
	loc        *time.Location
	horizon    time.Duration
	httpClient *http.Client
}

// NewICSSource creates a source for feedURL. Floating times are read in loc;
// a zero horizon uses DefaultICSHorizon.
func NewICSSource(feedURL string, loc *time.Location, horizon time.Duration) *ICSSource {
	if loc == nil {
		loc = time.UTC
	}
	if horizon <= 0 {
		horizon = DefaultICSHorizon
	}
	return &ICSSource{
		feedURL: feedURL,
		loc:     loc,
		horizon: horizon,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *ICSSource) UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := parseICS(body, s.loc)
	if err != nil {
		return nil, err
	}

	events := expandEvents(parsed, now, now.Add(s.horizon))
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}

	slog.DebugContext(ctx, "loaded upcoming events from ics feed",
		slog.String("host", feedHost(s.feedURL)),
		slog.Int("vevent_count", len(parsed)),
		slog.Int("event_count", len(events)),
	)

	return events, nil
}

func (s *ICSSource) fetch(ctx context.Context) (body []byte, err error) {
	host := feedHost(s.feedURL)

	ctx, span := tracing.StartExternalAPISpan(ctx, "ics.fetch", host)
	defer func() {
		tracing.RecordResult(span, err)
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/calendar")
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(requestID))
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch ics feed",
			slog.String("host", host),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to fetch ics feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from ics feed",
			slog.String("host", host),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxICSBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read ics body: %w", err)
	}

	return body, nil
}

// feedHost keeps secret feed tokens out of logs and spans.
func feedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
