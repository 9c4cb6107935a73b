package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/compose"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/description"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/timing"
)

const (
	DefaultEventLimit = 4

	mainChannelPrefix = "<!channel>\n"
)

type Config struct {
	// EventLimit caps how many upcoming events one run examines.
	EventLimit int
	// LogChannel receives diagnostics for failed events. Empty disables it.
	LogChannel string
}

type Service struct {
	eventSource     domain.EventSource
	directory       domain.ChannelDirectory
	messenger       domain.Messenger
	deliveryRepo    domain.DeliveryRepository
	resultRecorder  domain.DeliveryResultRecorder
	classifier      *timing.Classifier
	parser          *description.Parser
	composer        *compose.Composer
	reminderMetrics *metrics.ReminderMetrics
	cfg             Config
}

// NewService wires a reminder service. deliveryRepo, resultRecorder and
// reminderMetrics may be nil.
func NewService(
	eventSource domain.EventSource,
	directory domain.ChannelDirectory,
	messenger domain.Messenger,
	deliveryRepo domain.DeliveryRepository,
	resultRecorder domain.DeliveryResultRecorder,
	classifier *timing.Classifier,
	parser *description.Parser,
	composer *compose.Composer,
	reminderMetrics *metrics.ReminderMetrics,
	cfg Config,
) *Service {
	if cfg.EventLimit <= 0 {
		cfg.EventLimit = DefaultEventLimit
	}

	return &Service{
		eventSource:     eventSource,
		directory:       directory,
		messenger:       messenger,
		deliveryRepo:    deliveryRepo,
		resultRecorder:  resultRecorder,
		classifier:      classifier,
		parser:          parser,
		composer:        composer,
		reminderMetrics: reminderMetrics,
		cfg:             cfg,
	}
}

// CheckEvents examines the next upcoming events and sends the reminders that
// are due at now. Events are handled one after another. Per-event problems
// are reported in the response; only failing to fetch events is an error.
func (s *Service) CheckEvents(ctx context.Context, now time.Time, runID string) (*Response, error) {
	ctx = logging.WithRunID(ctx, runID)
	runStart := time.Now()

	ctx, span := tracing.StartCheckRunSpan(ctx, now, runID, s.cfg.EventLimit)
	defer span.End()

	events, err := s.eventSource.UpcomingEvents(ctx, now, s.cfg.EventLimit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch upcoming events",
			slog.String("error", err.Error()),
		)
		tracing.RecordCheckRunResult(span, 0, 0, 0, 0, 0, 0, err)
		if s.reminderMetrics != nil {
			s.reminderMetrics.RecordCheckRun(ctx, time.Since(runStart), err)
		}
		return nil, fmt.Errorf("fetch upcoming events: %w", err)
	}

	slog.DebugContext(ctx, "fetched upcoming events",
		slog.Int("count", len(events)),
	)

	resp := &Response{
		RunID:   runID,
		Results: make([]ResultItem, 0, len(events)),
	}

	for _, event := range events {
		resp.add(s.processEvent(ctx, now, event))
	}

	s.recordResults(ctx, runID, resp)

	tracing.RecordCheckRunResult(span, resp.ProcessedCount, resp.SentCount, resp.SuppressedCount,
		resp.NotYetActionableCount, resp.AlreadySentCount, resp.FailedCount, nil)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordCheckRun(ctx, time.Since(runStart), nil)
	}

	slog.InfoContext(ctx, "reminder check completed",
		slog.Int("processed_count", resp.ProcessedCount),
		slog.Int("sent_count", resp.SentCount),
		slog.Int("suppressed_count", resp.SuppressedCount),
		slog.Int("not_yet_actionable_count", resp.NotYetActionableCount),
		slog.Int("already_sent_count", resp.AlreadySentCount),
		slog.Int("failed_count", resp.FailedCount),
	)

	return resp, nil
}

func (s *Service) processEvent(ctx context.Context, now time.Time, event domain.Event) ResultItem {
	eventStart := time.Now()
	untilStart := event.Start.Sub(now)

	ctx, span := tracing.StartEventSpan(ctx, event.ID, event.Summary, untilStart)
	defer span.End()

	item, err := s.handleEvent(ctx, event, untilStart)

	if err != nil {
		item.Outcome = domain.OutcomeFailed
		item.Reason = err.Error()
		item.Diagnostic = Diagnostic(event.Summary, err)

		slog.ErrorContext(ctx, "failed to process event",
			slog.String("event_id", event.ID),
			slog.String("summary", event.Summary),
			slog.String("verdict", item.Verdict.String()),
			slog.String("error", err.Error()),
		)
		s.postDiagnostic(ctx, item.Diagnostic)
	}

	tracing.RecordEventResult(span, item.Verdict.String(), item.Outcome.String(), err)
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordEventProcessed(ctx, item.Verdict.String(), item.Outcome.String(), time.Since(eventStart))
	}

	return item
}

// handleEvent returns a failure only through err; every other outcome is
// set on the item.
func (s *Service) handleEvent(ctx context.Context, event domain.Event, untilStart time.Duration) (ResultItem, error) {
	item := ResultItem{
		EventID: event.ID,
		Summary: event.Summary,
		Start:   event.Start,
		Verdict: s.classifier.Classify(untilStart),
	}

	if !item.Verdict.IsActionable() {
		slog.DebugContext(ctx, "event not within a notification window",
			slog.String("event_id", event.ID),
			slog.Duration("until_start", untilStart),
		)
		item.Outcome = domain.OutcomeNotYetActionable
		return item, nil
	}

	cfg, err := s.parse(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrSuppressed) {
			slog.DebugContext(ctx, "event notifications suppressed",
				slog.String("event_id", event.ID),
			)
			item.Outcome = domain.OutcomeSuppressed
			return item, nil
		}
		return item, err
	}
	item.MainChannel = cfg.MainChannel.Value

	key := domain.DeliveryKey(event.ID, item.Verdict, event.Start)
	if s.deliveryRepo != nil {
		delivered, err := s.deliveryRepo.IsDelivered(ctx, key)
		if err != nil {
			slog.WarnContext(ctx, "failed to check delivery status",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
			// fall through and send
		} else if delivered {
			slog.DebugContext(ctx, "skipping already delivered reminder",
				slog.String("event_id", event.ID),
				slog.String("verdict", item.Verdict.String()),
			)
			item.Outcome = domain.OutcomeAlreadySent
			return item, nil
		}
	}

	message, err := s.composer.Compose(ctx, event, cfg, item.Verdict, untilStart)
	if err != nil {
		return item, fmt.Errorf("compose message: %w", err)
	}

	// The key is reserved before sending so concurrent runs cannot both
	// dispatch the same reminder.
	reserved := false
	if s.deliveryRepo != nil {
		created, err := s.deliveryRepo.MarkDelivered(ctx, domain.NewDelivery(event, item.Verdict, cfg.MainChannel.Value))
		switch {
		case err != nil:
			slog.WarnContext(ctx, "failed to reserve reminder delivery",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		case !created:
			slog.DebugContext(ctx, "reminder already reserved by another run",
				slog.String("event_id", event.ID),
				slog.String("verdict", item.Verdict.String()),
			)
			item.Outcome = domain.OutcomeAlreadySent
			return item, nil
		default:
			reserved = true
		}
	}

	sent, dispatchErr := s.dispatch(ctx, cfg, message)
	item.MessagesSent = sent

	// Nothing went out, so the next run may try again. A partial dispatch
	// keeps the reservation to avoid repeating the messages that were sent.
	if sent == 0 && reserved {
		if err := s.deliveryRepo.ReleaseDelivery(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to release reminder reservation",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if dispatchErr != nil {
		return item, fmt.Errorf("dispatch reminder: %w", dispatchErr)
	}

	slog.InfoContext(ctx, "reminder sent",
		slog.String("event_id", event.ID),
		slog.String("summary", event.Summary),
		slog.String("verdict", item.Verdict.String()),
		slog.String("alert_type", cfg.AlertType.String()),
		slog.Int("messages_sent", sent),
	)

	item.Outcome = domain.OutcomeSent
	return item, nil
}

func (s *Service) parse(ctx context.Context, event domain.Event) (*domain.NotificationConfig, error) {
	var lookup domain.ChannelLookup
	if event.Description != nil && description.RequiresChannelLookup(*event.Description) {
		l, err := s.directory.Lookup(ctx)
		if err != nil {
			return nil, fmt.Errorf("build channel lookup: %w", err)
		}
		lookup = l
	}

	return s.parser.Parse(event.Summary, event.Description, lookup)
}

// dispatch posts message to the main channel, then either direct messages
// single-channel guests or copies it to the additional channels. It returns
// how many messages went out.
func (s *Service) dispatch(ctx context.Context, cfg *domain.NotificationConfig, message string) (int, error) {
	mainText := message
	if cfg.AlertType == domain.AlertTypeAlertMainChannel {
		mainText = mainChannelPrefix + message
	}

	ctx, span := tracing.StartDispatchSpan(ctx, "channel", 1+len(cfg.AdditionalChannels))
	defer span.End()

	if err := s.messenger.PostMessage(ctx, cfg.MainChannel.Value, mainText); err != nil {
		tracing.RecordResult(span, err)
		return 0, fmt.Errorf("post to main channel %s: %w", cfg.MainChannel.Value, err)
	}
	sent := 1
	s.recordDispatched(ctx, "channel", 1)

	if cfg.AlertType == domain.AlertTypeAlertSingleChannel {
		count, err := s.messenger.DirectMessageSingleChannelGuests(ctx, message+singleChannelGuestSuffix, domain.ChannelValues(cfg.AdditionalChannels))
		sent += count
		s.recordDispatched(ctx, "direct", count)
		if err != nil {
			tracing.RecordResult(span, err)
			return sent, fmt.Errorf("direct message single-channel guests: %w", err)
		}
		tracing.RecordResult(span, nil)
		return sent, nil
	}

	var errs []error
	for _, channel := range cfg.AdditionalChannels {
		if channel.Value == "" {
			continue
		}
		if err := s.messenger.PostMessage(ctx, channel.Value, message); err != nil {
			errs = append(errs, fmt.Errorf("post to %s: %w", channel.Value, err))
			continue
		}
		sent++
		s.recordDispatched(ctx, "channel", 1)
	}

	err := errors.Join(errs...)
	tracing.RecordResult(span, err)
	return sent, err
}

func (s *Service) recordDispatched(ctx context.Context, kind string, count int) {
	if s.reminderMetrics != nil {
		s.reminderMetrics.RecordMessageDispatched(ctx, kind, count)
	}
}

func (s *Service) postDiagnostic(ctx context.Context, text string) {
	if s.cfg.LogChannel == "" || text == "" {
		return
	}
	if err := s.messenger.PostMessage(ctx, s.cfg.LogChannel, text); err != nil {
		slog.WarnContext(ctx, "failed to post diagnostic",
			slog.String("channel", s.cfg.LogChannel),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordResults(ctx context.Context, runID string, resp *Response) {
	if s.resultRecorder == nil || len(resp.Results) == 0 {
		return
	}

	recordedAt := time.Now().UTC()
	records := make([]domain.DeliveryResultRecord, 0, len(resp.Results))
	for _, item := range resp.Results {
		records = append(records, domain.DeliveryResultRecord{
			RunID:      runID,
			EventID:    item.EventID,
			Summary:    item.Summary,
			EventStart: item.Start,
			Verdict:    item.Verdict.String(),
			Outcome:    item.Outcome.String(),
			Reason:     item.Reason,
			RecordedAt: recordedAt,
		})
	}

	if err := s.resultRecorder.RecordResults(ctx, records); err != nil {
		slog.WarnContext(ctx, "failed to record delivery results",
			slog.String("error", err.Error()),
		)
	}
}
