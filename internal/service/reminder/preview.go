package reminder

import (
	"context"
	"errors"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/service/description"
)

// Preview renders what CheckEvents would send for event at now without
// sending anything or touching the delivery ledger. A non-empty verdict
// overrides classification so authors can see either reminder at any time.
//
// Description problems are reported in the result, not as an error.
func (s *Service) Preview(ctx context.Context, event domain.Event, now time.Time, verdict domain.Verdict) (*PreviewResult, error) {
	untilStart := event.Start.Sub(now)
	if verdict == "" {
		verdict = s.classifier.Classify(untilStart)
	}

	result := &PreviewResult{Verdict: verdict}
	if event.Description != nil {
		result.RequiresLookup = description.RequiresChannelLookup(*event.Description)
	}

	cfg, err := s.parse(ctx, event)
	if err != nil {
		return previewFailure(result, event.Summary, err)
	}
	result.Config = cfg

	if !verdict.IsActionable() {
		result.Outcome = domain.OutcomeNotYetActionable
		return result, nil
	}

	message, err := s.composer.Compose(ctx, event, cfg, verdict, untilStart)
	if err != nil {
		return nil, err
	}

	result.Message = message
	result.Outcome = domain.OutcomeSent
	return result, nil
}

func previewFailure(result *PreviewResult, summary string, err error) (*PreviewResult, error) {
	var malformed *domain.MalformedDescriptionError

	switch {
	case errors.Is(err, domain.ErrSuppressed):
		result.Outcome = domain.OutcomeSuppressed
	case errors.As(err, &malformed), errors.Is(err, domain.ErrMissingDescription), errors.Is(err, domain.ErrLookupRequired):
		result.Outcome = domain.OutcomeFailed
		result.Reason = err.Error()
		result.Diagnostic = Diagnostic(summary, err)
	default:
		return nil, err
	}

	return result, nil
}
