package reminder

import (
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type ResultItem struct {
	EventID      string         `json:"event_id"`
	Summary      string         `json:"summary"`
	Start        time.Time      `json:"start"`
	Verdict      domain.Verdict `json:"verdict"`
	Outcome      domain.Outcome `json:"outcome"`
	MainChannel  string         `json:"main_channel,omitempty"`
	MessagesSent int            `json:"messages_sent"`
	Reason       string         `json:"reason,omitempty"`
	// Diagnostic is the chat-formatted explanation of a failure.
	Diagnostic string `json:"diagnostic,omitempty"`
}

type Response struct {
	RunID                 string       `json:"run_id"`
	ProcessedCount        int          `json:"processed_count"`
	SentCount             int          `json:"sent_count"`
	SuppressedCount       int          `json:"suppressed_count"`
	NotYetActionableCount int          `json:"not_yet_actionable_count"`
	AlreadySentCount      int          `json:"already_sent_count"`
	FailedCount           int          `json:"failed_count"`
	Results               []ResultItem `json:"results"`
}

func (r *Response) add(item ResultItem) {
	r.ProcessedCount++
	switch item.Outcome {
	case domain.OutcomeSent:
		r.SentCount++
	case domain.OutcomeSuppressed:
		r.SuppressedCount++
	case domain.OutcomeNotYetActionable:
		r.NotYetActionableCount++
	case domain.OutcomeAlreadySent:
		r.AlreadySentCount++
	case domain.OutcomeFailed:
		r.FailedCount++
	}
	r.Results = append(r.Results, item)
}

// PreviewResult is what a check run would send for one event.
type PreviewResult struct {
	Verdict        domain.Verdict             `json:"verdict"`
	Outcome        domain.Outcome             `json:"outcome"`
	RequiresLookup bool                       `json:"requires_lookup"`
	Config         *domain.NotificationConfig `json:"config,omitempty"`
	Message        string                     `json:"message,omitempty"`
	Reason         string                     `json:"reason,omitempty"`
	Diagnostic     string                     `json:"diagnostic,omitempty"`
}
