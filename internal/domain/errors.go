package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingDescription = errors.New("event description is missing")
	ErrSuppressed         = errors.New("event notifications suppressed")
	ErrNotYetActionable   = errors.New("event is not within a notification window")
	ErrLookupRequired     = errors.New("channel lookup required but not provided")
	ErrNoEmoji            = errors.New("no emoji available")
)

// DescriptionField names a positional field of an event description.
type DescriptionField string

const (
	FieldEventType          DescriptionField = "event type"
	FieldAlertType          DescriptionField = "alert type"
	FieldMainChannel        DescriptionField = "main channel"
	FieldAdditionalChannels DescriptionField = "additional channels"
	FieldAgenda             DescriptionField = "agenda"
	FieldNotes              DescriptionField = "notes"
)

// MalformedDescriptionError reports a description field that violates the
// grammar. Summary identifies the event for user-facing diagnostics.
type MalformedDescriptionError struct {
	Summary string
	Field   DescriptionField
	Value   string
	Reason  string
}

func (e *MalformedDescriptionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("upcoming %q contains a malformed %s %q: %s", e.Summary, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("upcoming %q contains a malformed %s %q", e.Summary, e.Field, e.Value)
}

// Diagnostic renders the error in the chat formatting used for log messages.
func (e *MalformedDescriptionError) Diagnostic() string {
	return "Upcoming *" + e.Summary + "* contains a malformed " + string(e.Field)
}

// IsControlFlow reports whether err only signals that nothing should be sent.
func IsControlFlow(err error) bool {
	return errors.Is(err, ErrSuppressed) || errors.Is(err, ErrNotYetActionable)
}
