package domain

import "time"

// Event is a single upcoming calendar event as seen by the reminder pipeline.
// Description and Location are nil when the calendar entry leaves them unset.
type Event struct {
	ID          string
	Summary     string
	Description *string
	Location    *string
	Start       time.Time
}

func (e Event) LocationOr(fallback string) string {
	if e.Location == nil || *e.Location == "" {
		return fallback
	}
	return *e.Location
}
