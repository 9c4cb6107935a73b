package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=event_source.go -destination=event_source_mock.go -package=domain

// EventSource returns the next events that have not ended by now, ordered by
// start time. At most limit events are returned.
type EventSource interface {
	UpcomingEvents(ctx context.Context, now time.Time, limit int) ([]Event, error)
}
