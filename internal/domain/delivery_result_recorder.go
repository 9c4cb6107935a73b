package domain

import (
	"context"
	"time"
)

type DeliveryResultRecord struct {
	RunID      string
	EventID    string
	Summary    string
	EventStart time.Time
	Verdict    string
	Outcome    string
	Reason     string
	RecordedAt time.Time
}

type DeliveryResultRecorder interface {
	RecordResults(ctx context.Context, records []DeliveryResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
