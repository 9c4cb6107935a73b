package deliveryrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DeliveryResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordResults(_ context.Context, _ []domain.DeliveryResultRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
