//go:build gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt time.Time `bigquery:"recorded_at"`
	RunID      string    `bigquery:"run_id"`
	EventID    string    `bigquery:"event_id"`
	Summary    string    `bigquery:"summary"`
	EventStart time.Time `bigquery:"event_start"`
	Verdict    string    `bigquery:"verdict"`
	Outcome    string    `bigquery:"outcome"`
	Reason     string    `bigquery:"reason"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, delivery result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "delivery result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordResults(ctx context.Context, records []domain.DeliveryResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	bqRecords := make([]*bigQueryRecord, 0, len(records))
	for _, record := range records {
		bqRecords = append(bqRecords, toBigQueryRecord(record))
	}

	if err := r.inserter.Put(ctx, bqRecords); err != nil {
		slog.WarnContext(ctx, "failed to insert delivery results to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func toBigQueryRecord(record domain.DeliveryResultRecord) *bigQueryRecord {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	return &bigQueryRecord{
		RecordedAt: recordedAt,
		RunID:      record.RunID,
		EventID:    record.EventID,
		Summary:    record.Summary,
		EventStart: record.EventStart,
		Verdict:    record.Verdict,
		Outcome:    record.Outcome,
		Reason:     record.Reason,
	}
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
