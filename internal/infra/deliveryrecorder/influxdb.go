//go:build !gcloud

package deliveryrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const measurement = "delivery_result"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, delivery result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "delivery result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func (r *influxDBRecorder) RecordResults(ctx context.Context, records []domain.DeliveryResultRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		runID := record.RunID
		if runID == "" {
			runID = "default"
		}

		recordedAt := record.RecordedAt
		if recordedAt.IsZero() {
			recordedAt = time.Now()
		}

		point := influxdb2.NewPoint(
			measurement,
			map[string]string{
				"run_id":  runID,
				"verdict": record.Verdict,
				"outcome": record.Outcome,
			},
			map[string]any{
				"event_id":         record.EventID,
				"summary":          record.Summary,
				"reason":           record.Reason,
				"event_start_unix": record.EventStart.Unix(),
				"lead_seconds":     record.EventStart.Sub(recordedAt).Seconds(),
			},
			recordedAt,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write delivery result to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("event_id", record.EventID),
				slog.String("outcome", record.Outcome),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
