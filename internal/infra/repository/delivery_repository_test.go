package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func newDelivery(eventID string, verdict domain.Verdict, start time.Time) *domain.Delivery {
	return &domain.Delivery{
		EventID:     eventID,
		Summary:     "Weekly sync",
		Verdict:     verdict,
		EventStart:  start,
		MainChannel: "C014J93U4JZ",
		DeliveredAt: start.Add(-5 * time.Minute),
	}
}

func TestMarkDeliveredSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "test:delivered:", time.Hour)

	start := time.Now().UTC().Truncate(time.Second).Add(10 * time.Minute)

	tests := []struct {
		name     string
		delivery *domain.Delivery
		setup    func(t *testing.T)
		expected bool
	}{
		{
			name:     "first mark records delivery",
			delivery: newDelivery("evt-1", domain.VerdictSoon, start),
			setup:    func(t *testing.T) {},
			expected: true,
		},
		{
			name:     "second mark reports already delivered",
			delivery: newDelivery("evt-2", domain.VerdictSoon, start),
			setup: func(t *testing.T) {
				if _, err := repo.MarkDelivered(ctx, newDelivery("evt-2", domain.VerdictSoon, start)); err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: false,
		},
		{
			name:     "other verdict of same event is independent",
			delivery: newDelivery("evt-3", domain.VerdictAdvance, start),
			setup: func(t *testing.T) {
				if _, err := repo.MarkDelivered(ctx, newDelivery("evt-3", domain.VerdictSoon, start)); err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			created, err := repo.MarkDelivered(ctx, tt.delivery)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created != tt.expected {
				t.Errorf("expected created %v, got %v", tt.expected, created)
			}

			ttl, err := client.TTL(ctx, "test:delivered:"+tt.delivery.Key()).Result()
			if err != nil {
				t.Fatalf("failed to get TTL: %v", err)
			}
			if ttl <= 0 || ttl > time.Hour {
				t.Errorf("expected TTL around 1 hour, got %v", ttl)
			}
		})
	}
}

func TestMarkDeliveredError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "", 0)

	created, err := repo.MarkDelivered(ctx, nil)
	if !errors.Is(err, ErrInvalidDeliveryData) {
		t.Errorf("expected ErrInvalidDeliveryData, got %v", err)
	}
	if created {
		t.Error("expected created false for nil delivery")
	}
}

func TestIsDeliveredSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "", 0)

	start := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	delivered := newDelivery("evt-1", domain.VerdictSoon, start)
	if _, err := repo.MarkDelivered(ctx, delivered); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	tests := []struct {
		name     string
		key      string
		expected bool
	}{
		{
			name:     "marked key",
			key:      delivered.Key(),
			expected: true,
		},
		{
			name:     "rescheduled occurrence",
			key:      domain.DeliveryKey("evt-1", domain.VerdictSoon, start.Add(time.Hour)),
			expected: false,
		},
		{
			name:     "unknown event",
			key:      domain.DeliveryKey("evt-9", domain.VerdictSoon, start),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.IsDelivered(ctx, tt.key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestReleaseDeliveryAllowsNewReservation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "", 0)

	start := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	d := newDelivery("evt-1", domain.VerdictSoon, start)

	if created, err := repo.MarkDelivered(ctx, d); err != nil || !created {
		t.Fatalf("first reservation: created=%v err=%v", created, err)
	}
	if created, err := repo.MarkDelivered(ctx, d); err != nil || created {
		t.Fatalf("second reservation should fail: created=%v err=%v", created, err)
	}

	if err := repo.ReleaseDelivery(ctx, d.Key()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delivered, err := repo.IsDelivered(ctx, d.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delivered {
		t.Error("expected released key to be gone")
	}

	if created, err := repo.MarkDelivered(ctx, d); err != nil || !created {
		t.Errorf("reservation after release: created=%v err=%v", created, err)
	}

	// Releasing an unknown key is not an error.
	if err := repo.ReleaseDelivery(ctx, domain.DeliveryKey("evt-9", domain.VerdictSoon, start)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGetDeliverySuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "", 0)

	start := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	want := newDelivery("evt-1", domain.VerdictAdvance, start)
	if _, err := repo.MarkDelivered(ctx, want); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	got, err := repo.GetDelivery(ctx, want.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.EventID != want.EventID {
		t.Errorf("expected EventID %s, got %s", want.EventID, got.EventID)
	}
	if got.Verdict != want.Verdict {
		t.Errorf("expected Verdict %s, got %s", want.Verdict, got.Verdict)
	}
	if !got.EventStart.Equal(want.EventStart) {
		t.Errorf("expected EventStart %v, got %v", want.EventStart, got.EventStart)
	}
	if !got.DeliveredAt.Equal(want.DeliveredAt) {
		t.Errorf("expected DeliveredAt %v, got %v", want.DeliveredAt, got.DeliveredAt)
	}
	if got.MainChannel != want.MainChannel {
		t.Errorf("expected MainChannel %s, got %s", want.MainChannel, got.MainChannel)
	}
}

func TestGetDeliveryError(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "", 0)

	tests := []struct {
		name    string
		key     string
		setup   func(t *testing.T)
		wantErr error
	}{
		{
			name:    "missing key",
			key:     "evt-404:soon:0",
			setup:   func(t *testing.T) {},
			wantErr: domain.ErrDeliveryNotFound,
		},
		{
			name: "corrupt record",
			key:  "evt-bad:soon:0",
			setup: func(t *testing.T) {
				if err := client.Set(ctx, DefaultKeyPrefix+"evt-bad:soon:0", "not json", 0).Err(); err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			wantErr: ErrInvalidDeliveryData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			_, err := repo.GetDelivery(ctx, tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCountDeliveredSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewDeliveryRepository(client, "count:", time.Hour)

	start := time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC)
	for _, id := range []string{"evt-1", "evt-2", "evt-3"} {
		if _, err := repo.MarkDelivered(ctx, newDelivery(id, domain.VerdictSoon, start)); err != nil {
			t.Fatalf("failed to set up test data: %v", err)
		}
	}
	if err := client.Set(ctx, "other:key", "x", 0).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	count, err := repo.CountDelivered(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
}
