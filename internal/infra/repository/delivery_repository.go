package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
)

const (
	DefaultKeyPrefix = "reminder:delivered:"
	DefaultTTL       = 7 * time.Hour

	scanBatchSize = 200
)

type deliveryRecord struct {
	EventID     string    `json:"event_id"`
	Summary     string    `json:"summary"`
	Verdict     string    `json:"verdict"`
	EventStart  time.Time `json:"event_start"`
	MainChannel string    `json:"main_channel"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type deliveryRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDeliveryRepository stores delivery markers under prefix. Markers expire
// after ttl, which must outlast the widest notification window.
func NewDeliveryRepository(client *redis.Client, prefix string, ttl time.Duration) domain.DeliveryRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &deliveryRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *deliveryRepository) IsDelivered(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.prefix+key).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func (r *deliveryRepository) MarkDelivered(ctx context.Context, d *domain.Delivery) (bool, error) {
	if d == nil {
		return false, ErrInvalidDeliveryData
	}

	data, err := json.Marshal(deliveryRecord{
		EventID:     d.EventID,
		Summary:     d.Summary,
		Verdict:     d.Verdict.String(),
		EventStart:  d.EventStart,
		MainChannel: d.MainChannel,
		DeliveredAt: d.DeliveredAt,
	})
	if err != nil {
		return false, ErrInvalidDeliveryData
	}

	return r.client.SetNX(ctx, r.prefix+d.Key(), data, r.ttl).Result()
}

func (r *deliveryRepository) ReleaseDelivery(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

func (r *deliveryRepository) GetDelivery(ctx context.Context, key string) (*domain.Delivery, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDeliveryNotFound
		}
		return nil, err
	}

	var record deliveryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidDeliveryData
	}

	return &domain.Delivery{
		EventID:     record.EventID,
		Summary:     record.Summary,
		Verdict:     domain.Verdict(record.Verdict),
		EventStart:  record.EventStart,
		MainChannel: record.MainChannel,
		DeliveredAt: record.DeliveredAt,
	}, nil
}

func (r *deliveryRepository) CountDelivered(ctx context.Context) (int64, error) {
	var count int64

	iter := r.client.Scan(ctx, 0, r.prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		count++
	}

	if err := iter.Err(); err != nil {
		return 0, err
	}

	return count, nil
}
