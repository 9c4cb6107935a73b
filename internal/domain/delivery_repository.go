package domain

import (
	"context"
	"errors"
)

//go:generate mockgen -source=delivery_repository.go -destination=delivery_repository_mock.go -package=domain

var ErrDeliveryNotFound = errors.New("delivery not found")

type DeliveryRepository interface {
	IsDelivered(ctx context.Context, key string) (bool, error)
	// MarkDelivered records d and reports false if it was already recorded.
	MarkDelivered(ctx context.Context, d *Delivery) (bool, error)
	// ReleaseDelivery forgets the delivery stored under key.
	ReleaseDelivery(ctx context.Context, key string) error
	GetDelivery(ctx context.Context, key string) (*Delivery, error)
	CountDelivered(ctx context.Context) (int64, error)
}
