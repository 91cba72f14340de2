package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Delete(ctx context.Context, authorID, followerID string) error
	Exists(ctx context.Context, authorID, followerID string) (bool, error)
	ListByFollower(ctx context.Context, followerID string, limit, offset int) ([]*entity.Subscription, int64, error)
}
