package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

func NewFirestoreSubscriptionRepository(client *firestore.Client) repository.SubscriptionRepository {
	return &firestoreSubscriptionRepository{client: client}
}

// Doc id is follower_author so one pair maps to exactly one document.
func subscriptionID(authorID, followerID string) string {
	return fmt.Sprintf("%s_%s", followerID, authorID)
}

func (r *firestoreSubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscription.ID = subscriptionID(subscription.AuthorID, subscription.FollowerID)
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("subscriptions").Doc(subscription.ID).Set(ctx, subscription)
	if err != nil {
		return errors.Internal("Failed to create subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) Delete(ctx context.Context, authorID, followerID string) error {
	exists, err := r.Exists(ctx, authorID, followerID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Subscription", nil)
	}

	_, err = r.client.Collection("subscriptions").Doc(subscriptionID(authorID, followerID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) Exists(ctx context.Context, authorID, followerID string) (bool, error) {
	doc, err := r.client.Collection("subscriptions").Doc(subscriptionID(authorID, followerID)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check subscription", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreSubscriptionRepository) ListByFollower(ctx context.Context, followerID string, limit, offset int) ([]*entity.Subscription, int64, error) {
	query := r.client.Collection("subscriptions").
		Where("followerId", "==", followerID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count subscriptions", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var subscriptions []*entity.Subscription

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate subscriptions", err)
		}
		var subscription entity.Subscription
		if err := doc.DataTo(&subscription); err != nil {
			return nil, 0, errors.Internal("Failed to parse subscription data", err)
		}
		subscriptions = append(subscriptions, &subscription)
	}

	return subscriptions, total, nil
}
