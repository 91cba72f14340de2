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

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{client: client}
}

func cartItemID(userID, recipeID string) string {
	return fmt.Sprintf("%s_%s", userID, recipeID)
}

func (r *firestoreCartRepository) Add(ctx context.Context, item *entity.CartItem) error {
	item.ID = cartItemID(item.UserID, item.RecipeID)
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("shopping_carts").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to add cart item", err)
	}

	return nil
}

func (r *firestoreCartRepository) Remove(ctx context.Context, userID, recipeID string) error {
	exists, err := r.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("Cart item", nil)
	}

	_, err = r.client.Collection("shopping_carts").Doc(cartItemID(userID, recipeID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove cart item", err)
	}

	return nil
}

func (r *firestoreCartRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	doc, err := r.client.Collection("shopping_carts").Doc(cartItemID(userID, recipeID)).Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, errors.Internal("Failed to check cart item", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreCartRepository) ListRecipeIDs(ctx context.Context, userID string) ([]string, error) {
	iter := r.client.Collection("shopping_carts").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	ids := []string{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate cart items", err)
		}
		var item entity.CartItem
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		ids = append(ids, item.RecipeID)
	}

	return ids, nil
}
