package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type CartRepository interface {
	Add(ctx context.Context, item *entity.CartItem) error
	Remove(ctx context.Context, userID, recipeID string) error
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	ListRecipeIDs(ctx context.Context, userID string) ([]string, error)
}
