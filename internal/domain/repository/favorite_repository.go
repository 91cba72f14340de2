package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID, recipeID string) error
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	ListRecipeIDs(ctx context.Context, userID string) ([]string, error)
}
