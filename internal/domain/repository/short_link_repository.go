package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type ShortLinkRepository interface {
	Create(ctx context.Context, link *entity.ShortLink) error
	GetByCode(ctx context.Context, code string) (*entity.ShortLink, error)
	GetByRecipeID(ctx context.Context, recipeID string) (*entity.ShortLink, error)
}
