package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
}
