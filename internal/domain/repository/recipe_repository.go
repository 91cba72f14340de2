package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

// RecipeFilter narrows recipe listings. A nil IDs slice means no id
// constraint; an empty non-nil slice matches nothing.
type RecipeFilter struct {
	AuthorID string
	TagIDs   []string
	IDs      []string
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id string) error
	// List returns recipes newest first.
	List(ctx context.Context, filter RecipeFilter, limit, offset int) ([]*entity.Recipe, int64, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Recipe, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Recipe, error)
}
