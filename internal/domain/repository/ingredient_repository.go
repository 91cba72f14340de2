package repository

import (
	"context"

	"foodgram/internal/domain/entity"
)

type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetByIDs returns the found ingredients keyed by id; missing ids are absent.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error)
	// List returns ingredients ordered by name, optionally narrowed to a
	// case-insensitive name prefix.
	List(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error)
}
