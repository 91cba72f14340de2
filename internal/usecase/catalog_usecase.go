package usecase

import (
	"context"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

// CatalogUseCase serves the fixed tag and ingredient reference data. Both
// listings are unpaginated; the catalogs are small and seeded by operators.
type CatalogUseCase struct {
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

func NewCatalogUseCase(tagRepo repository.TagRepository, ingredientRepo repository.IngredientRepository) *CatalogUseCase {
	return &CatalogUseCase{
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (uc *CatalogUseCase) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	return uc.tagRepo.List(ctx)
}

func (uc *CatalogUseCase) GetTag(ctx context.Context, id string) (*entity.Tag, error) {
	return uc.tagRepo.GetByID(ctx, id)
}

// CreateTag enforces the catalog constraints: tag names and slugs are unique.
func (uc *CatalogUseCase) CreateTag(ctx context.Context, tag *entity.Tag) error {
	_, err := uc.tagRepo.GetBySlug(ctx, tag.Slug)
	if err == nil {
		return errors.BadRequest("Tag slug is already in use", nil)
	}
	if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	existing, err := uc.tagRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.Name == tag.Name {
			return errors.BadRequest("Tag name is already in use", nil)
		}
	}

	return uc.tagRepo.Create(ctx, tag)
}

// ListIngredients filters by case-insensitive name prefix when namePrefix is
// non-empty.
func (uc *CatalogUseCase) ListIngredients(ctx context.Context, namePrefix string) ([]*entity.Ingredient, error) {
	return uc.ingredientRepo.List(ctx, namePrefix)
}

func (uc *CatalogUseCase) GetIngredient(ctx context.Context, id string) (*entity.Ingredient, error) {
	return uc.ingredientRepo.GetByID(ctx, id)
}

// CreateIngredient enforces uniqueness of the (name, measurement unit) pair;
// the same name under a different unit is a distinct catalog entry.
func (uc *CatalogUseCase) CreateIngredient(ctx context.Context, ingredient *entity.Ingredient) error {
	existing, err := uc.ingredientRepo.List(ctx, ingredient.Name)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.Name == ingredient.Name && other.MeasurementUnit == ingredient.MeasurementUnit {
			return errors.BadRequest("Ingredient already exists", nil)
		}
	}

	return uc.ingredientRepo.Create(ctx, ingredient)
}
