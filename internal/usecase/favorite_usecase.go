package usecase

import (
	"context"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, recipeRepo repository.RecipeRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (uc *FavoriteUseCase) AddFavorite(ctx context.Context, userID, recipeID string) (*RecipeShortResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	exists, err := uc.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.BadRequest("Recipe is already in favorites", nil)
	}

	favorite := &entity.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := uc.favoriteRepo.Add(ctx, favorite); err != nil {
		return nil, err
	}

	return &RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (uc *FavoriteUseCase) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	if _, err := uc.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return err
	}

	exists, err := uc.favoriteRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.BadRequest("Recipe is not in favorites", nil)
	}

	return uc.favoriteRepo.Remove(ctx, userID, recipeID)
}
