package usecase

import (
	"context"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type SubscriptionUseCase struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	recipeRepo       repository.RecipeRepository
}

func NewSubscriptionUseCase(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

// SubscriptionResponse is an author profile extended with a preview of their
// recipes and the full count.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, followerID, authorID string, recipesLimit int) (*SubscriptionResponse, error) {
	if followerID == authorID {
		return nil, errors.BadRequest("You cannot subscribe to yourself", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	exists, err := uc.subscriptionRepo.Exists(ctx, authorID, followerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.BadRequest("You are already subscribed to this user", nil)
	}

	subscription := &entity.Subscription{
		AuthorID:   authorID,
		FollowerID: followerID,
	}
	if err := uc.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	return uc.toResponse(ctx, author, recipesLimit)
}

func (uc *SubscriptionUseCase) Unsubscribe(ctx context.Context, followerID, authorID string) error {
	if _, err := uc.userRepo.GetByID(ctx, authorID); err != nil {
		return errors.NotFound("User", err)
	}

	exists, err := uc.subscriptionRepo.Exists(ctx, authorID, followerID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.BadRequest("You are not subscribed to this user", nil)
	}

	return uc.subscriptionRepo.Delete(ctx, authorID, followerID)
}

// ListSubscriptions pages through the viewer's followed authors, newest
// subscription first.
func (uc *SubscriptionUseCase) ListSubscriptions(ctx context.Context, followerID string, page, pageSize, recipesLimit int) ([]*SubscriptionResponse, int64, error) {
	offset := (page - 1) * pageSize

	subscriptions, total, err := uc.subscriptionRepo.ListByFollower(ctx, followerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*SubscriptionResponse, 0, len(subscriptions))
	for _, sub := range subscriptions {
		author, err := uc.userRepo.GetByID(ctx, sub.AuthorID)
		if err != nil {
			continue // author account removed, skip the stale edge
		}

		resp, err := uc.toResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (uc *SubscriptionUseCase) toResponse(ctx context.Context, author *entity.User, recipesLimit int) (*SubscriptionResponse, error) {
	recipes, err := uc.recipeRepo.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	count, err := uc.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	previews := make([]RecipeShortResponse, 0, len(recipes))
	for _, recipe := range recipes {
		previews = append(previews, RecipeShortResponse{
			ID:          recipe.ID,
			Name:        recipe.Name,
			Image:       recipe.ImageURL,
			CookingTime: recipe.CookingTime,
		})
	}

	return &SubscriptionResponse{
		UserResponse: UserResponse{
			ID:           author.ID,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			Email:        author.Email,
			Avatar:       author.AvatarURL,
			IsSubscribed: true,
		},
		Recipes:      previews,
		RecipesCount: count,
	}, nil
}
