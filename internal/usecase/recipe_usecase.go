package usecase

import (
	"context"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/internal/domain/service"
	"foodgram/pkg/errors"
)

type RecipeUseCase struct {
	recipeRepo       repository.RecipeRepository
	tagRepo          repository.TagRepository
	ingredientRepo   repository.IngredientRepository
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	favoriteRepo     repository.FavoriteRepository
	cartRepo         repository.CartRepository
	images           ImageUploader
	limiter          ActionLimiter
}

func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	favoriteRepo repository.FavoriteRepository,
	cartRepo repository.CartRepository,
	images ImageUploader,
	limiter ActionLimiter,
) *RecipeUseCase {
	return &RecipeUseCase{
		recipeRepo:       recipeRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		images:           images,
		limiter:          limiter,
	}
}

type RecipeIngredientInput struct {
	ID     string
	Amount int
}

type RecipeInput struct {
	Name        string
	Text        string
	Image       string // base64 data URI; optional on update
	CookingTime int
	TagIDs      []string
	Ingredients []RecipeIngredientInput
}

type RecipeIngredientView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	Text             string                 `json:"text"`
	Tags             []*entity.Tag          `json:"tags"`
	Author           *UserResponse          `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	CookingTime      int                    `json:"cooking_time"`
	Image            string                 `json:"image"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
}

// RecipeShortResponse is the minified recipe used in favorites, cart
// confirmations, and subscription listings.
type RecipeShortResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ListRecipesFilter mirrors the feed query parameters. The favorited and
// in-cart flags only apply for authenticated viewers.
type ListRecipesFilter struct {
	AuthorID         string
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
}

func (uc *RecipeUseCase) validateInput(ctx context.Context, input RecipeInput) error {
	if len(input.Ingredients) == 0 {
		return errors.BadRequest("Recipe must have at least one ingredient", nil)
	}

	seen := make(map[string]bool, len(input.Ingredients))
	ids := make([]string, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if seen[item.ID] {
			return errors.BadRequest("Ingredients must not repeat", nil)
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}

	found, err := uc.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return errors.BadRequest("Ingredient "+id+" does not exist", nil)
		}
	}

	if len(input.TagIDs) == 0 {
		return errors.BadRequest("Recipe must have at least one tag", nil)
	}

	seenTags := make(map[string]bool, len(input.TagIDs))
	for _, tagID := range input.TagIDs {
		if seenTags[tagID] {
			return errors.BadRequest("Tags must not repeat", nil)
		}
		seenTags[tagID] = true

		if _, err := uc.tagRepo.GetByID(ctx, tagID); err != nil {
			return errors.BadRequest("Tag "+tagID+" does not exist", nil)
		}
	}

	return nil
}

func (uc *RecipeUseCase) CreateRecipe(ctx context.Context, authorID string, input RecipeInput) (*RecipeResponse, error) {
	if allowed, _ := uc.limiter.Allow(authorID, "create_recipe"); !allowed {
		return nil, errors.TooManyRequests("Too many recipes created, try again later")
	}

	if err := uc.validateInput(ctx, input); err != nil {
		return nil, err
	}

	if input.Image == "" {
		return nil, errors.BadRequest("Recipe image is required", nil)
	}

	imageURL, err := uc.images.UploadBase64(ctx, input.Image, service.RecipeImageFolder)
	if err != nil {
		return nil, errors.BadRequest("Invalid recipe image", err)
	}

	ingredients := make([]entity.RecipeIngredient, len(input.Ingredients))
	for i, item := range input.Ingredients {
		ingredients[i] = entity.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		}
	}

	recipe := &entity.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		ImageURL:    imageURL,
		CookingTime: input.CookingTime,
		TagIDs:      input.TagIDs,
		Ingredients: ingredients,
	}

	if err := uc.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	return uc.buildResponse(ctx, recipe, authorID)
}

func (uc *RecipeUseCase) UpdateRecipe(ctx context.Context, id, userID string, input RecipeInput) (*RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recipe.AuthorID != userID {
		return nil, errors.Forbidden("Only the author can edit a recipe", nil)
	}

	if err := uc.validateInput(ctx, input); err != nil {
		return nil, err
	}

	if input.Image != "" {
		imageURL, err := uc.images.UploadBase64(ctx, input.Image, service.RecipeImageFolder)
		if err != nil {
			return nil, errors.BadRequest("Invalid recipe image", err)
		}
		if recipe.ImageURL != "" {
			_ = uc.images.Delete(ctx, recipe.ImageURL)
		}
		recipe.ImageURL = imageURL
	}

	// Tags and ingredients are replaced wholesale
	ingredients := make([]entity.RecipeIngredient, len(input.Ingredients))
	for i, item := range input.Ingredients {
		ingredients[i] = entity.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		}
	}

	recipe.Name = input.Name
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime
	recipe.TagIDs = input.TagIDs
	recipe.Ingredients = ingredients

	if err := uc.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	return uc.buildResponse(ctx, recipe, userID)
}

func (uc *RecipeUseCase) DeleteRecipe(ctx context.Context, id, userID string) error {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if recipe.AuthorID != userID {
		return errors.Forbidden("Only the author can delete a recipe", nil)
	}

	if err := uc.recipeRepo.Delete(ctx, id); err != nil {
		return err
	}

	if recipe.ImageURL != "" {
		_ = uc.images.Delete(ctx, recipe.ImageURL)
	}

	return nil
}

func (uc *RecipeUseCase) GetRecipeByID(ctx context.Context, id, viewerID string) (*RecipeResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.buildResponse(ctx, recipe, viewerID)
}

func (uc *RecipeUseCase) ListRecipes(ctx context.Context, viewerID string, filter ListRecipesFilter, page, pageSize int) ([]*RecipeResponse, int64, error) {
	repoFilter := repository.RecipeFilter{
		AuthorID: filter.AuthorID,
	}

	for _, slug := range filter.TagSlugs {
		tag, err := uc.tagRepo.GetBySlug(ctx, slug)
		if err != nil {
			// Unknown slug narrows the result to nothing, it is not an error
			if errors.Is(err, "NOT_FOUND") {
				continue
			}
			return nil, 0, err
		}
		repoFilter.TagIDs = append(repoFilter.TagIDs, tag.ID)
	}
	if len(filter.TagSlugs) > 0 && len(repoFilter.TagIDs) == 0 {
		return []*RecipeResponse{}, 0, nil
	}

	if viewerID != "" && filter.IsFavorited {
		ids, err := uc.favoriteRepo.ListRecipeIDs(ctx, viewerID)
		if err != nil {
			return nil, 0, err
		}
		repoFilter.IDs = ids
	}

	if viewerID != "" && filter.IsInShoppingCart {
		ids, err := uc.cartRepo.ListRecipeIDs(ctx, viewerID)
		if err != nil {
			return nil, 0, err
		}
		if repoFilter.IDs != nil {
			repoFilter.IDs = intersect(repoFilter.IDs, ids)
		} else {
			repoFilter.IDs = ids
		}
	}

	offset := (page - 1) * pageSize
	recipes, total, err := uc.recipeRepo.List(ctx, repoFilter, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		resp, err := uc.buildResponse(ctx, recipe, viewerID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, resp)
	}

	return responses, total, nil
}

func (uc *RecipeUseCase) buildResponse(ctx context.Context, recipe *entity.Recipe, viewerID string) (*RecipeResponse, error) {
	author, err := uc.userRepo.GetByID(ctx, recipe.AuthorID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != "" && viewerID != author.ID {
		isSubscribed, err = uc.subscriptionRepo.Exists(ctx, author.ID, viewerID)
		if err != nil {
			return nil, err
		}
	}

	tags := make([]*entity.Tag, 0, len(recipe.TagIDs))
	for _, tagID := range recipe.TagIDs {
		tag, err := uc.tagRepo.GetByID(ctx, tagID)
		if err != nil {
			continue // tag removed from the catalog after publication
		}
		tags = append(tags, tag)
	}

	ingredientIDs := make([]string, len(recipe.Ingredients))
	for i, item := range recipe.Ingredients {
		ingredientIDs[i] = item.IngredientID
	}
	ingredientMap, err := uc.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}

	ingredients := make([]RecipeIngredientView, 0, len(recipe.Ingredients))
	for _, item := range recipe.Ingredients {
		ingredient, ok := ingredientMap[item.IngredientID]
		if !ok {
			continue
		}
		ingredients = append(ingredients, RecipeIngredientView{
			ID:              ingredient.ID,
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
			Amount:          item.Amount,
		})
	}

	isFavorited := false
	isInCart := false
	if viewerID != "" {
		if isFavorited, err = uc.favoriteRepo.Exists(ctx, viewerID, recipe.ID); err != nil {
			return nil, err
		}
		if isInCart, err = uc.cartRepo.Exists(ctx, viewerID, recipe.ID); err != nil {
			return nil, err
		}
	}

	return &RecipeResponse{
		ID:   recipe.ID,
		Name: recipe.Name,
		Text: recipe.Text,
		Tags: tags,
		Author: &UserResponse{
			ID:           author.ID,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			Email:        author.Email,
			Avatar:       author.AvatarURL,
			IsSubscribed: isSubscribed,
		},
		Ingredients:      ingredients,
		CookingTime:      recipe.CookingTime,
		Image:            recipe.ImageURL,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
	}, nil
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(a))
	for _, v := range a {
		set[v] = true
	}

	result := []string{}
	for _, v := range b {
		if set[v] {
			result = append(result, v)
		}
	}
	return result
}
