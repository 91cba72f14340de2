package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"foodgram/internal/domain/entity"
	"foodgram/internal/domain/repository"
	"foodgram/pkg/errors"
)

type CartUseCase struct {
	cartRepo       repository.CartRepository
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:       cartRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
	}
}

func (uc *CartUseCase) AddToCart(ctx context.Context, userID, recipeID string) (*RecipeShortResponse, error) {
	recipe, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	exists, err := uc.cartRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.BadRequest("Recipe is already in the shopping cart", nil)
	}

	item := &entity.CartItem{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := uc.cartRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	return &RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}, nil
}

func (uc *CartUseCase) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	if _, err := uc.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return err
	}

	exists, err := uc.cartRepo.Exists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.BadRequest("Recipe is not in the shopping cart", nil)
	}

	return uc.cartRepo.Remove(ctx, userID, recipeID)
}

// ShoppingListItem is one aggregated row of the rendered shopping list.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// BuildShoppingList sums ingredient amounts across every recipe in the cart,
// grouping identical ingredients into a single row.
func (uc *CartUseCase) BuildShoppingList(ctx context.Context, userID string) ([]ShoppingListItem, error) {
	recipeIDs, err := uc.cartRepo.ListRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recipeIDs) == 0 {
		return nil, errors.BadRequest("Shopping cart is empty", nil)
	}

	recipes, err := uc.recipeRepo.GetByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	idTotals := make(map[string]int)
	ingredientIDs := make([]string, 0)
	for _, recipe := range recipes {
		for _, item := range recipe.Ingredients {
			if _, seen := idTotals[item.IngredientID]; !seen {
				ingredientIDs = append(ingredientIDs, item.IngredientID)
			}
			idTotals[item.IngredientID] += item.Amount
		}
	}

	ingredients, err := uc.ingredientRepo.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}

	// Rows are keyed by (name, unit), so catalog entries sharing the same
	// name and unit still collapse into a single line.
	grouped := make(map[string]*ShoppingListItem)
	for id, amount := range idTotals {
		ingredient, ok := ingredients[id]
		if !ok {
			continue
		}
		key := ingredient.Name + "\x00" + ingredient.MeasurementUnit
		if row, ok := grouped[key]; ok {
			row.Amount += amount
			continue
		}
		grouped[key] = &ShoppingListItem{
			Name:            ingredient.Name,
			MeasurementUnit: ingredient.MeasurementUnit,
			Amount:          amount,
		}
	}

	items := make([]ShoppingListItem, 0, len(grouped))
	for _, row := range grouped {
		items = append(items, *row)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})

	return items, nil
}

// RenderShoppingList formats the aggregated list as the plain text file
// clients download.
func RenderShoppingList(items []ShoppingListItem) string {
	var sb strings.Builder
	sb.WriteString("SHOPPING LIST\n")
	sb.WriteString("-------------\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "* %s (%s): %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}
	return sb.String()
}
