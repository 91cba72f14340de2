package handler

import (
	"foodgram/internal/usecase"
	"foodgram/pkg/config"

	"github.com/labstack/echo/v4"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	subscriptionHandler *SubscriptionHandler
	catalogHandler      *CatalogHandler
	recipeHandler       *RecipeHandler
	shortLinkHandler    *ShortLinkHandler
)

func Setup(
	cfg *config.Config,
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	subscriptionUseCase *usecase.SubscriptionUseCase,
	catalogUseCase *usecase.CatalogUseCase,
	recipeUseCase *usecase.RecipeUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	cartUseCase *usecase.CartUseCase,
	shortLinkUseCase *usecase.ShortLinkUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	subscriptionHandler = NewSubscriptionHandler(subscriptionUseCase, cfg.RecipesLimit)
	catalogHandler = NewCatalogHandler(catalogUseCase)
	recipeHandler = NewRecipeHandler(recipeUseCase, favoriteUseCase, cartUseCase, shortLinkUseCase, cfg.BaseURL)
	shortLinkHandler = NewShortLinkHandler(shortLinkUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetSubscriptionHandler() *SubscriptionHandler {
	return subscriptionHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetRecipeHandler() *RecipeHandler {
	return recipeHandler
}

func GetShortLinkHandler() *ShortLinkHandler {
	return shortLinkHandler
}

// viewerID returns the authenticated user's id, or "" for anonymous requests.
func viewerID(c echo.Context) string {
	if uid, ok := c.Get("uid").(string); ok {
		return uid
	}
	return ""
}
