package router

import (
	"foodgram/internal/adapter/api/handler"
	"foodgram/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func SetupRecipeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	recipeHandler := handler.GetRecipeHandler()

	public := e.Group("/api/recipes")
	public.Use(VerifyToken(authClient))
	public.GET("", recipeHandler.ListRecipes)
	public.GET("/:id", recipeHandler.GetRecipe)
	public.GET("/:id/get-link", recipeHandler.GetShortLink)

	protected := e.Group("/api/recipes")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/download_shopping_cart", recipeHandler.DownloadShoppingCart)

	writes := e.Group("/api/recipes")
	writes.Use(authMiddleware.Authenticate)
	writes.Use(middleware.WriteRateLimit())
	writes.POST("", recipeHandler.CreateRecipe)
	writes.PATCH("/:id", recipeHandler.UpdateRecipe)
	writes.DELETE("/:id", recipeHandler.DeleteRecipe)
	writes.POST("/:id/favorite", recipeHandler.AddFavorite)
	writes.DELETE("/:id/favorite", recipeHandler.RemoveFavorite)
	writes.POST("/:id/shopping_cart", recipeHandler.AddToCart)
	writes.DELETE("/:id/shopping_cart", recipeHandler.RemoveFromCart)
}
