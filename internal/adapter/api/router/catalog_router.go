package router

import (
	"foodgram/internal/adapter/api/handler"
	"foodgram/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCatalogRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	catalogHandler := handler.GetCatalogHandler()

	e.GET("/api/tags", catalogHandler.ListTags)
	e.GET("/api/tags/:id", catalogHandler.GetTag)
	e.GET("/api/ingredients", catalogHandler.ListIngredients)
	e.GET("/api/ingredients/:id", catalogHandler.GetIngredient)

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("/tags", catalogHandler.CreateTag)
	admin.POST("/ingredients", catalogHandler.CreateIngredient)
}
