package router

import (
	"foodgram/internal/adapter/api/handler"
	"foodgram/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	public := e.Group("/api/auth")
	public.Use(middleware.AuthRateLimit())
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.RefreshToken)

	protected := e.Group("/api/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.POST("/logout", authHandler.Logout)
}
