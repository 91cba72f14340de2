package router

import (
	"foodgram/internal/adapter/api/handler"
	"foodgram/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authClient *auth.Client) {
	userHandler := handler.GetUserHandler()
	subscriptionHandler := handler.GetSubscriptionHandler()

	// Public profile endpoints still resolve the viewer when a token is sent
	public := e.Group("/api/users")
	public.Use(VerifyToken(authClient))
	public.GET("", userHandler.ListUsers)
	public.GET("/:id", userHandler.GetUser)

	protected := e.Group("/api/users")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", userHandler.GetMe)
	protected.PUT("/me/avatar", userHandler.UpdateAvatar)
	protected.DELETE("/me/avatar", userHandler.DeleteAvatar)
	protected.POST("/me/password", userHandler.UpdatePassword)
	protected.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
	protected.POST("/:id/subscribe", subscriptionHandler.Subscribe)
	protected.DELETE("/:id/subscribe", subscriptionHandler.Unsubscribe)
}
