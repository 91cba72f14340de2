package router

import (
	"foodgram/internal/adapter/api/middleware"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, authClient *auth.Client) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, authClient)
	SetupCatalogRouter(e, authMiddleware, adminMiddleware)
	SetupRecipeRouter(e, authMiddleware, authClient)
	SetupShortLinkRouter(e)
	SetupHealthRouter(e)
}
