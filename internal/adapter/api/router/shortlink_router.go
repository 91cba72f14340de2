package router

import (
	"foodgram/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupShortLinkRouter(e *echo.Echo) {
	shortLinkHandler := handler.GetShortLinkHandler()
	e.GET("/s/:code", shortLinkHandler.Resolve)
}
