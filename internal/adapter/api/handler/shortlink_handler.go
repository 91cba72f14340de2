package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram/internal/usecase"
	"foodgram/pkg/response"
)

type ShortLinkHandler struct {
	shortLinkUseCase *usecase.ShortLinkUseCase
}

func NewShortLinkHandler(shortLinkUseCase *usecase.ShortLinkUseCase) *ShortLinkHandler {
	return &ShortLinkHandler{
		shortLinkUseCase: shortLinkUseCase,
	}
}

// Resolve redirects a short code to the recipe's canonical page.
func (h *ShortLinkHandler) Resolve(c echo.Context) error {
	target, err := h.shortLinkUseCase.Resolve(c.Request().Context(), c.Param("code"))
	if err != nil {
		return response.Error(c, err)
	}

	return c.Redirect(http.StatusFound, target)
}
