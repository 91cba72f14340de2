package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"foodgram/internal/usecase"
	"foodgram/pkg/errors"
	"foodgram/pkg/response"
	"foodgram/pkg/utils"
)

type SubscriptionHandler struct {
	subscriptionUseCase *usecase.SubscriptionUseCase
	defaultRecipesLimit int
}

func NewSubscriptionHandler(subscriptionUseCase *usecase.SubscriptionUseCase, defaultRecipesLimit int) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		defaultRecipesLimit: defaultRecipesLimit,
	}
}

func (h *SubscriptionHandler) recipesLimit(c echo.Context) int {
	limit, err := strconv.Atoi(c.QueryParam("recipes_limit"))
	if err != nil || limit <= 0 {
		return h.defaultRecipesLimit
	}
	return limit
}

func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	authorID := c.Param("id")
	if authorID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	uid := c.Get("uid").(string)

	result, err := h.subscriptionUseCase.Subscribe(c.Request().Context(), uid, authorID, h.recipesLimit(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	authorID := c.Param("id")
	if authorID == "" {
		return response.Error(c, errors.BadRequest("User ID is required", nil))
	}

	uid := c.Get("uid").(string)

	if err := h.subscriptionUseCase.Unsubscribe(c.Request().Context(), uid, authorID); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	uid := c.Get("uid").(string)

	subscriptions, total, err := h.subscriptionUseCase.ListSubscriptions(
		c.Request().Context(), uid, params.Page, params.PageSize, h.recipesLimit(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, subscriptions, total, params.Page, params.PageSize)
}
