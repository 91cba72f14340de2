package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram/internal/usecase"
	"foodgram/pkg/errors"
	"foodgram/pkg/response"
	"foodgram/pkg/utils"
)

type RecipeHandler struct {
	recipeUseCase    *usecase.RecipeUseCase
	favoriteUseCase  *usecase.FavoriteUseCase
	cartUseCase      *usecase.CartUseCase
	shortLinkUseCase *usecase.ShortLinkUseCase
	baseURL          string
}

func NewRecipeHandler(
	recipeUseCase *usecase.RecipeUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	cartUseCase *usecase.CartUseCase,
	shortLinkUseCase *usecase.ShortLinkUseCase,
	baseURL string,
) *RecipeHandler {
	return &RecipeHandler{
		recipeUseCase:    recipeUseCase,
		favoriteUseCase:  favoriteUseCase,
		cartUseCase:      cartUseCase,
		shortLinkUseCase: shortLinkUseCase,
		baseURL:          baseURL,
	}
}

type recipeIngredientRequest struct {
	ID     string `json:"id" validate:"required"`
	Amount int    `json:"amount" validate:"required,min=1,max=32000"`
}

type recipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=256"`
	Text        string                    `json:"text" validate:"required"`
	Image       string                    `json:"image"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
	Tags        []string                  `json:"tags" validate:"required,min=1,dive,required"`
	Ingredients []recipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
}

func (r recipeRequest) toInput() usecase.RecipeInput {
	ingredients := make([]usecase.RecipeIngredientInput, len(r.Ingredients))
	for i, item := range r.Ingredients {
		ingredients[i] = usecase.RecipeIngredientInput{
			ID:     item.ID,
			Amount: item.Amount,
		}
	}

	return usecase.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		TagIDs:      r.Tags,
		Ingredients: ingredients,
	}
}

func listFilter(c echo.Context) usecase.ListRecipesFilter {
	return usecase.ListRecipesFilter{
		AuthorID:         c.QueryParam("author"),
		TagSlugs:         c.QueryParams()["tags"],
		IsFavorited:      c.QueryParam("is_favorited") == "1",
		IsInShoppingCart: c.QueryParam("is_in_shopping_cart") == "1",
	}
}

func (h *RecipeHandler) ListRecipes(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	recipes, total, err := h.recipeUseCase.ListRecipes(
		c.Request().Context(), viewerID(c), listFilter(c), params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, recipes, total, params.Page, params.PageSize)
}

func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipe, err := h.recipeUseCase.GetRecipeByID(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, recipe)
}

func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	recipe, err := h.recipeUseCase.CreateRecipe(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	recipe, err := h.recipeUseCase.UpdateRecipe(c.Request().Context(), c.Param("id"), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.recipeUseCase.DeleteRecipe(c.Request().Context(), c.Param("id"), uid); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *RecipeHandler) GetShortLink(c echo.Context) error {
	code, err := h.shortLinkUseCase.GetOrCreate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"short-link": h.baseURL + "/s/" + code,
	})
}

func (h *RecipeHandler) AddFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)

	recipe, err := h.favoriteUseCase.AddFavorite(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, recipe)
}

func (h *RecipeHandler) RemoveFavorite(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.favoriteUseCase.RemoveFavorite(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *RecipeHandler) AddToCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	recipe, err := h.cartUseCase.AddToCart(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, recipe)
}

func (h *RecipeHandler) RemoveFromCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.cartUseCase.RemoveFromCart(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.cartUseCase.BuildShoppingList(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	text := usecase.RenderShoppingList(items)

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
