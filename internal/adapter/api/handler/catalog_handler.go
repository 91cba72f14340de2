package handler

import (
	"github.com/labstack/echo/v4"

	"foodgram/internal/domain/entity"
	"foodgram/internal/usecase"
	"foodgram/pkg/errors"
	"foodgram/pkg/response"
)

// CatalogHandler exposes the tag and ingredient reference catalogs. Reads are
// public; writes are restricted to admins.
type CatalogHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewCatalogHandler(catalogUseCase *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
	}
}

func (h *CatalogHandler) ListTags(c echo.Context) error {
	tags, err := h.catalogUseCase.ListTags(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tags)
}

func (h *CatalogHandler) GetTag(c echo.Context) error {
	tag, err := h.catalogUseCase.GetTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, tag)
}

func (h *CatalogHandler) CreateTag(c echo.Context) error {
	var req struct {
		Name string `json:"name" validate:"required,max=32"`
		Slug string `json:"slug" validate:"required,max=32"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	tag := &entity.Tag{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := h.catalogUseCase.CreateTag(c.Request().Context(), tag); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, tag)
}

func (h *CatalogHandler) ListIngredients(c echo.Context) error {
	ingredients, err := h.catalogUseCase.ListIngredients(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ingredients)
}

func (h *CatalogHandler) GetIngredient(c echo.Context) error {
	ingredient, err := h.catalogUseCase.GetIngredient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, ingredient)
}

func (h *CatalogHandler) CreateIngredient(c echo.Context) error {
	var req struct {
		Name            string `json:"name" validate:"required,max=128"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
	}

	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ingredient := &entity.Ingredient{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := h.catalogUseCase.CreateIngredient(c.Request().Context(), ingredient); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, ingredient)
}
