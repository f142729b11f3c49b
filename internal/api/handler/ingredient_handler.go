package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/core/ports"
)

// IngredientHandler handles HTTP requests for the ingredient catalog.
type IngredientHandler struct {
	service ports.IngredientService
}

func NewIngredientHandler(service ports.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// List handles GET /api/ingredients.
//
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Param        name  query    string  false  "Name filter (prefix matches first, then substring matches)"
// @Success      200   {array}  ingredientResponse
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	ingredients, err := h.service.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return err
	}

	out := make([]ingredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, ingredientFromDomain(&ingredients[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/ingredients/:id.
//
// @Summary      Get an ingredient
// @Tags         ingredients
// @Produce      json
// @Param        id   path      string  true  "Ingredient ID"
// @Success      200  {object}  ingredientResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	ingredient, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ingredientFromDomain(ingredient))
}

// Create handles POST /api/ingredients.
//
// @Summary      Create an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      ingredientRequest  true  "Ingredient details"
// @Success      201   {object}  ingredientResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	var req ingredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.service.Create(c.Request().Context(), ctxActor(c), ports.IngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ingredientFromDomain(ingredient))
}

// Update handles PUT /api/ingredients/:id.
//
// @Summary      Replace an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Ingredient ID"
// @Param        body  body      ingredientRequest  true  "Ingredient details"
// @Success      200   {object}  ingredientResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/ingredients/{id} [put]
func (h *IngredientHandler) Update(c echo.Context) error {
	var req ingredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.service.Update(c.Request().Context(), ctxActor(c), c.Param("id"), ports.IngredientInput{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ingredientFromDomain(ingredient))
}

// Delete handles DELETE /api/ingredients/:id.
//
// @Summary      Delete an ingredient
// @Tags         ingredients
// @Security     BearerAuth
// @Param        id  path  string  true  "Ingredient ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
