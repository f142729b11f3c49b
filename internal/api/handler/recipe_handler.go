package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/api/metrics"
	"github.com/platefull/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipes, favorites, the shopping
// cart, and the shopping list export.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// List handles GET /api/recipes.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Param        page                 query     int     false  "Page number (1-based)"
// @Param        limit                query     int     false  "Page size"
// @Param        tags                 query     string  false  "Tag slugs, repeatable or comma-separated"
// @Param        author               query     string  false  "Author ID"
// @Param        is_favorited         query     bool    false  "Only recipes the caller favorited"
// @Param        is_in_shopping_cart  query     bool    false  "Only recipes in the caller's cart"
// @Success      200                  {object}  listRecipesResponse
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ctxActor(c), ports.RecipeListInput{
		TagSlugs:         tagSlugParams(c),
		AuthorID:         c.QueryParam("author"),
		IsFavorited:      boolParam(c, "is_favorited"),
		IsInShoppingCart: boolParam(c, "is_in_shopping_cart"),
		Page:             page,
		Limit:            limit,
	})
	if err != nil {
		return err
	}

	items := make([]recipeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, recipeFromView(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, listRecipesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/recipes/:id.
//
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Param        id   path      string  true  "Recipe ID"
// @Success      200  {object}  recipeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeFromView(view))
}

// Create handles POST /api/recipes.
//
// @Summary      Publish a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recipeRequest  true  "Recipe payload; image is a base64 data URL"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Create(c.Request().Context(), ctxActor(c), recipeInputFromRequest(&req))
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, recipeFromView(view))
}

// Update handles PUT /api/recipes/:id.
//
// @Summary      Update a recipe (owner only)
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Recipe ID"
// @Param        body  body      recipeRequest  true  "Full replacement payload"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	var req recipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.service.Update(c.Request().Context(), ctxActor(c), c.Param("id"), recipeInputFromRequest(&req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipeFromView(view))
}

// Delete handles DELETE /api/recipes/:id.
//
// @Summary      Delete a recipe (owner only)
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Favorite handles POST /api/recipes/:id/favorite.
//
// @Summary      Favorite a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe ID"
// @Success      201  {object}  recipeBriefResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/recipes/{id}/favorite [post]
func (h *RecipeHandler) Favorite(c echo.Context) error {
	brief, err := h.service.Favorite(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("favorite", "add").Inc()
	return c.JSON(http.StatusCreated, briefFromPorts(brief))
}

// Unfavorite handles DELETE /api/recipes/:id/favorite.
//
// @Summary      Remove a recipe from favorites
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id}/favorite [delete]
func (h *RecipeHandler) Unfavorite(c echo.Context) error {
	if err := h.service.Unfavorite(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("favorite", "remove").Inc()
	return c.NoContent(http.StatusNoContent)
}

// AddToCart handles POST /api/recipes/:id/shopping_cart.
//
// @Summary      Add a recipe to the shopping cart
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe ID"
// @Success      201  {object}  recipeBriefResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) AddToCart(c echo.Context) error {
	brief, err := h.service.AddToCart(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("cart", "add").Inc()
	return c.JSON(http.StatusCreated, briefFromPorts(brief))
}

// RemoveFromCart handles DELETE /api/recipes/:id/shopping_cart.
//
// @Summary      Remove a recipe from the shopping cart
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id}/shopping_cart [delete]
func (h *RecipeHandler) RemoveFromCart(c echo.Context) error {
	if err := h.service.RemoveFromCart(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("cart", "remove").Inc()
	return c.NoContent(http.StatusNoContent)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart.
//
// @Summary      Download the aggregated shopping list
// @Tags         recipes
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string  "Plain-text shopping list"
// @Failure      401  {object}  errorResponse
// @Router       /api/recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	start := time.Now()
	list, err := h.service.ShoppingList(c.Request().Context(), ctxActor(c))
	if err != nil {
		return err
	}

	metrics.ShoppingListBuildDuration.Observe(time.Since(start).Seconds())
	metrics.ShoppingListExportsTotal.Inc()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+list.Filename+`"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(list.Content))
}

// tagSlugParams collects the tags filter, accepting both repeated params
// (?tags=a&tags=b) and a comma-separated list (?tags=a,b).
func tagSlugParams(c echo.Context) []string {
	var slugs []string
	for _, raw := range c.QueryParams()["tags"] {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				slugs = append(slugs, slug)
			}
		}
	}
	return slugs
}

func boolParam(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}
