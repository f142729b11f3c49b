package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-api/internal/api/metrics"
	"github.com/platefull/recipe-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user profiles and subscriptions.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listUsersResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ctxActor(c), page, limit)
	if err != nil {
		return err
	}

	items := make([]userResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, userFromProfile(&result.Items[i]))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	profile, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromProfile(profile))
}

// Me handles GET /api/users/me.
//
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	profile, err := h.service.Me(c.Request().Context(), ctxActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userFromProfile(profile))
}

// SetPassword handles POST /api/users/set_password.
//
// @Summary      Change the authenticated user's password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  setPasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/users/set_password [post]
func (h *UserHandler) SetPassword(c echo.Context) error {
	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetPassword(c.Request().Context(), ctxActor(c), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Subscriptions handles GET /api/users/subscriptions.
//
// @Summary      List followed authors with their recipes
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        recipes_limit  query     int  false  "Max recipes embedded per author"
// @Success      200            {array}   subscriptionResponse
// @Failure      401            {object}  errorResponse
// @Router       /api/users/subscriptions [get]
func (h *UserHandler) Subscriptions(c echo.Context) error {
	recipesLimit, _ := strconv.Atoi(c.QueryParam("recipes_limit"))

	subs, err := h.service.Subscriptions(c.Request().Context(), ctxActor(c), ports.SubscriptionsInput{
		RecipesLimit: recipesLimit,
	})
	if err != nil {
		return err
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, subscriptionFromPorts(&subs[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Subscribe handles POST /api/users/:id/subscribe.
//
// @Summary      Follow an author
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Author ID"
// @Success      201  {object}  subscriptionResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/users/{id}/subscribe [post]
func (h *UserHandler) Subscribe(c echo.Context) error {
	sub, err := h.service.Subscribe(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("subscription", "add").Inc()
	return c.JSON(http.StatusCreated, subscriptionFromPorts(sub))
}

// Unsubscribe handles DELETE /api/users/:id/subscribe.
//
// @Summary      Unfollow an author
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "Author ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id}/subscribe [delete]
func (h *UserHandler) Unsubscribe(c echo.Context) error {
	if err := h.service.Unsubscribe(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}

	metrics.MarksTotal.WithLabelValues("subscription", "remove").Inc()
	return c.NoContent(http.StatusNoContent)
}
