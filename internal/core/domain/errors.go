package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the whole domain. The HTTP layer maps each family to a
// single status code: validation → 400, unauthenticated → 401, forbidden →
// 403, not-found → 404, conflict → 409.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrFavoriteNotFound   = errors.New("recipe is not in favorites")
	ErrCartItemNotFound   = errors.New("recipe is not in the shopping cart")
	ErrFollowNotFound     = errors.New("subscription does not exist")

	ErrUserExists       = errors.New("user already exists")
	ErrTagExists        = errors.New("tag already exists")
	ErrIngredientExists = errors.New("ingredient already exists")
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrAlreadyFollowing = errors.New("subscription already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Validationf wraps ErrValidation with a field-level message, so callers can
// both match the family with errors.Is and surface the human-readable cause.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
