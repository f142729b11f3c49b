package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// IngredientInput carries data for creating an ingredient.
type IngredientInput struct {
	Name            string
	MeasurementUnit string
}

// IngredientService defines operations on ingredients. Reads are open to
// anyone; writes require an admin actor (IsAdminOrReadOnly).
type IngredientService interface {
	// List returns ingredients, optionally filtered by name: prefix matches
	// unioned with substring matches, each ingredient at most once.
	List(ctx context.Context, name string) ([]domain.Ingredient, error)
	Get(ctx context.Context, id string) (*domain.Ingredient, error)
	Create(ctx context.Context, actor domain.Actor, input IngredientInput) (*domain.Ingredient, error)
	Update(ctx context.Context, actor domain.Actor, id string, input IngredientInput) (*domain.Ingredient, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
