package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// IngredientRepository defines persistence for ingredients. (name, unit) is
// unique; Create returns domain.ErrIngredientExists on a duplicate.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) (*domain.Ingredient, error)
	// CreateMany bulk-inserts ingredients, skipping (name, unit) duplicates,
	// and returns the number actually inserted. Used by the import tool.
	CreateMany(ctx context.Context, ingredients []domain.Ingredient) (int, error)
	Update(ctx context.Context, ingredient *domain.Ingredient) error
	// Delete removes the ingredient and strips its links (recomputing each
	// recipe's ingredient fingerprint) from every recipe referencing it.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Ingredient, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Ingredient, error)
	// List returns ingredients ordered by name. When name is non-empty the
	// result is the union of prefix and substring matches, deduplicated.
	List(ctx context.Context, name string) ([]domain.Ingredient, error)
}
