package ports

import (
	"context"

	"github.com/platefull/recipe-api/internal/core/domain"
)

// IngredientAmountInput is one ingredient reference with its amount in a
// recipe payload.
type IngredientAmountInput struct {
	IngredientID string
	Amount       int
}

// RecipeInput carries a full recipe payload for create and update. Image is
// either a data URL (new upload) or an already stored asset path.
type RecipeInput struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []string
	Ingredients []IngredientAmountInput
}

// RecipeView is a hydrated recipe as seen by a particular actor. The boolean
// flags collapse to false for anonymous actors.
type RecipeView struct {
	Recipe             domain.Recipe
	IsFavorited        bool
	IsInShoppingCart   bool
	AuthorIsSubscribed bool
}

// RecipeListInput carries list parameters as received from the boundary.
type RecipeListInput struct {
	TagSlugs         []string
	AuthorID         string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             int
	Limit            int
}

// RecipePage is one page of recipe views.
type RecipePage struct {
	Items      []RecipeView
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ShoppingList is the rendered export document.
type ShoppingList struct {
	Filename string
	Content  string
}

// RecipeService defines recipe use cases: CRUD with owner-or-read-only
// enforcement, favorite and cart toggles, and the shopping-list export.
type RecipeService interface {
	List(ctx context.Context, actor domain.Actor, input RecipeListInput) (*RecipePage, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*RecipeView, error)
	Create(ctx context.Context, actor domain.Actor, input RecipeInput) (*RecipeView, error)
	Update(ctx context.Context, actor domain.Actor, id string, input RecipeInput) (*RecipeView, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error

	Favorite(ctx context.Context, actor domain.Actor, recipeID string) (*RecipeBrief, error)
	Unfavorite(ctx context.Context, actor domain.Actor, recipeID string) error
	AddToCart(ctx context.Context, actor domain.Actor, recipeID string) (*RecipeBrief, error)
	RemoveFromCart(ctx context.Context, actor domain.Actor, recipeID string) error

	// ShoppingList aggregates ingredient amounts across every recipe in the
	// actor's cart, grouped by (name, unit).
	ShoppingList(ctx context.Context, actor domain.Actor) (*ShoppingList, error)
}

// AssetStore persists opaque image blobs and returns their relative path.
type AssetStore interface {
	// SaveDataURL decodes a base64 data URL and stores the bytes, returning
	// the stored asset's path. The bytes are never interpreted.
	SaveDataURL(dataURL string) (string, error)
}
