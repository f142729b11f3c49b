package ports

import (
	"context"
	"sort"
	"strings"
	"time"
)

// IngredientLink is one stored recipe↔ingredient row: the ingredient ID and
// its amount. (recipe, ingredient) is unique within a record by construction.
type IngredientLink struct {
	IngredientID string
	Amount       int
}

// IngredientKey derives the order-independent fingerprint of an ingredient
// link set: IDs sorted and comma-joined. Both the duplicate-recipe check and
// the stored record use this one rule, so the repository can recompute the
// key when a cascade rewrites the links.
func IngredientKey(links []IngredientLink) string {
	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.IngredientID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// RecipeRecord is the persisted shape of a recipe: references only, no
// hydrated tags/ingredients/author. The service layer hydrates records into
// domain.Recipe values.
type RecipeRecord struct {
	ID          string
	AuthorID    string
	Name        string
	Image       string
	Text        string
	CookingTime int
	TagIDs      []string
	Ingredients []IngredientLink
	// IngredientKey is the sorted, joined ingredient ID set, kept for the
	// (name, ingredient-set) duplicate-recipe check.
	IngredientKey string
	PubDate       time.Time
}

// RecipeFilter carries list-endpoint filters. Tag slugs use OR semantics.
// FavoritedBy / InCartOf scope the result to recipes favorited by or carted
// by the given user ID; empty means no such filter.
type RecipeFilter struct {
	TagSlugs    []string
	AuthorID    string
	FavoritedBy string
	InCartOf    string
	Page        int
	Limit       int
}

// RecipeRepository defines persistence for recipes. A recipe and its tag and
// ingredient links live in one document, so creates and updates are atomic;
// Delete removes the recipe together with its favorite and cart rows in one
// transaction.
type RecipeRepository interface {
	Create(ctx context.Context, rec *RecipeRecord) (*RecipeRecord, error)
	Update(ctx context.Context, rec *RecipeRecord) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*RecipeRecord, error)
	FindByIDs(ctx context.Context, ids []string) ([]*RecipeRecord, error)
	// List returns a page of records ordered by publish date plus the total
	// count of matches.
	List(ctx context.Context, filter RecipeFilter) ([]*RecipeRecord, int64, error)
	// ExistsDuplicate reports whether another recipe (excluding excludeID)
	// already has the same name and ingredient set.
	ExistsDuplicate(ctx context.Context, name, ingredientKey, excludeID string) (bool, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*RecipeRecord, error)
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

// UserRecipePairRepository defines a unique (user, recipe) pair store. Two
// instances exist: favorites and the shopping cart. Add fails on a duplicate
// pair and Remove on a missing one, each with the store's own domain error,
// so a concurrent identical request surfaces the same conflict the pre-check
// would have reported.
type UserRecipePairRepository interface {
	Add(ctx context.Context, userID, recipeID string) error
	Remove(ctx context.Context, userID, recipeID string) error
	// Contains reports which of the candidate recipe IDs are paired with the
	// user.
	Contains(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)
	// RecipeIDs returns all recipe IDs paired with the user.
	RecipeIDs(ctx context.Context, userID string) ([]string, error)
}
