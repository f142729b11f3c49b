package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

// ingredientRow is one flattened (ingredient, amount) occurrence drawn from a
// recipe in the cart, before aggregation.
type ingredientRow struct {
	Name   string
	Unit   domain.MeasurementUnit
	Amount int
}

// ShoppingList aggregates ingredient amounts across every recipe currently
// in the actor's cart and renders the export document.
func (s *RecipeService) ShoppingList(ctx context.Context, actor domain.Actor) (*ports.ShoppingList, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	recipeIDs, err := s.cart.RecipeIDs(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	records, err := s.recipes.FindByIDs(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}

	ingredientIDs := make([]string, 0)
	seen := map[string]bool{}
	for _, rec := range records {
		for _, link := range rec.Ingredients {
			if !seen[link.IngredientID] {
				seen[link.IngredientID] = true
				ingredientIDs = append(ingredientIDs, link.IngredientID)
			}
		}
	}
	ings, err := s.ingredients.FindByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	ingredientByID := make(map[string]domain.Ingredient, len(ings))
	for _, ing := range ings {
		ingredientByID[ing.ID] = ing
	}

	rows := make([]ingredientRow, 0)
	for _, rec := range records {
		for _, link := range rec.Ingredients {
			ing, ok := ingredientByID[link.IngredientID]
			if !ok {
				continue
			}
			rows = append(rows, ingredientRow{
				Name:   ing.Name,
				Unit:   ing.MeasurementUnit,
				Amount: link.Amount,
			})
		}
	}

	content := renderShoppingList(user, aggregateRows(rows))
	return &ports.ShoppingList{
		Filename: fmt.Sprintf("%s_shopping_list.txt", user.Username),
		Content:  content,
	}, nil
}

// aggregateRows groups rows by (name, unit) and sums amounts within each
// group. The result is sorted by name then unit, so a fixed cart snapshot
// always renders identically regardless of row retrieval order.
func aggregateRows(rows []ingredientRow) []ingredientRow {
	type key struct {
		name string
		unit domain.MeasurementUnit
	}
	sums := make(map[key]int, len(rows))
	for _, r := range rows {
		sums[key{r.Name, r.Unit}] += r.Amount
	}

	out := make([]ingredientRow, 0, len(sums))
	for k, amount := range sums {
		out = append(out, ingredientRow{Name: k.name, Unit: k.unit, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}

func renderShoppingList(user *domain.User, rows []ingredientRow) string {
	var b strings.Builder
	b.WriteString("Platefull\n")
	fmt.Fprintf(&b, "Shopping list for %s %s\n\n", user.FirstName, user.LastName)
	for _, r := range rows {
		fmt.Fprintf(&b, "%s - %d %s\n", r.Name, r.Amount, r.Unit)
	}
	return b.String()
}
