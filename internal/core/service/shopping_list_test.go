package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

func TestShoppingList_AggregatesByNameAndUnit(t *testing.T) {
	f := newRecipeFixture(t)
	fanUser := seedUser(t, f.users, "hungry")
	fan := actorFor(fanUser)

	// Two recipes sharing salt: 10 g in the first, 5 g in the second.
	first, err := f.svc.Create(context.Background(), f.author, f.validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	input := f.validInput()
	input.Name = "Flatbread"
	input.Ingredients = []ports.IngredientAmountInput{
		{IngredientID: f.salt.ID, Amount: 5},
		{IngredientID: f.flour.ID, Amount: 200},
	}
	second, err := f.svc.Create(context.Background(), f.author, input)
	if err != nil {
		t.Fatalf("second Create returned error: %v", err)
	}

	for _, id := range []string{first.Recipe.ID, second.Recipe.ID} {
		if _, err := f.svc.AddToCart(context.Background(), fan, id); err != nil {
			t.Fatalf("AddToCart returned error: %v", err)
		}
	}

	list, err := f.svc.ShoppingList(context.Background(), fan)
	if err != nil {
		t.Fatalf("ShoppingList returned error: %v", err)
	}

	if list.Filename != "hungry_shopping_list.txt" {
		t.Fatalf("unexpected filename: %q", list.Filename)
	}

	want := "Platefull\n" +
		"Shopping list for First Last\n\n" +
		"Flour - 700 g\n" +
		"Salt - 15 g\n"
	if list.Content != want {
		t.Fatalf("unexpected content:\n got: %q\nwant: %q", list.Content, want)
	}

	// Salt appears exactly once despite coming from two recipes.
	if n := strings.Count(list.Content, "Salt"); n != 1 {
		t.Fatalf("expected a single aggregated Salt line, found %d", n)
	}
}

func TestShoppingList_SameNameDifferentUnitStaysSeparate(t *testing.T) {
	rows := []ingredientRow{
		{Name: "Sugar", Unit: domain.UnitKilogram, Amount: 1},
		{Name: "Sugar", Unit: domain.UnitGram, Amount: 200},
		{Name: "Sugar", Unit: domain.UnitGram, Amount: 300},
	}

	out := aggregateRows(rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d: %+v", len(out), out)
	}
	// Sorted by name then unit: "g" before "kg".
	if out[0].Unit != domain.UnitGram || out[0].Amount != 500 {
		t.Fatalf("unexpected first group: %+v", out[0])
	}
	if out[1].Unit != domain.UnitKilogram || out[1].Amount != 1 {
		t.Fatalf("unexpected second group: %+v", out[1])
	}
}

func TestShoppingList_EmptyCart(t *testing.T) {
	f := newRecipeFixture(t)
	fan := actorFor(seedUser(t, f.users, "empty"))

	list, err := f.svc.ShoppingList(context.Background(), fan)
	if err != nil {
		t.Fatalf("ShoppingList returned error: %v", err)
	}
	want := "Platefull\nShopping list for First Last\n\n"
	if list.Content != want {
		t.Fatalf("unexpected empty-cart content: %q", list.Content)
	}
}

func TestShoppingList_Anonymous(t *testing.T) {
	f := newRecipeFixture(t)

	if _, err := f.svc.ShoppingList(context.Background(), domain.Actor{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
