package main

import (
	"strings"
	"testing"

	"github.com/platefull/recipe-api/internal/core/domain"
)

func TestReadIngredients(t *testing.T) {
	csv := strings.Join([]string{
		"Salt,g",
		"Flour,kg",
		"Egg,pcs",
		"Milk,ml",
		",g",
	}, "\n")

	ingredients, invalid, err := readIngredients(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("readIngredients returned error: %v", err)
	}
	if len(ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %d: %+v", len(ingredients), ingredients)
	}
	// The "ml" row and the nameless row are invalid: only units the API
	// itself accepts may enter the catalog.
	if invalid != 2 {
		t.Fatalf("expected 2 invalid rows, got %d", invalid)
	}

	want := []domain.Ingredient{
		{Name: "Salt", MeasurementUnit: domain.UnitGram},
		{Name: "Flour", MeasurementUnit: domain.UnitKilogram},
		{Name: "Egg", MeasurementUnit: domain.UnitPiece},
	}
	for i, w := range want {
		if ingredients[i] != w {
			t.Errorf("ingredient %d = %+v, want %+v", i, ingredients[i], w)
		}
	}
}

func TestReadIngredients_MalformedRecord(t *testing.T) {
	if _, _, err := readIngredients(strings.NewReader("Salt,g,extra")); err == nil {
		t.Fatalf("expected error for a row with the wrong field count")
	}
}
