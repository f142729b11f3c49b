package mongo

import (
	"testing"

	"github.com/platefull/recipe-api/internal/core/domain"
)

func TestUnionByID(t *testing.T) {
	salt := domain.Ingredient{ID: "1", Name: "Salt", MeasurementUnit: domain.UnitGram}
	seaSalt := domain.Ingredient{ID: "2", Name: "Sea salt", MeasurementUnit: domain.UnitGram}
	saltedButter := domain.Ingredient{ID: "3", Name: "Salted butter", MeasurementUnit: domain.UnitGram}

	// Searching "salt": Salt and Salted butter match as prefixes, Sea salt
	// only as a substring. Prefix matches also appear in the substring set;
	// the union keeps each ingredient once, prefix matches first.
	prefix := []domain.Ingredient{salt, saltedButter}
	substring := []domain.Ingredient{salt, saltedButter, seaSalt}

	got := unionByID(prefix, substring)
	if len(got) != 3 {
		t.Fatalf("expected 3 ingredients, got %d: %+v", len(got), got)
	}

	counts := map[string]int{}
	for _, ing := range got {
		counts[ing.Name]++
	}
	for _, name := range []string{"Salt", "Sea salt", "Salted butter"} {
		if counts[name] != 1 {
			t.Errorf("%q appears %d times, want exactly once", name, counts[name])
		}
	}

	if got[0].Name != "Salt" || got[1].Name != "Salted butter" {
		t.Errorf("prefix matches must come first, got %+v", got)
	}
	if got[2].Name != "Sea salt" {
		t.Errorf("substring-only match must come last, got %+v", got)
	}
}

func TestUnionByID_NoSubstringExtras(t *testing.T) {
	salt := domain.Ingredient{ID: "1", Name: "Salt", MeasurementUnit: domain.UnitGram}

	got := unionByID([]domain.Ingredient{salt}, []domain.Ingredient{salt})
	if len(got) != 1 || got[0].Name != "Salt" {
		t.Fatalf("expected single Salt entry, got %+v", got)
	}
}
