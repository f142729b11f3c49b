package ports

import "testing"

func TestIngredientKey_OrderIndependent(t *testing.T) {
	a := IngredientKey([]IngredientLink{
		{IngredientID: "ing-2", Amount: 10},
		{IngredientID: "ing-1", Amount: 500},
	})
	b := IngredientKey([]IngredientLink{
		{IngredientID: "ing-1", Amount: 500},
		{IngredientID: "ing-2", Amount: 10},
	})
	if a != b {
		t.Fatalf("key depends on link order: %q vs %q", a, b)
	}
	if a != "ing-1,ing-2" {
		t.Fatalf("unexpected key: %q", a)
	}
}

func TestIngredientKey_RecomputeAfterRemoval(t *testing.T) {
	full := []IngredientLink{
		{IngredientID: "ing-1", Amount: 500},
		{IngredientID: "ing-2", Amount: 10},
		{IngredientID: "ing-3", Amount: 2},
	}

	// Dropping one link must yield the same key as building the smaller set
	// directly, so a cascade rewrite keeps the duplicate check honest.
	withoutSecond := []IngredientLink{full[0], full[2]}
	if got, want := IngredientKey(withoutSecond), "ing-1,ing-3"; got != want {
		t.Fatalf("recomputed key = %q, want %q", got, want)
	}

	if IngredientKey(full) == IngredientKey(withoutSecond) {
		t.Fatalf("removing a link must change the key")
	}
}

func TestIngredientKey_Empty(t *testing.T) {
	if got := IngredientKey(nil); got != "" {
		t.Fatalf("empty link set key = %q, want empty", got)
	}
}
