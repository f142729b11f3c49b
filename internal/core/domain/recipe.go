package domain

import "time"

// Bounds on user-supplied numeric fields. Payloads outside these ranges are
// rejected with a validation error before anything is persisted.
const (
	MinCookingTime = 1
	MaxCookingTime = 1440

	MinIngredientAmount = 1
	MaxIngredientAmount = 10000
)

// MeasurementUnit enumerates how an ingredient is measured.
type MeasurementUnit string

const (
	UnitGram     MeasurementUnit = "g"
	UnitKilogram MeasurementUnit = "kg"
	UnitPiece    MeasurementUnit = "pcs"
)

// ValidUnit reports whether u is one of the known measurement units.
func ValidUnit(u MeasurementUnit) bool {
	switch u {
	case UnitGram, UnitKilogram, UnitPiece:
		return true
	}
	return false
}

// Tag is admin-managed reference data. Name, color and slug are each unique.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Ingredient is reference data, unique on (name, measurement_unit).
type Ingredient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MeasurementUnit MeasurementUnit `json:"measurement_unit"`
}

// IngredientAmount is one row of the recipe↔ingredient join: an ingredient
// appears at most once per recipe, with a positive bounded amount.
type IngredientAmount struct {
	Ingredient Ingredient `json:"ingredient"`
	Amount     int        `json:"amount"`
}

// Recipe is the aggregate root. Tags and ingredient amounts are loaded fully
// hydrated; Image is an opaque asset path, never interpreted here.
type Recipe struct {
	ID          string             `json:"id"`
	Author      User               `json:"author"`
	Name        string             `json:"name"`
	Image       string             `json:"image"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
	Tags        []Tag              `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
	PubDate     time.Time          `json:"pub_date"`
}
