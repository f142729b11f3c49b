package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const maxIngredientNameLength = 200

// IngredientService implements ingredient reference-data management.
type IngredientService struct {
	ingredients ports.IngredientRepository
	log         zerolog.Logger
}

func NewIngredientService(ingredients ports.IngredientRepository, log zerolog.Logger) *IngredientService {
	return &IngredientService{ingredients: ingredients, log: log}
}

// List returns ingredients, filtered by name when given: prefix matches
// unioned with substring matches, deduplicated by the repository.
func (s *IngredientService) List(ctx context.Context, name string) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx, name)
}

func (s *IngredientService) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	return s.ingredients.FindByID(ctx, id)
}

func (s *IngredientService) Create(ctx context.Context, actor domain.Actor, input ports.IngredientInput) (*domain.Ingredient, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	ingredient, err := ingredientFromInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.ingredients.Create(ctx, ingredient)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("ingredient_id", created.ID).Str("name", created.Name).Msg("ingredient created")
	return created, nil
}

func (s *IngredientService) Update(ctx context.Context, actor domain.Actor, id string, input ports.IngredientInput) (*domain.Ingredient, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := s.ingredients.FindByID(ctx, id); err != nil {
		return nil, err
	}

	ingredient, err := ingredientFromInput(input)
	if err != nil {
		return nil, err
	}
	ingredient.ID = id

	if err := s.ingredients.Update(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *IngredientService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.ingredients.Delete(ctx, id)
}

func ingredientFromInput(input ports.IngredientInput) (*domain.Ingredient, error) {
	if input.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if len(input.Name) > maxIngredientNameLength {
		return nil, domain.Validationf("name must be at most %d characters", maxIngredientNameLength)
	}
	unit := domain.MeasurementUnit(input.MeasurementUnit)
	if !domain.ValidUnit(unit) {
		return nil, domain.Validationf("measurement_unit must be one of: %s, %s, %s",
			domain.UnitGram, domain.UnitKilogram, domain.UnitPiece)
	}
	return &domain.Ingredient{Name: input.Name, MeasurementUnit: unit}, nil
}
