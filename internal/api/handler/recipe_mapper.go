package handler

import (
	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

func tagFromDomain(t *domain.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func ingredientFromDomain(i *domain.Ingredient) ingredientResponse {
	return ingredientResponse{
		ID:              i.ID,
		Name:            i.Name,
		MeasurementUnit: string(i.MeasurementUnit),
	}
}

func recipeFromView(v *ports.RecipeView) recipeResponse {
	tags := make([]tagResponse, 0, len(v.Recipe.Tags))
	for i := range v.Recipe.Tags {
		tags = append(tags, tagFromDomain(&v.Recipe.Tags[i]))
	}

	ingredients := make([]recipeIngredientResponse, 0, len(v.Recipe.Ingredients))
	for _, ia := range v.Recipe.Ingredients {
		ingredients = append(ingredients, recipeIngredientResponse{
			ID:              ia.Ingredient.ID,
			Name:            ia.Ingredient.Name,
			MeasurementUnit: string(ia.Ingredient.MeasurementUnit),
			Amount:          ia.Amount,
		})
	}

	return recipeResponse{
		ID:               v.Recipe.ID,
		Tags:             tags,
		Author:           userFromDomain(&v.Recipe.Author, v.AuthorIsSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      v.IsFavorited,
		IsInShoppingCart: v.IsInShoppingCart,
		Name:             v.Recipe.Name,
		Image:            v.Recipe.Image,
		Text:             v.Recipe.Text,
		CookingTime:      v.Recipe.CookingTime,
	}
}

func recipeInputFromRequest(req *recipeRequest) ports.RecipeInput {
	ingredients := make([]ports.IngredientAmountInput, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, ports.IngredientAmountInput{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return ports.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: ingredients,
	}
}
