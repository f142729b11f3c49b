package handler

// --- Request types ---

type tagRequest struct {
	Name  string `json:"name"  validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor"`
	Slug  string `json:"slug"  validate:"omitempty,max=200"`
}

type ingredientRequest struct {
	Name            string `json:"name"             validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required"`
}

type recipeIngredientRequest struct {
	ID     string `json:"id"     validate:"required"`
	Amount int    `json:"amount" validate:"required,min=1"`
}

type recipeRequest struct {
	Name        string                    `json:"name"         validate:"required,max=200"`
	Text        string                    `json:"text"         validate:"required"`
	Image       string                    `json:"image"`
	CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
	Tags        []string                  `json:"tags"         validate:"required,min=1"`
	Ingredients []recipeIngredientRequest `json:"ingredients"  validate:"required,min=1,dive"`
}

// --- Response types ---

type tagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// recipeIngredientResponse is an ingredient embedded in a recipe, carrying
// the amount the recipe calls for.
type recipeIngredientResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type recipeResponse struct {
	ID               string                     `json:"id"`
	Tags             []tagResponse              `json:"tags"`
	Author           userResponse               `json:"author"`
	Ingredients      []recipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

type listRecipesResponse struct {
	Data       []recipeResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
