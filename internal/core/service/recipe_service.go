package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const maxRecipeNameLength = 200

// RecipeService implements recipe CRUD, the favorite and cart toggles and
// the shopping-list export.
type RecipeService struct {
	recipes     ports.RecipeRepository
	tags        ports.TagRepository
	ingredients ports.IngredientRepository
	users       ports.UserRepository
	follows     ports.FollowRepository
	favorites   ports.UserRecipePairRepository
	cart        ports.UserRecipePairRepository
	assets      ports.AssetStore
	log         zerolog.Logger
}

func NewRecipeService(
	recipes ports.RecipeRepository,
	tags ports.TagRepository,
	ingredients ports.IngredientRepository,
	users ports.UserRepository,
	follows ports.FollowRepository,
	favorites ports.UserRecipePairRepository,
	cart ports.UserRecipePairRepository,
	assets ports.AssetStore,
	log zerolog.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		users:       users,
		follows:     follows,
		favorites:   favorites,
		cart:        cart,
		assets:      assets,
		log:         log,
	}
}

func (s *RecipeService) List(ctx context.Context, actor domain.Actor, input ports.RecipeListInput) (*ports.RecipePage, error) {
	page, limit := normalizePage(input.Page, input.Limit)

	filter := ports.RecipeFilter{
		TagSlugs: input.TagSlugs,
		AuthorID: input.AuthorID,
		Page:     page,
		Limit:    limit,
	}
	// The favorited/cart filters only exist for a real principal; anonymous
	// callers get them silently ignored.
	if !actor.Anonymous() {
		if input.IsFavorited {
			filter.FavoritedBy = actor.UserID
		}
		if input.IsInShoppingCart {
			filter.InCartOf = actor.UserID
		}
	}

	records, total, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, actor, records)
	if err != nil {
		return nil, err
	}

	return &ports.RecipePage{
		Items:      views,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *RecipeService) Get(ctx context.Context, actor domain.Actor, id string) (*ports.RecipeView, error) {
	rec, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, actor, []*ports.RecipeRecord{rec})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RecipeService) Create(ctx context.Context, actor domain.Actor, input ports.RecipeInput) (*ports.RecipeView, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	key := ingredientKey(input.Ingredients)
	dup, err := s.recipes.ExistsDuplicate(ctx, input.Name, key, "")
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.Validationf("a recipe with the same name and ingredients already exists")
	}

	image, err := s.storeImage(input.Image)
	if err != nil {
		return nil, err
	}

	rec := recordFromInput(input, key)
	rec.AuthorID = actor.UserID
	rec.Image = image
	rec.PubDate = time.Now().UTC()

	// The recipe row plus its tag and ingredient links are one document, so
	// the write commits fully or not at all.
	created, err := s.recipes.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("recipe_id", created.ID).Str("author_id", actor.UserID).Msg("recipe created")

	views, err := s.buildViews(ctx, actor, []*ports.RecipeRecord{created})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RecipeService) Update(ctx context.Context, actor domain.Actor, id string, input ports.RecipeInput) (*ports.RecipeView, error) {
	existing, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actor, existing.AuthorID); err != nil {
		return nil, err
	}
	if err := validateRecipeInput(input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	key := ingredientKey(input.Ingredients)
	dup, err := s.recipes.ExistsDuplicate(ctx, input.Name, key, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, domain.Validationf("a recipe with the same name and ingredients already exists")
	}

	image := existing.Image
	if input.Image != "" {
		image, err = s.storeImage(input.Image)
		if err != nil {
			return nil, err
		}
	}

	rec := recordFromInput(input, key)
	rec.ID = existing.ID
	rec.AuthorID = existing.AuthorID
	rec.Image = image
	rec.PubDate = existing.PubDate // publish timestamp is immutable

	if err := s.recipes.Update(ctx, rec); err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, actor, []*ports.RecipeRecord{rec})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *RecipeService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	existing, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, existing.AuthorID); err != nil {
		return err
	}

	// Repository removes the recipe and its favorite/cart rows atomically.
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("recipe_id", id).Str("author_id", actor.UserID).Msg("recipe deleted")
	return nil
}

func (s *RecipeService) Favorite(ctx context.Context, actor domain.Actor, recipeID string) (*ports.RecipeBrief, error) {
	return s.addPair(ctx, actor, recipeID, s.favorites)
}

func (s *RecipeService) Unfavorite(ctx context.Context, actor domain.Actor, recipeID string) error {
	return s.removePair(ctx, actor, recipeID, s.favorites)
}

func (s *RecipeService) AddToCart(ctx context.Context, actor domain.Actor, recipeID string) (*ports.RecipeBrief, error) {
	return s.addPair(ctx, actor, recipeID, s.cart)
}

func (s *RecipeService) RemoveFromCart(ctx context.Context, actor domain.Actor, recipeID string) error {
	return s.removePair(ctx, actor, recipeID, s.cart)
}

// addPair is the shared POST half of the favorite/cart state machine: the
// recipe must exist, and a duplicate pair fails with the store's conflict
// error — the unique index makes that hold under concurrent requests too.
func (s *RecipeService) addPair(ctx context.Context, actor domain.Actor, recipeID string, pairs ports.UserRecipePairRepository) (*ports.RecipeBrief, error) {
	if actor.Anonymous() {
		return nil, domain.ErrUnauthenticated
	}

	rec, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := pairs.Add(ctx, actor.UserID, rec.ID); err != nil {
		return nil, err
	}

	return &ports.RecipeBrief{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       rec.Image,
		CookingTime: rec.CookingTime,
	}, nil
}

func (s *RecipeService) removePair(ctx context.Context, actor domain.Actor, recipeID string, pairs ports.UserRecipePairRepository) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}

	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		return err
	}

	return pairs.Remove(ctx, actor.UserID, recipeID)
}

// buildViews hydrates records into actor-specific views, batching the tag,
// ingredient, author, follow and pair lookups across the whole page.
func (s *RecipeService) buildViews(ctx context.Context, actor domain.Actor, records []*ports.RecipeRecord) ([]ports.RecipeView, error) {
	tagIDs := make([]string, 0)
	ingredientIDs := make([]string, 0)
	authorIDs := make([]string, 0)
	recipeIDs := make([]string, 0, len(records))
	seenTag := map[string]bool{}
	seenIngredient := map[string]bool{}
	seenAuthor := map[string]bool{}

	for _, rec := range records {
		recipeIDs = append(recipeIDs, rec.ID)
		if !seenAuthor[rec.AuthorID] {
			seenAuthor[rec.AuthorID] = true
			authorIDs = append(authorIDs, rec.AuthorID)
		}
		for _, id := range rec.TagIDs {
			if !seenTag[id] {
				seenTag[id] = true
				tagIDs = append(tagIDs, id)
			}
		}
		for _, link := range rec.Ingredients {
			if !seenIngredient[link.IngredientID] {
				seenIngredient[link.IngredientID] = true
				ingredientIDs = append(ingredientIDs, link.IngredientID)
			}
		}
	}

	tags, err := s.tags.FindByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}
	tagByID := make(map[string]domain.Tag, len(tags))
	for _, t := range tags {
		tagByID[t.ID] = t
	}

	ings, err := s.ingredients.FindByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}
	ingredientByID := make(map[string]domain.Ingredient, len(ings))
	for _, ing := range ings {
		ingredientByID[ing.ID] = ing
	}

	authorByID := make(map[string]*domain.User, len(authorIDs))
	for _, id := range authorIDs {
		author, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		authorByID[id] = author
	}

	var favorited, inCart, subscribed map[string]bool
	if !actor.Anonymous() {
		if favorited, err = s.favorites.Contains(ctx, actor.UserID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.cart.Contains(ctx, actor.UserID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = s.follows.FollowingSet(ctx, actor.UserID, authorIDs); err != nil {
			return nil, err
		}
	}

	views := make([]ports.RecipeView, 0, len(records))
	for _, rec := range records {
		recipe := domain.Recipe{
			ID:          rec.ID,
			Author:      *authorByID[rec.AuthorID],
			Name:        rec.Name,
			Image:       rec.Image,
			Text:        rec.Text,
			CookingTime: rec.CookingTime,
			PubDate:     rec.PubDate,
		}
		for _, id := range rec.TagIDs {
			if t, ok := tagByID[id]; ok {
				recipe.Tags = append(recipe.Tags, t)
			}
		}
		for _, link := range rec.Ingredients {
			if ing, ok := ingredientByID[link.IngredientID]; ok {
				recipe.Ingredients = append(recipe.Ingredients, domain.IngredientAmount{
					Ingredient: ing,
					Amount:     link.Amount,
				})
			}
		}
		views = append(views, ports.RecipeView{
			Recipe:             recipe,
			IsFavorited:        favorited[rec.ID],
			IsInShoppingCart:   inCart[rec.ID],
			AuthorIsSubscribed: subscribed[rec.AuthorID],
		})
	}
	return views, nil
}

// checkReferences verifies every tag and ingredient the payload points at
// actually exists.
func (s *RecipeService) checkReferences(ctx context.Context, input ports.RecipeInput) error {
	tags, err := s.tags.FindByIDs(ctx, input.TagIDs)
	if err != nil {
		return err
	}
	if len(tags) != len(input.TagIDs) {
		return domain.ErrTagNotFound
	}

	ids := make([]string, 0, len(input.Ingredients))
	for _, ia := range input.Ingredients {
		ids = append(ids, ia.IngredientID)
	}
	ings, err := s.ingredients.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(ings) != len(ids) {
		return domain.ErrIngredientNotFound
	}
	return nil
}

func (s *RecipeService) storeImage(image string) (string, error) {
	if image == "" {
		return "", nil
	}
	if !strings.HasPrefix(image, "data:") {
		// Already a stored asset path (unchanged on update).
		return image, nil
	}
	return s.assets.SaveDataURL(image)
}

func validateRecipeInput(input ports.RecipeInput) error {
	if input.Name == "" {
		return domain.Validationf("name is required")
	}
	if len(input.Name) > maxRecipeNameLength {
		return domain.Validationf("name must be at most %d characters", maxRecipeNameLength)
	}
	if input.Text == "" {
		return domain.Validationf("text is required")
	}
	if input.CookingTime < domain.MinCookingTime || input.CookingTime > domain.MaxCookingTime {
		return domain.Validationf("cooking_time must be between %d and %d", domain.MinCookingTime, domain.MaxCookingTime)
	}
	if len(input.TagIDs) == 0 {
		return domain.Validationf("tags must contain at least one tag")
	}
	if len(input.Ingredients) == 0 {
		return domain.Validationf("ingredients must contain at least one ingredient")
	}

	seenTags := make(map[string]bool, len(input.TagIDs))
	for _, id := range input.TagIDs {
		if seenTags[id] {
			return domain.Validationf("tags contains duplicate tag %s", id)
		}
		seenTags[id] = true
	}

	seenIngredients := make(map[string]bool, len(input.Ingredients))
	for _, ia := range input.Ingredients {
		if seenIngredients[ia.IngredientID] {
			return domain.Validationf("ingredients contains duplicate ingredient %s", ia.IngredientID)
		}
		seenIngredients[ia.IngredientID] = true
		if ia.Amount < domain.MinIngredientAmount || ia.Amount > domain.MaxIngredientAmount {
			return domain.Validationf("amount must be between %d and %d", domain.MinIngredientAmount, domain.MaxIngredientAmount)
		}
	}
	return nil
}

// requireOwner is the IsOwnerOrReadOnly write check: only the author writes,
// no admin override.
func requireOwner(actor domain.Actor, authorID string) error {
	if actor.Anonymous() {
		return domain.ErrUnauthenticated
	}
	if actor.UserID != authorID {
		return domain.ErrForbidden
	}
	return nil
}

// ingredientKey builds the canonical ingredient-set fingerprint used by the
// duplicate-recipe check, independent of payload order.
func ingredientKey(ingredients []ports.IngredientAmountInput) string {
	links := make([]ports.IngredientLink, 0, len(ingredients))
	for _, ia := range ingredients {
		links = append(links, ports.IngredientLink{IngredientID: ia.IngredientID})
	}
	return ports.IngredientKey(links)
}

func recordFromInput(input ports.RecipeInput, key string) *ports.RecipeRecord {
	links := make([]ports.IngredientLink, 0, len(input.Ingredients))
	for _, ia := range input.Ingredients {
		links = append(links, ports.IngredientLink{IngredientID: ia.IngredientID, Amount: ia.Amount})
	}
	return &ports.RecipeRecord{
		Name:          input.Name,
		Text:          input.Text,
		CookingTime:   input.CookingTime,
		TagIDs:        input.TagIDs,
		Ingredients:   links,
		IngredientKey: key,
	}
}
