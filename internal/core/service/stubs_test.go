package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- users ---

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page, limit int) ([]*domain.User, int64, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, int64(len(r.users)), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// --- follows ---

type followKey struct{ follower, followee string }

type stubFollowRepo struct {
	pairs map[followKey]time.Time
}

func newStubFollowRepo() *stubFollowRepo {
	return &stubFollowRepo{pairs: make(map[followKey]time.Time)}
}

func (r *stubFollowRepo) Create(_ context.Context, follow *domain.Follow) error {
	k := followKey{follow.FollowerID, follow.FolloweeID}
	if _, exists := r.pairs[k]; exists {
		return domain.ErrAlreadyFollowing
	}
	r.pairs[k] = follow.CreatedAt
	return nil
}

func (r *stubFollowRepo) Delete(_ context.Context, followerID, followeeID string) error {
	k := followKey{followerID, followeeID}
	if _, exists := r.pairs[k]; !exists {
		return domain.ErrFollowNotFound
	}
	delete(r.pairs, k)
	return nil
}

func (r *stubFollowRepo) Following(_ context.Context, followerID string) ([]string, error) {
	var ids []string
	for k := range r.pairs {
		if k.follower == followerID {
			ids = append(ids, k.followee)
		}
	}
	return ids, nil
}

func (r *stubFollowRepo) FollowingSet(_ context.Context, followerID string, candidateIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if _, ok := r.pairs[followKey{followerID, id}]; ok {
			set[id] = true
		}
	}
	return set, nil
}

// --- tags ---

type stubTagRepo struct {
	tags   map[string]domain.Tag
	nextID int
}

func newStubTagRepo() *stubTagRepo {
	return &stubTagRepo{tags: make(map[string]domain.Tag)}
}

func (r *stubTagRepo) Create(_ context.Context, tag *domain.Tag) (*domain.Tag, error) {
	for _, t := range r.tags {
		if t.Name == tag.Name || t.Color == tag.Color || t.Slug == tag.Slug {
			return nil, domain.ErrTagExists
		}
	}
	r.nextID++
	created := *tag
	created.ID = fmt.Sprintf("tag-%d", r.nextID)
	r.tags[created.ID] = created
	return &created, nil
}

func (r *stubTagRepo) Update(_ context.Context, tag *domain.Tag) error {
	if _, ok := r.tags[tag.ID]; !ok {
		return domain.ErrTagNotFound
	}
	r.tags[tag.ID] = *tag
	return nil
}

func (r *stubTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tags[id]; !ok {
		return domain.ErrTagNotFound
	}
	delete(r.tags, id)
	return nil
}

func (r *stubTagRepo) FindByID(_ context.Context, id string) (*domain.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	return &t, nil
}

func (r *stubTagRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTagRepo) FindBySlugs(_ context.Context, slugs []string) ([]domain.Tag, error) {
	var out []domain.Tag
	for _, slug := range slugs {
		for _, t := range r.tags {
			if t.Slug == slug {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *stubTagRepo) List(_ context.Context) ([]domain.Tag, error) {
	out := make([]domain.Tag, 0, len(r.tags))
	for _, t := range r.tags {
		out = append(out, t)
	}
	return out, nil
}

// --- ingredients ---

type stubIngredientRepo struct {
	ingredients map[string]domain.Ingredient
	nextID      int
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{ingredients: make(map[string]domain.Ingredient)}
}

func (r *stubIngredientRepo) Create(_ context.Context, ingredient *domain.Ingredient) (*domain.Ingredient, error) {
	for _, ing := range r.ingredients {
		if ing.Name == ingredient.Name && ing.MeasurementUnit == ingredient.MeasurementUnit {
			return nil, domain.ErrIngredientExists
		}
	}
	r.nextID++
	created := *ingredient
	created.ID = fmt.Sprintf("ing-%d", r.nextID)
	r.ingredients[created.ID] = created
	return &created, nil
}

func (r *stubIngredientRepo) CreateMany(ctx context.Context, ingredients []domain.Ingredient) (int, error) {
	inserted := 0
	for i := range ingredients {
		if _, err := r.Create(ctx, &ingredients[i]); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, ingredient *domain.Ingredient) error {
	if _, ok := r.ingredients[ingredient.ID]; !ok {
		return domain.ErrIngredientNotFound
	}
	for id, ing := range r.ingredients {
		if id != ingredient.ID && ing.Name == ingredient.Name && ing.MeasurementUnit == ingredient.MeasurementUnit {
			return domain.ErrIngredientExists
		}
	}
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *stubIngredientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.ingredients[id]; !ok {
		return domain.ErrIngredientNotFound
	}
	delete(r.ingredients, id)
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id string) (*domain.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, domain.ErrIngredientNotFound
	}
	return &ing, nil
}

func (r *stubIngredientRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	for _, id := range ids {
		if ing, ok := r.ingredients[id]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) List(_ context.Context, name string) ([]domain.Ingredient, error) {
	out := make([]domain.Ingredient, 0, len(r.ingredients))
	for _, ing := range r.ingredients {
		out = append(out, ing)
	}
	return out, nil
}

// --- recipes ---

type stubRecipeRepo struct {
	records map[string]*ports.RecipeRecord
	nextID  int
}

func newStubRecipeRepo() *stubRecipeRepo {
	return &stubRecipeRepo{records: make(map[string]*ports.RecipeRecord)}
}

func cloneRecord(rec *ports.RecipeRecord) *ports.RecipeRecord {
	clone := *rec
	clone.TagIDs = append([]string(nil), rec.TagIDs...)
	clone.Ingredients = append([]ports.IngredientLink(nil), rec.Ingredients...)
	return &clone
}

func (r *stubRecipeRepo) Create(_ context.Context, rec *ports.RecipeRecord) (*ports.RecipeRecord, error) {
	r.nextID++
	created := cloneRecord(rec)
	created.ID = fmt.Sprintf("recipe-%d", r.nextID)
	r.records[created.ID] = cloneRecord(created)
	return created, nil
}

func (r *stubRecipeRepo) Update(_ context.Context, rec *ports.RecipeRecord) error {
	if _, ok := r.records[rec.ID]; !ok {
		return domain.ErrRecipeNotFound
	}
	r.records[rec.ID] = cloneRecord(rec)
	return nil
}

func (r *stubRecipeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *stubRecipeRepo) FindByID(_ context.Context, id string) (*ports.RecipeRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return cloneRecord(rec), nil
}

func (r *stubRecipeRepo) FindByIDs(_ context.Context, ids []string) ([]*ports.RecipeRecord, error) {
	var out []*ports.RecipeRecord
	for _, id := range ids {
		if rec, ok := r.records[id]; ok {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (r *stubRecipeRepo) List(_ context.Context, filter ports.RecipeFilter) ([]*ports.RecipeRecord, int64, error) {
	var out []*ports.RecipeRecord
	for _, rec := range r.records {
		if filter.AuthorID != "" && rec.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return out, int64(len(out)), nil
}

func (r *stubRecipeRepo) ExistsDuplicate(_ context.Context, name, ingredientKey, excludeID string) (bool, error) {
	for _, rec := range r.records {
		if rec.ID == excludeID {
			continue
		}
		if rec.Name == name && rec.IngredientKey == ingredientKey {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRecipeRepo) ListByAuthor(_ context.Context, authorID string, limit int) ([]*ports.RecipeRecord, error) {
	var out []*ports.RecipeRecord
	for _, rec := range r.records {
		if rec.AuthorID != authorID {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (r *stubRecipeRepo) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// --- favorite / cart pairs ---

type pairKey struct{ user, recipe string }

type stubPairRepo struct {
	pairs      map[pairKey]int
	errExists  error
	errMissing error
	nextSeq    int
}

func newStubPairRepo(errExists, errMissing error) *stubPairRepo {
	return &stubPairRepo{pairs: make(map[pairKey]int), errExists: errExists, errMissing: errMissing}
}

func (r *stubPairRepo) Add(_ context.Context, userID, recipeID string) error {
	k := pairKey{userID, recipeID}
	if _, exists := r.pairs[k]; exists {
		return r.errExists
	}
	r.nextSeq++
	r.pairs[k] = r.nextSeq
	return nil
}

func (r *stubPairRepo) Remove(_ context.Context, userID, recipeID string) error {
	k := pairKey{userID, recipeID}
	if _, exists := r.pairs[k]; !exists {
		return r.errMissing
	}
	delete(r.pairs, k)
	return nil
}

func (r *stubPairRepo) Contains(_ context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		if _, ok := r.pairs[pairKey{userID, id}]; ok {
			set[id] = true
		}
	}
	return set, nil
}

func (r *stubPairRepo) RecipeIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for k := range r.pairs {
		if k.user == userID {
			ids = append(ids, k.recipe)
		}
	}
	return ids, nil
}

// --- assets ---

type stubAssetStore struct {
	saved []string
}

func (s *stubAssetStore) SaveDataURL(dataURL string) (string, error) {
	s.saved = append(s.saved, dataURL)
	return fmt.Sprintf("recipes/asset-%d.png", len(s.saved)), nil
}

// --- token revocation ---

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.revoked[tokenID] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}
