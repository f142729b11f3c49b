package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const collectionIngredients = "ingredients"

type IngredientRepository struct {
	client  *mongo.Client
	col     *mongo.Collection
	recipes *mongo.Collection
}

func NewIngredientRepository(db *mongo.Database) *IngredientRepository {
	return &IngredientRepository{
		client:  db.Client(),
		col:     db.Collection(collectionIngredients),
		recipes: db.Collection(collectionRecipes),
	}
}

type ingredientDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	MeasurementUnit string             `bson:"measurement_unit"`
}

func (r *IngredientRepository) Create(ctx context.Context, ingredient *domain.Ingredient) (*domain.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, ingredientDoc{
		Name:            ingredient.Name,
		MeasurementUnit: string(ingredient.MeasurementUnit),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIngredientExists
		}
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}

	created := *ingredient
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// CreateMany bulk-inserts ingredients with ordered=false, so (name, unit)
// duplicates are skipped while the rest still land.
func (r *IngredientRepository) CreateMany(ctx context.Context, ingredients []domain.Ingredient) (int, error) {
	if len(ingredients) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(ingredients))
	for _, ing := range ingredients {
		docs = append(docs, ingredientDoc{Name: ing.Name, MeasurementUnit: string(ing.MeasurementUnit)})
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	inserted := 0
	if res != nil {
		inserted = len(res.InsertedIDs)
	}
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return inserted, fmt.Errorf("bulk insert ingredients: %w", err)
	}
	return inserted, nil
}

// Update replaces an ingredient's name and unit.
func (r *IngredientRepository) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	oid, err := primitive.ObjectIDFromHex(ingredient.ID)
	if err != nil {
		return domain.ErrIngredientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, ingredientDoc{
		ID:              oid,
		Name:            ingredient.Name,
		MeasurementUnit: string(ingredient.MeasurementUnit),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrIngredientExists
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIngredientNotFound
	}
	return nil
}

// Delete removes the ingredient and rewrites every recipe that links it:
// the link is dropped and the duplicate-check fingerprint recomputed, all
// in one transaction, so no dangling reference survives.
func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIngredientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		res, err := r.col.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, fmt.Errorf("delete ingredient: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrIngredientNotFound
		}
		if err := r.cascadeRecipeLinks(sc, oid); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// cascadeRecipeLinks strips the deleted ingredient from every recipe that
// references it and recomputes each recipe's ingredient fingerprint.
func (r *IngredientRepository) cascadeRecipeLinks(sc mongo.SessionContext, oid primitive.ObjectID) error {
	cur, err := r.recipes.Find(sc, bson.M{"ingredients.ingredient_id": oid})
	if err != nil {
		return fmt.Errorf("cascade ingredient refs: %w", err)
	}
	defer cur.Close(sc)

	type rewrite struct {
		id    primitive.ObjectID
		links []ingredientLinkDoc
		key   string
	}
	var rewrites []rewrite

	for cur.Next(sc) {
		var doc recipeDoc
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("decode recipe: %w", err)
		}

		kept := make([]ingredientLinkDoc, 0, len(doc.Ingredients))
		remaining := make([]ports.IngredientLink, 0, len(doc.Ingredients))
		for _, link := range doc.Ingredients {
			if link.IngredientID == oid {
				continue
			}
			kept = append(kept, link)
			remaining = append(remaining, ports.IngredientLink{IngredientID: link.IngredientID.Hex()})
		}
		rewrites = append(rewrites, rewrite{id: doc.ID, links: kept, key: ports.IngredientKey(remaining)})
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for _, rw := range rewrites {
		if _, err := r.recipes.UpdateOne(sc,
			bson.M{"_id": rw.id},
			bson.M{"$set": bson.M{"ingredients": rw.links, "ingredient_key": rw.key}},
		); err != nil {
			return fmt.Errorf("cascade ingredient refs: %w", err)
		}
	}
	return nil
}

func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIngredientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc ingredientDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	ing := doc.toDomain()
	return &ing, nil
}

func (r *IngredientRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

// List returns all ingredients, or — when name is given — the union of
// case-insensitive prefix and substring matches, each ingredient once.
func (r *IngredientRepository) List(ctx context.Context, name string) ([]domain.Ingredient, error) {
	if name == "" {
		return r.find(ctx, bson.M{})
	}

	quoted := regexp.QuoteMeta(name)
	prefix, err := r.find(ctx, bson.M{"name": bson.M{"$regex": "^" + quoted, "$options": "i"}})
	if err != nil {
		return nil, err
	}
	substring, err := r.find(ctx, bson.M{"name": bson.M{"$regex": quoted, "$options": "i"}})
	if err != nil {
		return nil, err
	}

	return unionByID(prefix, substring), nil
}

// unionByID merges the prefix and substring result sets, prefix matches
// first, each ingredient at most once.
func unionByID(prefix, substring []domain.Ingredient) []domain.Ingredient {
	seen := make(map[string]bool, len(prefix))
	out := make([]domain.Ingredient, 0, len(prefix)+len(substring))
	for _, ing := range prefix {
		if !seen[ing.ID] {
			seen[ing.ID] = true
			out = append(out, ing)
		}
	}
	for _, ing := range substring {
		if !seen[ing.ID] {
			seen[ing.ID] = true
			out = append(out, ing)
		}
	}
	return out
}

func (r *IngredientRepository) find(ctx context.Context, filter bson.M) ([]domain.Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find ingredients: %w", err)
	}
	defer cur.Close(ctx)

	var ingredients []domain.Ingredient
	for cur.Next(ctx) {
		var doc ingredientDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ingredient: %w", err)
		}
		ingredients = append(ingredients, doc.toDomain())
	}
	return ingredients, cur.Err()
}

func (d *ingredientDoc) toDomain() domain.Ingredient {
	return domain.Ingredient{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		MeasurementUnit: domain.MeasurementUnit(d.MeasurementUnit),
	}
}

func ensureIngredientIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionIngredients).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "measurement_unit", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}
