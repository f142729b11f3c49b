package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platefull/recipe-api/internal/core/domain"
	"github.com/platefull/recipe-api/internal/core/ports"
)

const collectionRecipes = "recipes"

// RecipeRepository persists recipes. The recipe row and its tag and
// ingredient links live in one document, so every create/update is atomic;
// deletes cascade to favorite and cart rows inside a transaction.
type RecipeRepository struct {
	client *mongo.Client
	col    *mongo.Collection
	tags   *mongo.Collection
	favs   *mongo.Collection
	cart   *mongo.Collection
}

func NewRecipeRepository(client *mongo.Client, db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{
		client: client,
		col:    db.Collection(collectionRecipes),
		tags:   db.Collection(collectionTags),
		favs:   db.Collection(collectionFavorites),
		cart:   db.Collection(collectionCartItems),
	}
}

type ingredientLinkDoc struct {
	IngredientID primitive.ObjectID `bson:"ingredient_id"`
	Amount       int                `bson:"amount"`
}

type recipeDoc struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	AuthorID      primitive.ObjectID   `bson:"author_id"`
	Name          string               `bson:"name"`
	Image         string               `bson:"image,omitempty"`
	Text          string               `bson:"text"`
	CookingTime   int                  `bson:"cooking_time"`
	TagIDs        []primitive.ObjectID `bson:"tag_ids"`
	Ingredients   []ingredientLinkDoc  `bson:"ingredients"`
	IngredientKey string               `bson:"ingredient_key"`
	PubDate       time.Time            `bson:"pub_date"`
}

func (r *RecipeRepository) Create(ctx context.Context, rec *ports.RecipeRecord) (*ports.RecipeRecord, error) {
	doc, err := docFromRecord(rec)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	created := *rec
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RecipeRepository) Update(ctx context.Context, rec *ports.RecipeRecord) error {
	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return domain.ErrRecipeNotFound
	}
	doc, err := docFromRecord(rec)
	if err != nil {
		return err
	}
	doc.ID = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// Delete removes the recipe together with every favorite and cart row that
// references it, in one transaction, so no dangling pair survives.
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecipeNotFound
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
			return nil, fmt.Errorf("delete recipe: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrRecipeNotFound
		}
		if _, err := r.favs.DeleteMany(sc, bson.M{"recipe_id": oid}); err != nil {
			return nil, fmt.Errorf("cascade favorites: %w", err)
		}
		if _, err := r.cart.DeleteMany(sc, bson.M{"recipe_id": oid}); err != nil {
			return nil, fmt.Errorf("cascade cart: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*ports.RecipeRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recipeDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toRecord(), nil
}

func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*ports.RecipeRecord, error) {
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
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

func (r *RecipeRepository) List(ctx context.Context, filter ports.RecipeFilter) ([]*ports.RecipeRecord, int64, error) {
	query := bson.M{}

	if len(filter.TagSlugs) > 0 {
		tagOIDs, err := r.tagIDsForSlugs(ctx, filter.TagSlugs)
		if err != nil {
			return nil, 0, err
		}
		if len(tagOIDs) == 0 {
			return nil, 0, nil
		}
		query["tag_ids"] = bson.M{"$in": tagOIDs}
	}

	if filter.AuthorID != "" {
		authorOID, err := primitive.ObjectIDFromHex(filter.AuthorID)
		if err != nil {
			return nil, 0, nil
		}
		query["author_id"] = authorOID
	}

	// The favorited/cart scopes resolve to explicit recipe ID sets; when both
	// are present the intersection applies.
	idScope, scoped, err := r.pairScope(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if scoped {
		if len(idScope) == 0 {
			return nil, 0, nil
		}
		query["_id"] = bson.M{"$in": idScope}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "pub_date", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	records, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *RecipeRepository) ExistsDuplicate(ctx context.Context, name, ingredientKey, excludeID string) (bool, error) {
	query := bson.M{"name": name, "ingredient_key": ingredientKey}
	if excludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
			query["_id"] = bson.M{"$ne": oid}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	return n > 0, nil
}

func (r *RecipeRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*ports.RecipeRecord, error) {
	authorOID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "pub_date", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	return r.find(ctx, bson.M{"author_id": authorOID}, opts)
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	authorOID, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"author_id": authorOID})
	if err != nil {
		return 0, fmt.Errorf("count recipes by author: %w", err)
	}
	return n, nil
}

func (r *RecipeRepository) tagIDsForSlugs(ctx context.Context, slugs []string) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.tags.Find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
	if err != nil {
		return nil, fmt.Errorf("resolve tag slugs: %w", err)
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc tagDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// pairScope resolves the FavoritedBy/InCartOf filters to the recipe IDs they
// allow. scoped is false when neither filter is set.
func (r *RecipeRepository) pairScope(ctx context.Context, filter ports.RecipeFilter) ([]primitive.ObjectID, bool, error) {
	var scope []primitive.ObjectID
	scoped := false

	apply := func(col *mongo.Collection, userID string) error {
		userOID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			scope, scoped = nil, true
			return nil
		}

		fctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		defer cancel()

		cur, err := col.Find(fctx, bson.M{"user_id": userOID})
		if err != nil {
			return fmt.Errorf("pair scope: %w", err)
		}
		defer cur.Close(fctx)

		var ids []primitive.ObjectID
		for cur.Next(fctx) {
			var doc pairDoc
			if err := cur.Decode(&doc); err != nil {
				return fmt.Errorf("decode pair: %w", err)
			}
			ids = append(ids, doc.RecipeID)
		}
		if err := cur.Err(); err != nil {
			return err
		}

		if !scoped {
			scope, scoped = ids, true
			return nil
		}
		scope = intersect(scope, ids)
		return nil
	}

	if filter.FavoritedBy != "" {
		if err := apply(r.favs, filter.FavoritedBy); err != nil {
			return nil, false, err
		}
	}
	if filter.InCartOf != "" {
		if err := apply(r.cart, filter.InCartOf); err != nil {
			return nil, false, err
		}
	}
	return scope, scoped, nil
}

func (r *RecipeRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*ports.RecipeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.col.Find(ctx, query, opts)
	} else {
		cur, err = r.col.Find(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	defer cur.Close(ctx)

	var records []*ports.RecipeRecord
	for cur.Next(ctx) {
		var doc recipeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recipe: %w", err)
		}
		records = append(records, doc.toRecord())
	}
	return records, cur.Err()
}

func docFromRecord(rec *ports.RecipeRecord) (*recipeDoc, error) {
	authorOID, err := primitive.ObjectIDFromHex(rec.AuthorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	tagOIDs := make([]primitive.ObjectID, 0, len(rec.TagIDs))
	for _, id := range rec.TagIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, domain.ErrTagNotFound
		}
		tagOIDs = append(tagOIDs, oid)
	}

	links := make([]ingredientLinkDoc, 0, len(rec.Ingredients))
	for _, link := range rec.Ingredients {
		oid, err := primitive.ObjectIDFromHex(link.IngredientID)
		if err != nil {
			return nil, domain.ErrIngredientNotFound
		}
		links = append(links, ingredientLinkDoc{IngredientID: oid, Amount: link.Amount})
	}

	return &recipeDoc{
		AuthorID:      authorOID,
		Name:          rec.Name,
		Image:         rec.Image,
		Text:          rec.Text,
		CookingTime:   rec.CookingTime,
		TagIDs:        tagOIDs,
		Ingredients:   links,
		IngredientKey: rec.IngredientKey,
		PubDate:       rec.PubDate,
	}, nil
}

func (d *recipeDoc) toRecord() *ports.RecipeRecord {
	tagIDs := make([]string, 0, len(d.TagIDs))
	for _, oid := range d.TagIDs {
		tagIDs = append(tagIDs, oid.Hex())
	}
	links := make([]ports.IngredientLink, 0, len(d.Ingredients))
	for _, link := range d.Ingredients {
		links = append(links, ports.IngredientLink{
			IngredientID: link.IngredientID.Hex(),
			Amount:       link.Amount,
		})
	}
	return &ports.RecipeRecord{
		ID:            d.ID.Hex(),
		AuthorID:      d.AuthorID.Hex(),
		Name:          d.Name,
		Image:         d.Image,
		Text:          d.Text,
		CookingTime:   d.CookingTime,
		TagIDs:        tagIDs,
		Ingredients:   links,
		IngredientKey: d.IngredientKey,
		PubDate:       d.PubDate,
	}
}

func intersect(a, b []primitive.ObjectID) []primitive.ObjectID {
	inA := make(map[primitive.ObjectID]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	var out []primitive.ObjectID
	for _, id := range b {
		if inA[id] {
			out = append(out, id)
		}
	}
	return out
}

func ensureRecipeIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionRecipes).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "pub_date", Value: 1}}},
		{Keys: bson.D{{Key: "tag_ids", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "ingredient_key", Value: 1}}},
	})
	return err
}
