package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platefull/recipe-api/internal/core/domain"
)

const (
	collectionFavorites = "favorites"
	collectionCartItems = "cart_items"
)

// PairRepository stores (user, recipe) rows for one marking collection.
// Favorites and the shopping cart share the shape and differ only in the
// collection and the errors surfaced on duplicates and missing rows.
type PairRepository struct {
	col        *mongo.Collection
	errExists  error
	errMissing error
}

func NewFavoriteRepository(db *mongo.Database) *PairRepository {
	return &PairRepository{
		col:        db.Collection(collectionFavorites),
		errExists:  domain.ErrAlreadyFavorited,
		errMissing: domain.ErrFavoriteNotFound,
	}
}

func NewCartRepository(db *mongo.Database) *PairRepository {
	return &PairRepository{
		col:        db.Collection(collectionCartItems),
		errExists:  domain.ErrAlreadyInCart,
		errMissing: domain.ErrCartItemNotFound,
	}
}

type pairDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	RecipeID  primitive.ObjectID `bson:"recipe_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *PairRepository) Add(ctx context.Context, userID, recipeID string) error {
	userOID, recipeOID, err := pairOIDs(userID, recipeID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.InsertOne(ctx, pairDoc{
		UserID:    userOID,
		RecipeID:  recipeOID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.errExists
		}
		return fmt.Errorf("insert pair: %w", err)
	}
	return nil
}

func (r *PairRepository) Remove(ctx context.Context, userID, recipeID string) error {
	userOID, recipeOID, err := pairOIDs(userID, recipeID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"user_id": userOID, "recipe_id": recipeOID})
	if err != nil {
		return fmt.Errorf("delete pair: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.errMissing
	}
	return nil
}

func (r *PairRepository) Contains(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return set, nil
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return set, nil
	}

	candidates := make([]primitive.ObjectID, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		candidates = append(candidates, oid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{
		"user_id":   userOID,
		"recipe_id": bson.M{"$in": candidates},
	})
	if err != nil {
		return nil, fmt.Errorf("pair set: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc pairDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode pair: %w", err)
		}
		set[doc.RecipeID.Hex()] = true
	}
	return set, cur.Err()
}

func (r *PairRepository) RecipeIDs(ctx context.Context, userID string) ([]string, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userOID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pairs: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc pairDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode pair: %w", err)
		}
		ids = append(ids, doc.RecipeID.Hex())
	}
	return ids, cur.Err()
}

func pairOIDs(userID, recipeID string) (primitive.ObjectID, primitive.ObjectID, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrUserNotFound
	}
	recipeOID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, domain.ErrRecipeNotFound
	}
	return userOID, recipeOID, nil
}

func ensurePairIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{collectionFavorites, collectionCartItems} {
		_, err := db.Collection(name).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "recipe_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "recipe_id", Value: 1}}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
