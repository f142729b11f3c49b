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

const collectionFollows = "follows"

type FollowRepository struct {
	col *mongo.Collection
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{col: db.Collection(collectionFollows)}
}

type followDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FollowerID primitive.ObjectID `bson:"follower_id"`
	FolloweeID primitive.ObjectID `bson:"followee_id"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *FollowRepository) Create(ctx context.Context, follow *domain.Follow) error {
	followerID, err := primitive.ObjectIDFromHex(follow.FollowerID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	followeeID, err := primitive.ObjectIDFromHex(follow.FolloweeID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = r.col.InsertOne(ctx, followDoc{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  follow.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	followerOID, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return domain.ErrFollowNotFound
	}
	followeeOID, err := primitive.ObjectIDFromHex(followeeID)
	if err != nil {
		return domain.ErrFollowNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{
		"follower_id": followerOID,
		"followee_id": followeeOID,
	})
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFollowNotFound
	}
	return nil
}

func (r *FollowRepository) Following(ctx context.Context, followerID string) ([]string, error) {
	followerOID, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"follower_id": followerOID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc followDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode follow: %w", err)
		}
		ids = append(ids, doc.FolloweeID.Hex())
	}
	return ids, cur.Err()
}

func (r *FollowRepository) FollowingSet(ctx context.Context, followerID string, candidateIDs []string) (map[string]bool, error) {
	set := make(map[string]bool, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return set, nil
	}
	followerOID, err := primitive.ObjectIDFromHex(followerID)
	if err != nil {
		return set, nil
	}

	candidates := make([]primitive.ObjectID, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		candidates = append(candidates, oid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{
		"follower_id": followerOID,
		"followee_id": bson.M{"$in": candidates},
	})
	if err != nil {
		return nil, fmt.Errorf("follow set: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc followDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode follow: %w", err)
		}
		set[doc.FolloweeID.Hex()] = true
	}
	return set, cur.Err()
}

func ensureFollowIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionFollows).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "follower_id", Value: 1}, {Key: "followee_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "followee_id", Value: 1}}},
	})
	return err
}
