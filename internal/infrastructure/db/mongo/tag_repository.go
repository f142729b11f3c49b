package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platefull/recipe-api/internal/core/domain"
)

const collectionTags = "tags"

type TagRepository struct {
	client  *mongo.Client
	col     *mongo.Collection
	recipes *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{
		client:  db.Client(),
		col:     db.Collection(collectionTags),
		recipes: db.Collection(collectionRecipes),
	}
}

type tagDoc struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Color string             `bson:"color"`
	Slug  string             `bson:"slug"`
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, tagDoc{Name: tag.Name, Color: tag.Color, Slug: tag.Slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTagExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	created := *tag
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	oid, err := primitive.ObjectIDFromHex(tag.ID)
	if err != nil {
		return domain.ErrTagNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid},
		tagDoc{ID: oid, Name: tag.Name, Color: tag.Color, Slug: tag.Slug})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTagExists
		}
		return fmt.Errorf("update tag: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTagNotFound
	}
	return nil
}

// Delete removes the tag and pulls its id out of every recipe that carries
// it, in one transaction, so no dangling tag reference survives.
func (r *TagRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTagNotFound
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
			return nil, fmt.Errorf("delete tag: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrTagNotFound
		}
		if _, err := r.recipes.UpdateMany(sc,
			bson.M{"tag_ids": oid},
			bson.M{"$pull": bson.M{"tag_ids": oid}},
		); err != nil {
			return nil, fmt.Errorf("cascade tag refs: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*domain.Tag, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTagNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tagDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	tag := doc.toDomain()
	return &tag, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Tag, error) {
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

func (r *TagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]domain.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"slug": bson.M{"$in": slugs}})
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	return r.find(ctx, bson.M{})
}

func (r *TagRepository) find(ctx context.Context, filter bson.M) ([]domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	defer cur.Close(ctx)

	var tags []domain.Tag
	for cur.Next(ctx) {
		var doc tagDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, doc.toDomain())
	}
	return tags, cur.Err()
}

func (d *tagDoc) toDomain() domain.Tag {
	return domain.Tag{ID: d.ID.Hex(), Name: d.Name, Color: d.Color, Slug: d.Slug}
}

func ensureTagIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionTags).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "color", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}
