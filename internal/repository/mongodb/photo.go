package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// compile-time check that *PhotoRepo implements repository.PhotoRepository
var _ repository.PhotoRepository = (*PhotoRepo)(nil)

// PhotoRepo provides access to the "photos" collection.
type PhotoRepo struct {
	coll *mongo.Collection
}

// Insert stores a new photo and fills in its store-assigned ID.
//
// The _id is an ObjectID minted at the gateway boundary and stored in hex
// form, so the rest of the application — and the memory implementation —
// only ever sees plain strings. There is no uniqueness constraint beyond
// _id itself: two concurrent posts both succeed independently.
func (r *PhotoRepo) Insert(ctx context.Context, photo *model.Photo) error {
	photo.ID = primitive.NewObjectID().Hex()

	if _, err := r.coll.InsertOne(ctx, photo); err != nil {
		photo.ID = ""
		return fmt.Errorf("mongodb: inserting photo %q: %w", photo.Name, err)
	}
	return nil
}

// FindByID retrieves a photo by its ID.
// Returns apperror.ErrNotFound if no such photo exists.
func (r *PhotoRepo) FindByID(ctx context.Context, id string) (*model.Photo, error) {
	var p model.Photo
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("photo", id)
		}
		return nil, fmt.Errorf("mongodb: finding photo %s: %w", id, err)
	}
	return &p, nil
}

// FindByUser returns the photos posted by the given GitHub login, in the
// collection's natural order.
func (r *PhotoRepo) FindByUser(ctx context.Context, githubLogin string) ([]model.Photo, error) {
	return r.find(ctx, bson.M{"userID": githubLogin})
}

// All returns every photo, in the collection's natural order.
func (r *PhotoRepo) All(ctx context.Context) ([]model.Photo, error) {
	return r.find(ctx, bson.M{})
}

func (r *PhotoRepo) find(ctx context.Context, filter bson.M) ([]model.Photo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing photos: %w", err)
	}

	photos := []model.Photo{}
	if err := cursor.All(ctx, &photos); err != nil {
		return nil, fmt.Errorf("mongodb: decoding photos: %w", err)
	}
	return photos, nil
}

// Count returns the number of photo documents.
func (r *PhotoRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting photos: %w", err)
	}
	return n, nil
}
