package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo provides access to the "users" collection.
type UserRepo struct {
	coll *mongo.Collection
}

// Upsert inserts or fully replaces the user document keyed by githubLogin.
//
// WHY FindOneAndReplace AND NOT find + insert/update?
// Two logins for the same account can race. A read-then-write pair could
// interleave and resurrect fields from a stale profile. FindOneAndReplace
// with Upsert(true) is a single atomic operation on the server: last write
// wins wholesale, and ReturnDocument(After) hands back exactly the document
// that was persisted, so no second read is needed either.
func (r *UserRepo) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var persisted model.User
	err := r.coll.FindOneAndReplace(ctx,
		bson.M{"githubLogin": user.GithubLogin},
		user,
		opts,
	).Decode(&persisted)
	if err != nil {
		return nil, fmt.Errorf("mongodb: upserting user %s: %w", user.GithubLogin, err)
	}

	return &persisted, nil
}

// FindByLogin retrieves a user by their GitHub login.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) FindByLogin(ctx context.Context, githubLogin string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"githubLogin": githubLogin}, githubLogin)
}

// FindByToken retrieves the user holding the given session token.
// Used by the auth middleware to resolve bearer tokens.
func (r *UserRepo) FindByToken(ctx context.Context, githubToken string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"githubToken": githubToken}, "token")
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M, id string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("mongodb: finding user %s: %w", id, err)
	}
	return &u, nil
}

// All returns every user, in the collection's natural order.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing users: %w", err)
	}

	users := []model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongodb: decoding users: %w", err)
	}
	return users, nil
}

// Count returns the number of user documents.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: counting users: %w", err)
	}
	return n, nil
}
