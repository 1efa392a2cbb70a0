// Package repository declares the document store contract the rest of the
// application programs against. Two implementations exist: mongodb (the
// real store) and memory (tests and storeless local development).
package repository

import (
	"context"

	"github.com/sakif/photoshare/internal/model"
)

// UserRepository is the gateway to the "users" collection.
//
// Absent lookups return apperror.ErrNotFound; the caller decides whether
// that is a null field (User query) or a hard failure (Photo.postedBy).
type UserRepository interface {
	// Upsert atomically inserts or fully replaces the document keyed by
	// user.GithubLogin and returns the persisted record. Full replace, not
	// merge: fields from a previous login never survive. Implementations
	// must perform this as a single store operation, not a read-then-write
	// pair, so concurrent logins cannot produce lost updates.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)

	FindByLogin(ctx context.Context, githubLogin string) (*model.User, error)
	FindByToken(ctx context.Context, githubToken string) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

// PhotoRepository is the gateway to the "photos" collection.
type PhotoRepository interface {
	// Insert stores the photo and fills in its store-assigned ID.
	Insert(ctx context.Context, photo *model.Photo) error

	FindByID(ctx context.Context, id string) (*model.Photo, error)
	FindByUser(ctx context.Context, githubLogin string) ([]model.Photo, error)
	All(ctx context.Context) ([]model.Photo, error)
	Count(ctx context.Context) (int64, error)
}
