// Package mongodb implements the repository interfaces on MongoDB.
//
// WHY A DOCUMENT STORE?
// The records here are small, schemaless-friendly documents with exactly
// one unique key each (githubLogin for users, _id for photos), and the one
// interesting write is a full-document replace-with-upsert. MongoDB gives
// us that replace as a single atomic operation (FindOneAndReplace), which
// is what keeps concurrent logins from losing updates.
//
// CONNECTION MODEL:
// mongo.Connect returns a client managing an internal connection pool —
// like database/sql's sql.DB, it is safe for concurrent use and there is
// exactly one per process. We Ping once at startup so a bad address fails
// fast instead of on the first query.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the Mongo client and exposes the two collection-backed
// repositories. The server creates one Store and closes it on shutdown.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	photos *mongo.Collection
}

// connectTimeout bounds the initial dial + ping. Anything slower than this
// is a configuration problem, not a transient blip.
const connectTimeout = 10 * time.Second

// New connects to the MongoDB deployment at uri and selects the database.
func New(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting to %s: %w", uri, err)
	}

	// Ping verifies the deployment is actually reachable. Without this, a
	// bad URI only surfaces on the first query — much harder to debug.
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: pinging %s: %w", uri, err)
	}

	db := client.Database(database)
	return &Store{
		client: client,
		users:  db.Collection("users"),
		photos: db.Collection("photos"),
	}, nil
}

// Users returns the users repository.
func (s *Store) Users() *UserRepo { return &UserRepo{coll: s.users} }

// Photos returns the photos repository.
func (s *Store) Photos() *PhotoRepo { return &PhotoRepo{coll: s.photos} }

// Close disconnects the underlying client. Called during graceful shutdown
// so in-flight operations drain before the pool is torn down.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb: disconnecting: %w", err)
	}
	return nil
}
