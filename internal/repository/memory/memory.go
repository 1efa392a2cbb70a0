// Package memory implements the repository interfaces in process memory.
//
// It serves two purposes:
//   - tests: service and resolver tests run against it with no
//     infrastructure, in microseconds
//   - local development: when no MONGO_URI is configured the server boots
//     with this store instead of refusing to start (data is lost on exit)
//
// CONCURRENCY:
// A single mutex per store guards the maps. That makes every operation —
// including Upsert — atomic at the gateway boundary, mirroring the
// guarantee the MongoDB implementation gets from FindOneAndReplace.
package memory

import (
	"context"
	"sync"

	"github.com/rs/xid"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// compile-time checks against the repository contracts
var (
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.PhotoRepository = (*PhotoRepo)(nil)
)

// Store bundles the two in-memory repositories, mirroring mongodb.Store.
type Store struct {
	users  *UserRepo
	photos *PhotoRepo
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:  &UserRepo{byLogin: make(map[string]model.User)},
		photos: &PhotoRepo{byID: make(map[string]model.Photo)},
	}
}

// Users returns the users repository.
func (s *Store) Users() *UserRepo { return s.users }

// Photos returns the photos repository.
func (s *Store) Photos() *PhotoRepo { return s.photos }

// UserRepo keeps user records keyed by githubLogin.
type UserRepo struct {
	mu      sync.Mutex
	byLogin map[string]model.User
}

// Upsert inserts or fully replaces the record for user.GithubLogin.
// The map assignment under the lock is the whole operation — there is no
// read-then-write window, so concurrent logins are last-write-wins whole.
func (r *UserRepo) Upsert(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLogin[user.GithubLogin] = *user

	persisted := r.byLogin[user.GithubLogin]
	return &persisted, nil
}

// FindByLogin retrieves a user by GitHub login.
func (r *UserRepo) FindByLogin(_ context.Context, githubLogin string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byLogin[githubLogin]
	if !ok {
		return nil, apperror.NotFound("user", githubLogin)
	}
	// Return a copy so the caller can't mutate our internal state
	result := u
	return &result, nil
}

// FindByToken retrieves the user holding the given session token.
func (r *UserRepo) FindByToken(_ context.Context, githubToken string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byLogin {
		if u.GithubToken == githubToken {
			result := u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", "token")
}

// All returns every user. Map iteration order is unspecified, which is
// within the "store-native order" contract for allUsers.
func (r *UserRepo) All(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]model.User, 0, len(r.byLogin))
	for _, u := range r.byLogin {
		users = append(users, u)
	}
	return users, nil
}

// Count returns the number of user records.
func (r *UserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byLogin)), nil
}

// PhotoRepo keeps photo records keyed by their assigned ID.
type PhotoRepo struct {
	mu       sync.Mutex
	byID     map[string]model.Photo
	inserted []string // preserves insertion order for All/FindByUser
}

// Insert stores a new photo under a freshly minted xid.
func (r *PhotoRepo) Insert(_ context.Context, photo *model.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	photo.ID = xid.New().String()
	r.byID[photo.ID] = *photo
	r.inserted = append(r.inserted, photo.ID)
	return nil
}

// FindByID retrieves a photo by ID.
func (r *PhotoRepo) FindByID(_ context.Context, id string) (*model.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, apperror.NotFound("photo", id)
	}
	result := p
	return &result, nil
}

// FindByUser returns the photos posted by the given login, oldest first.
func (r *PhotoRepo) FindByUser(_ context.Context, githubLogin string) ([]model.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	photos := []model.Photo{}
	for _, id := range r.inserted {
		if p := r.byID[id]; p.UserID == githubLogin {
			photos = append(photos, p)
		}
	}
	return photos, nil
}

// All returns every photo, oldest first.
func (r *PhotoRepo) All(_ context.Context) ([]model.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	photos := make([]model.Photo, 0, len(r.inserted))
	for _, id := range r.inserted {
		photos = append(photos, r.byID[id])
	}
	return photos, nil
}

// Count returns the number of photo records.
func (r *PhotoRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}
