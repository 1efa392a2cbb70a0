package graph

import (
	"context"
	"errors"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/auth"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/service"
)

// Resolver is the root resolver: it carries every query and mutation field
// as a method. It holds the service layer, not the repositories — resolvers
// translate GraphQL shapes, services own the rules.
//
// The per-request state (the current user) is NOT stored here: Resolver is
// built once at startup and shared by all requests. Identity travels in the
// context.Context the executor threads into every resolver call, placed
// there by auth.Middleware.
type Resolver struct {
	photos *service.PhotoService
	users  *service.UserService
	auth   *service.AuthService
}

// NewResolver wires the root resolver.
func NewResolver(photos *service.PhotoService, users *service.UserService, authSvc *service.AuthService) *Resolver {
	return &Resolver{
		photos: photos,
		users:  users,
		auth:   authSvc,
	}
}

// ParseSchema binds the SDL to the resolver, verifying every field has a
// method of the right shape. Called once at startup.
func ParseSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, r)
}

// ---- Query fields ----

// TotalPhotos resolves `totalPhotos: Int!`.
func (r *Resolver) TotalPhotos(ctx context.Context) (int32, error) {
	n, err := r.photos.Total(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// AllPhotos resolves `allPhotos: [Photo!]!` in store-native order.
func (r *Resolver) AllPhotos(ctx context.Context) ([]*photoResolver, error) {
	photos, err := r.photos.All(ctx)
	if err != nil {
		return nil, err
	}
	return r.wrapPhotos(photos), nil
}

// Photo resolves `Photo(id: ID!): Photo!`. The result is non-null, so an
// unknown id fails the field.
func (r *Resolver) Photo(ctx context.Context, args struct{ ID graphql.ID }) (*photoResolver, error) {
	photo, err := r.photos.ByID(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &photoResolver{root: r, photo: photo}, nil
}

// TotalUsers resolves `totalUsers: Int!`.
func (r *Resolver) TotalUsers(ctx context.Context) (int32, error) {
	n, err := r.users.Total(ctx)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

// AllUsers resolves `allUsers: [User!]!` in store-native order.
func (r *Resolver) AllUsers(ctx context.Context) ([]*userResolver, error) {
	users, err := r.users.All(ctx)
	if err != nil {
		return nil, err
	}
	resolvers := make([]*userResolver, len(users))
	for i := range users {
		resolvers[i] = &userResolver{root: r, user: &users[i]}
	}
	return resolvers, nil
}

// User resolves `User(githubLogin: ID!): User`. The result is nullable:
// an unknown login is a valid null result, not an error.
func (r *Resolver) User(ctx context.Context, args struct{ GithubLogin graphql.ID }) (*userResolver, error) {
	user, err := r.users.ByLogin(ctx, string(args.GithubLogin))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &userResolver{root: r, user: user}, nil
}

// ---- Mutation fields ----

// postPhotoInput mirrors the PostPhotoInput input type. Nullable input
// fields map to pointers, except category: its schema default means the
// executor always supplies a value, so it binds as a plain string.
type postPhotoInput struct {
	Name        string
	Description *string
	Category    string
}

// PostPhoto resolves `postPhoto(input: PostPhotoInput!): Photo!`.
// The authorization gate: an anonymous request fails here, before any
// store write, with the exact message the API has always used.
func (r *Resolver) PostPhoto(ctx context.Context, args struct{ Input postPhotoInput }) (*photoResolver, error) {
	viewer, _ := auth.CurrentUser(ctx)

	in := service.PostPhotoInput{
		Name:        args.Input.Name,
		Description: args.Input.Description,
		Category:    model.Category(args.Input.Category),
	}

	photo, err := r.photos.Post(ctx, viewer, in)
	if err != nil {
		return nil, err
	}
	return &photoResolver{root: r, photo: photo}, nil
}

// GithubAuth resolves `githubAuth(code: String!): AuthPayload!` by
// delegating to the upsert-on-login coordinator and returning its result
// verbatim.
func (r *Resolver) GithubAuth(ctx context.Context, args struct{ Code string }) (*authPayloadResolver, error) {
	payload, err := r.auth.GithubAuth(ctx, args.Code)
	if err != nil {
		return nil, err
	}
	return &authPayloadResolver{root: r, payload: payload}, nil
}

func (r *Resolver) wrapPhotos(photos []model.Photo) []*photoResolver {
	resolvers := make([]*photoResolver, len(photos))
	for i := range photos {
		resolvers[i] = &photoResolver{root: r, photo: &photos[i]}
	}
	return resolvers
}

// authPayloadResolver backs the AuthPayload type.
type authPayloadResolver struct {
	root    *Resolver
	payload *service.AuthPayload
}

func (r *authPayloadResolver) Token() string { return r.payload.Token }

func (r *authPayloadResolver) User() *userResolver {
	return &userResolver{root: r.root, user: r.payload.User}
}
