package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/sakif/photoshare/internal/model"
)

// userResolver backs the User type. Note what is absent: githubToken has
// no resolver, so the session credential can never leak through a query —
// it is only ever returned as AuthPayload.token by githubAuth itself.
type userResolver struct {
	root *Resolver
	user *model.User
}

func (r *userResolver) GithubLogin() graphql.ID { return graphql.ID(r.user.GithubLogin) }

func (r *userResolver) Name() string { return r.user.Name }

func (r *userResolver) Avatar() string { return r.user.Avatar }

// PostedPhotos stitches in this user's photos by login. Lazy: the lookup
// only happens when the query requests the field.
func (r *userResolver) PostedPhotos(ctx context.Context) ([]*photoResolver, error) {
	photos, err := r.root.photos.ByUser(ctx, r.user.GithubLogin)
	if err != nil {
		return nil, err
	}
	return r.root.wrapPhotos(photos), nil
}
