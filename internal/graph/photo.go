package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/sakif/photoshare/internal/model"
)

// photoResolver backs the Photo type. Scalar fields read straight off the
// model; postedBy is a stitching field that runs a secondary user lookup —
// and only runs it when the query actually asks for the field.
type photoResolver struct {
	root  *Resolver
	photo *model.Photo
}

func (r *photoResolver) ID() graphql.ID { return graphql.ID(r.photo.ID) }

func (r *photoResolver) Name() string { return r.photo.Name }

// Description is null only when the poster never supplied one; an
// explicitly empty description resolves to "".
func (r *photoResolver) Description() *string { return r.photo.Description }

func (r *photoResolver) Category() string { return string(r.photo.Category) }

// URL derives the image path from the ID. Pure and deterministic — the
// value is computed per request and never stored.
func (r *photoResolver) URL() *string {
	u := r.photo.URL()
	return &u
}

// PostedBy stitches in the owning user by the photo's userID.
// The schema declares `postedBy: User!`: every photo has exactly one owner
// fixed at creation, so a missing owner is a data integrity failure and the
// field errors rather than going null.
func (r *photoResolver) PostedBy(ctx context.Context) (*userResolver, error) {
	user, err := r.root.users.ByLogin(ctx, r.photo.UserID)
	if err != nil {
		return nil, err
	}
	return &userResolver{root: r.root, user: user}, nil
}
