package graph

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/auth"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository/memory"
	"github.com/sakif/photoshare/internal/service"
)

// These tests execute real GraphQL documents against the parsed schema —
// end to end through resolvers, services, and the in-memory store. Only
// the GitHub exchange is faked.

type fakeExchanger struct{}

func (fakeExchanger) Exchange(_ context.Context, code string) (*auth.Profile, error) {
	if code == "validcode" {
		return &auth.Profile{
			Login:       "ada",
			Name:        "Ada",
			AvatarURL:   "a.png",
			AccessToken: "tok1",
		}, nil
	}
	return nil, apperror.AuthFailed("bad verification code")
}

func newTestSchema(t *testing.T) (*graphql.Schema, *memory.Store) {
	t.Helper()

	store := memory.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := service.NewAuthService(fakeExchanger{}, store.Users(), logger)
	photoSvc := service.NewPhotoService(store.Photos(), logger)
	userSvc := service.NewUserService(store.Users(), logger)

	schema, err := ParseSchema(NewResolver(photoSvc, userSvc, authSvc))
	require.NoError(t, err, "schema must parse against the resolvers")
	return schema, store
}

// asAda returns a context authenticated as the given seeded user, the same
// way auth.Middleware builds it per request.
func asAda(t *testing.T, store *memory.Store) (context.Context, *model.User) {
	t.Helper()
	user, err := store.Users().Upsert(context.Background(), &model.User{
		GithubLogin: "ada",
		Name:        "Ada",
		Avatar:      "a.png",
		GithubToken: "tok1",
	})
	require.NoError(t, err)
	return auth.WithCurrentUser(context.Background(), user), user
}

func decode(t *testing.T, raw json.RawMessage, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, into))
}

func TestCountsOnEmptyStore(t *testing.T) {
	schema, _ := newTestSchema(t)

	resp := schema.Exec(context.Background(), `{ totalPhotos totalUsers }`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		TotalPhotos int32 `json:"totalPhotos"`
		TotalUsers  int32 `json:"totalUsers"`
	}
	decode(t, resp.Data, &data)
	assert.Equal(t, int32(0), data.TotalPhotos)
	assert.Equal(t, int32(0), data.TotalUsers)
}

func TestGithubAuthMutation(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := schema.Exec(context.Background(), `
		mutation {
			githubAuth(code: "validcode") {
				token
				user { githubLogin name avatar }
			}
		}`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		GithubAuth struct {
			Token string `json:"token"`
			User  struct {
				GithubLogin string `json:"githubLogin"`
				Name        string `json:"name"`
				Avatar      string `json:"avatar"`
			} `json:"user"`
		} `json:"githubAuth"`
	}
	decode(t, resp.Data, &data)

	assert.Equal(t, "tok1", data.GithubAuth.Token)
	assert.Equal(t, "ada", data.GithubAuth.User.GithubLogin)
	assert.Equal(t, "Ada", data.GithubAuth.User.Name)
	assert.Equal(t, "a.png", data.GithubAuth.User.Avatar)

	n, _ := store.Users().Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestGithubAuthMutation_BadCode(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := schema.Exec(context.Background(),
		`mutation { githubAuth(code: "badcode") { token } }`, "", nil)

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Error(), "bad verification code")

	n, _ := store.Users().Count(context.Background())
	assert.Equal(t, int64(0), n, "a rejected code must not create a user")
}

func TestPostPhoto_Anonymous(t *testing.T) {
	schema, store := newTestSchema(t)

	resp := schema.Exec(context.Background(),
		`mutation { postPhoto(input: { name: "Sunset" }) { id } }`, "", nil)

	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Error(), "only an authorized user can post a photo")

	n, _ := store.Photos().Count(context.Background())
	assert.Equal(t, int64(0), n, "the gate must fire before any write")
}

func TestPostPhoto_Authorized(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	resp := schema.Exec(ctx, `
		mutation {
			postPhoto(input: { name: "Sunset", category: LANDSCAPE }) {
				id
				name
				category
				url
				postedBy { githubLogin }
			}
		}`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		PostPhoto struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Category string `json:"category"`
			URL      string `json:"url"`
			PostedBy struct {
				GithubLogin string `json:"githubLogin"`
			} `json:"postedBy"`
		} `json:"postPhoto"`
	}
	decode(t, resp.Data, &data)

	assert.NotEmpty(t, data.PostPhoto.ID)
	assert.Equal(t, "Sunset", data.PostPhoto.Name)
	assert.Equal(t, "LANDSCAPE", data.PostPhoto.Category)
	assert.Equal(t, "/img/photos/"+data.PostPhoto.ID+".jpg", data.PostPhoto.URL)
	assert.Equal(t, "ada", data.PostPhoto.PostedBy.GithubLogin)

	n, _ := store.Photos().Count(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestPostPhoto_DescriptionAbsentVsEmpty(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	// No description supplied: the field resolves to null.
	resp := schema.Exec(ctx,
		`mutation { postPhoto(input: { name: "Bare" }) { description } }`, "", nil)
	require.Empty(t, resp.Errors)

	var bare struct {
		PostPhoto struct {
			Description *string `json:"description"`
		} `json:"postPhoto"`
	}
	decode(t, resp.Data, &bare)
	assert.Nil(t, bare.PostPhoto.Description)

	// An explicitly empty description is kept as "".
	resp = schema.Exec(ctx,
		`mutation { postPhoto(input: { name: "Blank", description: "" }) { description } }`, "", nil)
	require.Empty(t, resp.Errors)

	var blank struct {
		PostPhoto struct {
			Description *string `json:"description"`
		} `json:"postPhoto"`
	}
	decode(t, resp.Data, &blank)
	require.NotNil(t, blank.PostPhoto.Description)
	assert.Equal(t, "", *blank.PostPhoto.Description)
}

func TestPostPhoto_CategoryDefaultsToPortrait(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	resp := schema.Exec(ctx,
		`mutation { postPhoto(input: { name: "Untitled" }) { category } }`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		PostPhoto struct {
			Category string `json:"category"`
		} `json:"postPhoto"`
	}
	decode(t, resp.Data, &data)
	assert.Equal(t, "PORTRAIT", data.PostPhoto.Category)
}

func TestPhotoQuery_UnknownIDFailsField(t *testing.T) {
	schema, _ := newTestSchema(t)

	resp := schema.Exec(context.Background(),
		`{ Photo(id: "nonexistent") { id } }`, "", nil)

	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Error(), "not found")
}

func TestUserQuery_UnknownLoginIsNull(t *testing.T) {
	schema, _ := newTestSchema(t)

	resp := schema.Exec(context.Background(),
		`{ User(githubLogin: "ghost") { githubLogin } }`, "", nil)
	require.Empty(t, resp.Errors, "an absent user is a null result, not an error")

	var data struct {
		User *struct{} `json:"User"`
	}
	decode(t, resp.Data, &data)
	assert.Nil(t, data.User)
}

func TestUserPostedPhotosStitching(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	for _, q := range []string{
		`mutation { postPhoto(input: { name: "one" }) { id } }`,
		`mutation { postPhoto(input: { name: "two", category: ACTION }) { id } }`,
	} {
		resp := schema.Exec(ctx, q, "", nil)
		require.Empty(t, resp.Errors)
	}

	resp := schema.Exec(context.Background(), `
		{
			User(githubLogin: "ada") {
				githubLogin
				postedPhotos { name category }
			}
		}`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		User struct {
			GithubLogin  string `json:"githubLogin"`
			PostedPhotos []struct {
				Name     string `json:"name"`
				Category string `json:"category"`
			} `json:"postedPhotos"`
		} `json:"User"`
	}
	decode(t, resp.Data, &data)

	require.Len(t, data.User.PostedPhotos, 2)
	assert.Equal(t, "one", data.User.PostedPhotos[0].Name)
	assert.Equal(t, "PORTRAIT", data.User.PostedPhotos[0].Category)
	assert.Equal(t, "two", data.User.PostedPhotos[1].Name)
	assert.Equal(t, "ACTION", data.User.PostedPhotos[1].Category)
}

func TestPhotoURL_Deterministic(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	resp := schema.Exec(ctx,
		`mutation { postPhoto(input: { name: "Sunset" }) { id url } }`, "", nil)
	require.Empty(t, resp.Errors)

	var posted struct {
		PostPhoto struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"postPhoto"`
	}
	decode(t, resp.Data, &posted)

	// Query the same photo again: same id, same url.
	resp = schema.Exec(context.Background(),
		`{ Photo(id: "`+posted.PostPhoto.ID+`") { url } }`, "", nil)
	require.Empty(t, resp.Errors)

	var queried struct {
		Photo struct {
			URL string `json:"url"`
		} `json:"Photo"`
	}
	decode(t, resp.Data, &queried)
	assert.Equal(t, posted.PostPhoto.URL, queried.Photo.URL)
}

func TestAllPhotosListsEveryPhoto(t *testing.T) {
	schema, store := newTestSchema(t)
	ctx, _ := asAda(t, store)

	for _, name := range []string{"one", "two", "three"} {
		resp := schema.Exec(ctx,
			`mutation { postPhoto(input: { name: "`+name+`" }) { id } }`, "", nil)
		require.Empty(t, resp.Errors)
	}

	resp := schema.Exec(context.Background(), `{ totalPhotos allPhotos { name } }`, "", nil)
	require.Empty(t, resp.Errors)

	var data struct {
		TotalPhotos int32 `json:"totalPhotos"`
		AllPhotos   []struct {
			Name string `json:"name"`
		} `json:"allPhotos"`
	}
	decode(t, resp.Data, &data)
	assert.Equal(t, int32(3), data.TotalPhotos)
	assert.Len(t, data.AllPhotos, 3)
}
