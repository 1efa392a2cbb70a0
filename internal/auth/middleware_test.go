package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/model"
)

// fakeTokenResolver maps tokens straight to users, no store involved.
type fakeTokenResolver struct {
	users map[string]*model.User
}

func (f *fakeTokenResolver) ResolveToken(_ context.Context, token string) (*model.User, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("user", "token")
}

// runMiddleware sends one request through Middleware and reports the user
// the inner handler observed in its context.
func runMiddleware(t *testing.T, resolver TokenResolver, authorization string) (*model.User, bool) {
	t.Helper()

	var (
		got *model.User
		ok  bool
	)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	Middleware(resolver)(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (middleware must never reject)", rec.Code)
	}
	return got, ok
}

func TestMiddleware_ResolvesBearerToken(t *testing.T) {
	resolver := &fakeTokenResolver{users: map[string]*model.User{
		"tok1": {GithubLogin: "ada", GithubToken: "tok1"},
	}}

	user, ok := runMiddleware(t, resolver, "Bearer tok1")
	if !ok {
		t.Fatal("expected an authenticated context")
	}
	if user.GithubLogin != "ada" {
		t.Errorf("GithubLogin = %q, want %q", user.GithubLogin, "ada")
	}
}

func TestMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	resolver := &fakeTokenResolver{users: map[string]*model.User{
		"tok1": {GithubLogin: "ada"},
	}}

	if _, ok := runMiddleware(t, resolver, "bearer tok1"); !ok {
		t.Error("expected 'bearer' scheme to be accepted")
	}
}

func TestMiddleware_AnonymousWithoutHeader(t *testing.T) {
	resolver := &fakeTokenResolver{users: map[string]*model.User{}}

	if _, ok := runMiddleware(t, resolver, ""); ok {
		t.Error("expected an anonymous context without an Authorization header")
	}
}

func TestMiddleware_AnonymousOnUnknownToken(t *testing.T) {
	resolver := &fakeTokenResolver{users: map[string]*model.User{}}

	// An unknown token degrades to anonymous rather than failing the
	// request — githubAuth itself must remain callable.
	if _, ok := runMiddleware(t, resolver, "Bearer unknown"); ok {
		t.Error("expected an anonymous context for an unknown token")
	}
}

func TestMiddleware_IgnoresOtherSchemes(t *testing.T) {
	resolver := &fakeTokenResolver{users: map[string]*model.User{
		"tok1": {GithubLogin: "ada"},
	}}

	if _, ok := runMiddleware(t, resolver, "Basic dXNlcjpwYXNz"); ok {
		t.Error("expected non-Bearer schemes to be ignored")
	}
}

func TestCurrentUser_EmptyContext(t *testing.T) {
	if _, ok := CurrentUser(context.Background()); ok {
		t.Error("CurrentUser on a bare context should report no user")
	}
}
