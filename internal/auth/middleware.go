package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakif/photoshare/internal/model"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string
// like "currentUser", ANY package that knows the string can read or shadow
// your value. A package-private type prevents collisions: only THIS package
// can create a key of type contextKey, so only this package can read or
// write the current user in the context.
type contextKey string

const currentUserKey contextKey = "currentUser"

// TokenResolver maps a session token back to the user it belongs to.
// Implemented by service.AuthService with a githubToken lookup.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// Middleware resolves the request's bearer token to a user and stores that
// user in the request context before the GraphQL layer runs.
//
// This is the per-request session builder: each request gets its own
// context value, never a shared process-wide "current user". Requests with
// no token (or an unknown one) continue anonymously rather than being
// rejected — the githubAuth mutation itself has to work without
// credentials, and the postPhoto gate handles anonymity downstream.
//
// TOKEN TRANSPORT:
// The session credential is the GitHub access token returned by githubAuth.
// Clients send it back as "Authorization: Bearer <token>".
func Middleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if user, err := resolver.ResolveToken(r.Context(), token); err == nil && user != nil {
					r = r.WithContext(WithCurrentUser(r.Context(), user))
				}
			}
			// Always continue — no 401 even if no token
			next.ServeHTTP(w, r)
		})
	}
}

// WithCurrentUser returns a child context carrying the authenticated user.
// Exported so tests (and the GraphQL executor tests in particular) can
// build an authenticated context without going through HTTP.
func WithCurrentUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser retrieves the authenticated user from the request context.
//
// Returns (nil, false) if the request is anonymous.
//
// Usage in resolvers:
//
//	user, ok := auth.CurrentUser(ctx)
//	if !ok {
//	    // anonymous request
//	}
func CurrentUser(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok && user != nil
}

// bearerToken extracts the token from the Authorization header.
// Returns "" when the header is absent or not a Bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
