// Package service contains the business logic layer of the application.
//
// THE LAYERING:
//
//	graph (GraphQL resolvers) → service (business rules) → repository (store)
//	                          ↘ auth.Provider (GitHub)
//
// Resolvers only parse GraphQL shapes; services enforce the rules
// (authorization gate, validation, upsert-on-login); repositories only move
// documents. Each layer receives interfaces, so every service test runs
// against hand-written fakes with no network or store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/auth"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// CodeExchanger is the slice of auth.Provider this service needs.
// Declared here (at the consumer) so tests can substitute a fake exchange
// without touching the real OAuth client.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (*auth.Profile, error)
}

// AuthService coordinates login: it turns a GitHub authorization code into
// a persisted user plus a session token.
//
// DEPENDENCIES (injected via NewAuthService):
//   - provider CodeExchanger              → the OAuth code exchange
//   - users    repository.UserRepository  → upsert/lookup user documents
//   - logger   *slog.Logger               → structured logging
type AuthService struct {
	provider CodeExchanger
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(provider CodeExchanger, users repository.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		users:    users,
		logger:   logger,
	}
}

// AuthPayload is the result of a successful githubAuth call: the persisted
// user record and the session token (the GitHub access token — by design
// they are the same value, see model.User).
type AuthPayload struct {
	Token string
	User  *model.User
}

// GithubAuth is the upsert-on-login coordinator.
//
// Steps:
//  1. Exchange the code with GitHub. A provider rejection (bad code,
//     revoked app) comes back as apperror.ErrAuth carrying GitHub's own
//     message — that error is returned untouched, per the API contract.
//  2. Map the profile onto a User with githubToken = access token.
//  3. Upsert keyed on githubLogin. This is a FULL-DOCUMENT REPLACE in one
//     atomic store operation: a re-login discards every field of the prior
//     record, and two concurrent logins are last-write-wins without any
//     read-then-write window.
//  4. Return the persisted record and its token.
func (s *AuthService) GithubAuth(ctx context.Context, code string) (*AuthPayload, error) {
	if code == "" {
		return nil, apperror.ValidationFailed("code", "authorization code is required")
	}

	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, apperror.ErrAuth) {
			// Provider said no — propagate its message verbatim.
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: exchanging code: %w", err)
	}

	user := &model.User{
		GithubLogin: profile.Login,
		Name:        profile.Name,
		Avatar:      profile.AvatarURL,
		GithubToken: profile.AccessToken,
	}

	persisted, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("service/auth: upserting user %s: %w", profile.Login, err)
	}

	s.logger.Info("user authenticated via GitHub",
		slog.String("githubLogin", persisted.GithubLogin),
	)

	return &AuthPayload{
		Token: persisted.GithubToken,
		User:  persisted,
	}, nil
}

// ResolveToken maps a bearer token back to its user via a githubToken
// lookup. This is what the auth middleware calls on every request carrying
// an Authorization header; it satisfies auth.TokenResolver.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperror.Unauthorized("missing session token")
	}

	user, err := s.users.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("service/auth: resolving token: %w", err)
	}
	return user, nil
}

// interface check: the middleware consumes AuthService through this
var _ auth.TokenResolver = (*AuthService)(nil)
