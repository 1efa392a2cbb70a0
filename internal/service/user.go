package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// UserService handles read-side business logic for users. Writes happen
// only through AuthService.GithubAuth — there is no other way a user
// record comes into existence.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// ByLogin returns the user with the given GitHub login. An absent user is
// reported as apperror.ErrNotFound; the User query resolver translates
// that into a null field because the schema declares the result nullable.
func (s *UserService) ByLogin(ctx context.Context, githubLogin string) (*model.User, error) {
	user, err := s.users.FindByLogin(ctx, githubLogin)
	if err != nil {
		return nil, fmt.Errorf("service/user: fetching user %s: %w", githubLogin, err)
	}
	return user, nil
}

// All returns every user in store-native order.
func (s *UserService) All(ctx context.Context) ([]model.User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	return users, nil
}

// Total returns the user count.
func (s *UserService) Total(ctx context.Context) (int64, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service/user: counting users: %w", err)
	}
	return n, nil
}
