package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/photoshare/internal/apperror"
	"github.com/sakif/photoshare/internal/model"
	"github.com/sakif/photoshare/internal/repository"
)

// Validation constants.
const (
	MaxPhotoNameLength   = 100
	MaxDescriptionLength = 1000
)

// PhotoService handles business logic for photos, including the single
// authorization gate in the system: posting requires an authenticated user.
type PhotoService struct {
	photos repository.PhotoRepository
	logger *slog.Logger
}

// NewPhotoService creates a PhotoService.
func NewPhotoService(photos repository.PhotoRepository, logger *slog.Logger) *PhotoService {
	return &PhotoService{
		photos: photos,
		logger: logger,
	}
}

// PostPhotoInput carries the caller-supplied photo attributes.
// Category defaults to PORTRAIT when left empty; the GraphQL schema applies
// the same default, but the rule lives here so every caller gets it.
type PostPhotoInput struct {
	Name        string
	Description *string // nil when the caller omitted it
	Category    model.Category
}

// Post creates a photo owned by viewer.
//
// THE GATE:
// viewer is the request's current user, or nil for an anonymous request.
// An anonymous post fails with the authorization error BEFORE anything is
// validated or written — the photos collection is untouched. The owner is
// fixed here (UserID = viewer's login) and no operation ever changes it.
func (s *PhotoService) Post(ctx context.Context, viewer *model.User, in PostPhotoInput) (*model.Photo, error) {
	if viewer == nil {
		return nil, apperror.Unauthorized("only an authorized user can post a photo")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "photo name is required")
	}
	if len(name) > MaxPhotoNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("photo name must be at most %d characters", MaxPhotoNameLength))
	}
	// An omitted description stays nil; a supplied one is kept even when
	// empty, so the two cases remain distinguishable downstream.
	var description *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if len(d) > MaxDescriptionLength {
			return nil, apperror.ValidationFailed("description",
				fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
		}
		description = &d
	}

	category := in.Category
	if category == "" {
		category = model.CategoryPortrait
	}
	if !category.Valid() {
		return nil, apperror.ValidationFailed("category",
			fmt.Sprintf("unknown photo category %q", category))
	}

	photo := &model.Photo{
		Name:        name,
		Description: description,
		Category:    category,
		UserID:      viewer.GithubLogin,
	}

	if err := s.photos.Insert(ctx, photo); err != nil {
		return nil, fmt.Errorf("service/photo: inserting photo: %w", err)
	}

	s.logger.Info("photo posted",
		slog.String("photoID", photo.ID),
		slog.String("githubLogin", viewer.GithubLogin),
		slog.String("category", string(photo.Category)),
	)

	return photo, nil
}

// ByID returns the photo with the given ID. A missing photo is an error
// here: the Photo query's return type is non-null.
func (s *PhotoService) ByID(ctx context.Context, id string) (*model.Photo, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "photo id is required")
	}

	photo, err := s.photos.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/photo: fetching photo %s: %w", id, err)
	}
	return photo, nil
}

// ByUser returns the photos posted by the given GitHub login.
func (s *PhotoService) ByUser(ctx context.Context, githubLogin string) ([]model.Photo, error) {
	photos, err := s.photos.FindByUser(ctx, githubLogin)
	if err != nil {
		return nil, fmt.Errorf("service/photo: listing photos for %s: %w", githubLogin, err)
	}
	return photos, nil
}

// All returns every photo in store-native order.
func (s *PhotoService) All(ctx context.Context) ([]model.Photo, error) {
	photos, err := s.photos.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/photo: listing photos: %w", err)
	}
	return photos, nil
}

// Total returns the photo count.
func (s *PhotoService) Total(ctx context.Context) (int64, error) {
	n, err := s.photos.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service/photo: counting photos: %w", err)
	}
	return n, nil
}
