package service

import (
	"context"

	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/rs/zerolog"
)

type ImageService struct {
	repo   repository.Images
	logger *zerolog.Logger
}

func NewImageService(repo repository.Images, logger *zerolog.Logger) *ImageService {
	return &ImageService{repo: repo, logger: logger}
}

func (s *ImageService) List(ctx context.Context) ([]model.Image, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		logFailure(ctx, s.logger, "images.list", err)
		return nil, err
	}
	return images, nil
}

// Get returns nil without an error when imageID does not exist.
func (s *ImageService) Get(ctx context.Context, imageID int32) (*model.Image, error) {
	image, err := s.repo.GetByID(ctx, imageID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		logFailure(ctx, s.logger, "images.get", err)
		return nil, err
	}
	return image, nil
}

// InCategory returns the images whose category equals slug.
func (s *ImageService) InCategory(ctx context.Context, slug string) ([]model.Image, error) {
	images, err := s.repo.ListByCategory(ctx, slug)
	if err != nil {
		logFailure(ctx, s.logger, "images.list_by_category", err)
		return nil, err
	}
	return images, nil
}

// PostedBy returns the images whose posted_by equals username.
func (s *ImageService) PostedBy(ctx context.Context, username string) ([]model.Image, error) {
	images, err := s.repo.ListByPoster(ctx, username)
	if err != nil {
		logFailure(ctx, s.logger, "images.list_by_poster", err)
		return nil, err
	}
	return images, nil
}

func (s *ImageService) Create(ctx context.Context, in model.NewImage) (*model.Image, error) {
	image, err := s.repo.Create(ctx, in)
	if err != nil {
		logFailure(ctx, s.logger, "images.create", err)
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Delete(ctx context.Context, imageID int32) (*model.Image, error) {
	image, err := s.repo.Delete(ctx, imageID)
	if err != nil {
		logFailure(ctx, s.logger, "images.delete", err)
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Update(ctx context.Context, imageID int32, field, newValue string) (*model.Image, error) {
	patch, err := model.NewImagePatch(field, newValue)
	if err != nil {
		logFailure(ctx, s.logger, "images.update", err)
		return nil, err
	}

	image, err := s.repo.Update(ctx, imageID, patch)
	if err != nil {
		logFailure(ctx, s.logger, "images.update", err)
		return nil, err
	}
	return image, nil
}
