package service

import (
	"context"

	"github.com/deppfellow/printgallery/internal/model"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/rs/zerolog"
)

type CategoryService struct {
	repo   repository.Categories
	logger *zerolog.Logger
}

func NewCategoryService(repo repository.Categories, logger *zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		logFailure(ctx, s.logger, "categories.list", err)
		return nil, err
	}
	return categories, nil
}

// GetBySlug returns nil without an error when no category has slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.repo.GetBySlug(ctx, slug)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		logFailure(ctx, s.logger, "categories.get", err)
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in model.NewCategory) (*model.Category, error) {
	category, err := s.repo.Create(ctx, in)
	if err != nil {
		logFailure(ctx, s.logger, "categories.create", err)
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil {
		logFailure(ctx, s.logger, "categories.delete", err)
		return nil, err
	}
	return category, nil
}

// Update changes the single field named by field. The name is checked
// against the category allow-list before the store is touched.
func (s *CategoryService) Update(ctx context.Context, topicID int32, field, newValue string) (*model.Category, error) {
	patch, err := model.NewCategoryPatch(field, newValue)
	if err != nil {
		logFailure(ctx, s.logger, "categories.update", err)
		return nil, err
	}

	category, err := s.repo.Update(ctx, topicID, patch)
	if err != nil {
		logFailure(ctx, s.logger, "categories.update", err)
		return nil, err
	}
	return category, nil
}
