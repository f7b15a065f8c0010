package service

import (
	"context"
	"errors"
	"fmt"
	"tourguide/internal/models"
	"tourguide/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

// ListCategories returns every category with its count of published posts.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.ListWithPostCount(ctx)
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	exists, err := s.categoryRepo.ExistsByNameIgnoreCase(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("категория %q: %w", name, models.ErrDuplicateName)
	}

	category := &models.Category{
		CategoryID: uuid.New().String(),
		Name:       name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory is a no-op for an unknown id. A category referenced by any
// post, draft or published, is kept.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	count, err := s.categoryRepo.CountPosts(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("категория %s используется в %d постах: %w", categoryID, count, models.ErrReferentialConflict)
	}

	return s.categoryRepo.Delete(ctx, categoryID)
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, categoryID)
}
