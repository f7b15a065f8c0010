package service

import (
	"context"
	"testing"
	"tourguide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание", func(t *testing.T) {
		repo := new(mockCategoryRepo)
		svc := NewCategoryService(repo)

		repo.On("ExistsByNameIgnoreCase", ctx, "Travel").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Travel" && c.CategoryID != ""
		})).Return(nil)

		category, err := svc.CreateCategory(ctx, "Travel")

		require.NoError(t, err)
		assert.Equal(t, "Travel", category.Name)
		repo.AssertExpectations(t)
	})

	t.Run("Имя совпадает без учёта регистра", func(t *testing.T) {
		repo := new(mockCategoryRepo)
		svc := NewCategoryService(repo)

		repo.On("ExistsByNameIgnoreCase", ctx, "TRAVEL").Return(true, nil)

		category, err := svc.CreateCategory(ctx, "TRAVEL")

		assert.Nil(t, category)
		assert.ErrorIs(t, err, models.ErrDuplicateName)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Категория без постов удаляется", func(t *testing.T) {
		repo := new(mockCategoryRepo)
		svc := NewCategoryService(repo)

		repo.On("GetByID", ctx, "cat-1").Return(&models.Category{CategoryID: "cat-1"}, nil)
		repo.On("CountPosts", ctx, "cat-1").Return(0, nil)
		repo.On("Delete", ctx, "cat-1").Return(nil)

		assert.NoError(t, svc.DeleteCategory(ctx, "cat-1"))
		repo.AssertExpectations(t)
	})

	t.Run("Категория с постами остаётся", func(t *testing.T) {
		repo := new(mockCategoryRepo)
		svc := NewCategoryService(repo)

		repo.On("GetByID", ctx, "cat-1").Return(&models.Category{CategoryID: "cat-1"}, nil)
		repo.On("CountPosts", ctx, "cat-1").Return(1, nil)

		err := svc.DeleteCategory(ctx, "cat-1")

		assert.ErrorIs(t, err, models.ErrReferentialConflict)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Несуществующая категория", func(t *testing.T) {
		repo := new(mockCategoryRepo)
		svc := NewCategoryService(repo)

		repo.On("GetByID", ctx, "missing").Return(nil, models.ErrNotFound)

		assert.NoError(t, svc.DeleteCategory(ctx, "missing"))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_GetCategoryByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo)

	repo.On("GetByID", ctx, "missing").Return(nil, models.ErrNotFound)

	category, err := svc.GetCategoryByID(ctx, "missing")

	assert.Nil(t, category)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
