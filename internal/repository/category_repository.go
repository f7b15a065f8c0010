package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"tourguide/internal/models"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// ListWithPostCount returns every category with the number of its published
// posts. Drafts are not counted.
func (r *categoryRepository) ListWithPostCount(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT c.category_id, c.name,
			COALESCE(SUM(CASE WHEN p.status = 'PUBLISHED' THEN 1 ELSE 0 END), 0) AS post_count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.category_id
		GROUP BY c.category_id, c.name
	`

	categories := []models.Category{}
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении категорий: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (category_id, name) VALUES (:category_id, :name)`

	_, err := r.db.NamedExecContext(ctx, query, category)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("категория %s: %w", category.Name, models.ErrDuplicateName)
		}
		return fmt.Errorf("ошибка при создании категории: %w", err)
	}

	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, categoryID string) (*models.Category, error) {
	query := `SELECT category_id, name FROM categories WHERE category_id = $1`

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("категория с ID %s: %w", categoryID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении категории: %w", err)
	}

	return &category, nil
}

func (r *categoryRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM categories WHERE lower(name) = lower($1))`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, name)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке имени категории: %w", err)
	}

	return exists, nil
}

// CountPosts counts posts of any status that reference the category.
func (r *categoryRepository) CountPosts(ctx context.Context, categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM posts WHERE category_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, categoryID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов категории: %w", err)
	}

	return count, nil
}

func (r *categoryRepository) Delete(ctx context.Context, categoryID string) error {
	query := `DELETE FROM categories WHERE category_id = $1`

	_, err := r.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("категория с ID %s: %w", categoryID, models.ErrReferentialConflict)
		}
		return fmt.Errorf("ошибка при удалении категории: %w", err)
	}

	return nil
}
