package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jmoiron/sqlx"
	"tourguide/internal/models"
)

type tagRepository struct {
	db *sqlx.DB
}

func NewTagRepository(db *sqlx.DB) TagRepository {
	return &tagRepository{db: db}
}

// ListWithPostCount returns every tag with the number of published posts
// carrying it.
func (r *tagRepository) ListWithPostCount(ctx context.Context) ([]models.Tag, error) {
	query := `
		SELECT t.tag_id, t.name,
			COALESCE(SUM(CASE WHEN p.status = 'PUBLISHED' THEN 1 ELSE 0 END), 0) AS post_count
		FROM tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.tag_id
		LEFT JOIN posts p ON p.post_id = pt.post_id
		GROUP BY t.tag_id, t.name
	`

	tags := []models.Tag{}
	err := r.db.SelectContext(ctx, &tags, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}

	return tags, nil
}

// FindByNames looks tags up by exact name.
func (r *tagRepository) FindByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(names) == 0 {
		return tags, nil
	}

	query, args, err := sqlx.In(`SELECT tag_id, name FROM tags WHERE name IN (?)`, names)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса тегов: %w", err)
	}

	err = r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске тегов по имени: %w", err)
	}

	return tags, nil
}

// CreateMany inserts the tags in one transaction, skipping names that
// already exist, and returns the stored rows for every requested name. A tag
// created concurrently under the same name comes back with its stored id.
func (r *tagRepository) CreateMany(ctx context.Context, tags []models.Tag) ([]models.Tag, error) {
	stored := []models.Tag{}
	if len(tags) == 0 {
		return stored, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	names := make([]string, 0, len(tags))
	query := `INSERT INTO tags (tag_id, name) VALUES (:tag_id, :name) ON CONFLICT (name) DO NOTHING`
	for _, tag := range tags {
		if _, err := tx.NamedExecContext(ctx, query, tag); err != nil {
			return nil, fmt.Errorf("ошибка при создании тега: %w", err)
		}
		names = append(names, tag.Name)
	}

	selectQuery, args, err := sqlx.In(`SELECT tag_id, name FROM tags WHERE name IN (?)`, names)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса тегов: %w", err)
	}

	if err := tx.SelectContext(ctx, &stored, tx.Rebind(selectQuery), args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении созданных тегов: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при сохранении тегов: %w", err)
	}

	return stored, nil
}

func (r *tagRepository) GetByID(ctx context.Context, tagID string) (*models.Tag, error) {
	query := `SELECT tag_id, name FROM tags WHERE tag_id = $1`

	var tag models.Tag
	err := r.db.GetContext(ctx, &tag, query, tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("тег с ID %s: %w", tagID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении тега: %w", err)
	}

	return &tag, nil
}

// GetByIDs returns the tags that exist among tagIDs; callers compare the
// result size to detect missing ids.
func (r *tagRepository) GetByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(tagIDs) == 0 {
		return tags, nil
	}

	query, args, err := sqlx.In(`SELECT tag_id, name FROM tags WHERE tag_id IN (?)`, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("ошибка при построении запроса тегов: %w", err)
	}

	err = r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}

	return tags, nil
}

// CountPosts counts posts of any status carrying the tag.
func (r *tagRepository) CountPosts(ctx context.Context, tagID string) (int, error) {
	query := `SELECT COUNT(*) FROM post_tags WHERE tag_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, tagID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов тега: %w", err)
	}

	return count, nil
}

func (r *tagRepository) Delete(ctx context.Context, tagID string) error {
	query := `DELETE FROM tags WHERE tag_id = $1`

	_, err := r.db.ExecContext(ctx, query, tagID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("тег с ID %s: %w", tagID, models.ErrReferentialConflict)
		}
		return fmt.Errorf("ошибка при удалении тега: %w", err)
	}

	return nil
}
