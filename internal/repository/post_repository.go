package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"tourguide/internal/models"

	"github.com/jmoiron/sqlx"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

const selectPosts = `
	SELECT p.post_id, p.author_id, u.name AS author_name, p.category_id, c.name AS category_name,
		p.title, p.content, p.status, p.reading_time, p.latitude, p.longitude, p.created_at, p.updated_at
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	JOIN categories c ON c.category_id = p.category_id`

type postTagRow struct {
	PostID string `db:"post_id"`
	TagID  string `db:"tag_id"`
	Name   string `db:"name"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// Create stores the post row and its tag links in one transaction.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, author_id, category_id, title, content, status, reading_time, latitude, longitude, created_at, updated_at)
        VALUES
        (:post_id, :author_id, :category_id, :title, :content, :status, :reading_time, :latitude, :longitude, :created_at, :updated_at)
    `

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, query, post); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("категория или автор поста: %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	if err := insertPostTags(ctx, tx, post.PostID, post.TagIDs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при сохранении поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := selectPosts + ` WHERE p.post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	posts := []models.Post{post}
	if err := r.loadTags(ctx, posts); err != nil {
		return nil, err
	}

	return &posts[0], nil
}

// Find returns the posts matching every non-empty field of the filter.
func (r *PostRepositoryImpl) Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	var conditions []string
	var args []interface{}

	where := func(condition string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Status != "" {
		where("p.status = $%d", string(filter.Status))
	}
	if filter.CategoryID != "" {
		where("p.category_id = $%d", filter.CategoryID)
	}
	if filter.TagID != "" {
		where("EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.post_id AND pt.tag_id = $%d)", filter.TagID)
	}
	if filter.AuthorID != "" {
		where("p.author_id = $%d", filter.AuthorID)
	}

	query := selectPosts
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	if err := r.loadTags(ctx, posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// Update rewrites the mutable columns and replaces the tag links. Author and
// created_at are never touched.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			category_id = :category_id,
			title = :title,
			content = :content,
			status = :status,
			reading_time = :reading_time,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, query, post)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("категория поста: %w", models.ErrNotFound)
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, models.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, post.PostID); err != nil {
		return fmt.Errorf("ошибка при обновлении тегов поста: %w", err)
	}

	if err := insertPostTags(ctx, tx, post.PostID, post.TagIDs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при сохранении поста: %w", err)
	}

	return nil
}

// Delete removes the post; tag links and image rows go with it through
// ON DELETE CASCADE.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, models.ErrNotFound)
	}

	return nil
}

func insertPostTags(ctx context.Context, tx *sqlx.Tx, postID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("тег с ID %s: %w", tagID, models.ErrNotFound)
			}
			return fmt.Errorf("ошибка при привязке тега к посту: %w", err)
		}
	}
	return nil
}

func (r *PostRepositoryImpl) loadTags(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.PostID)
	}

	query, args, err := sqlx.In(`
		SELECT pt.post_id, t.tag_id, t.name
		FROM post_tags pt
		JOIN tags t ON t.tag_id = pt.tag_id
		WHERE pt.post_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("ошибка при построении запроса тегов: %w", err)
	}

	var rows []postTagRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("ошибка при получении тегов постов: %w", err)
	}

	byPost := make(map[string][]models.Tag, len(posts))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], models.Tag{TagID: row.TagID, Name: row.Name})
	}

	for i := range posts {
		posts[i].Tags = byPost[posts[i].PostID]
		if posts[i].Tags == nil {
			posts[i].Tags = []models.Tag{}
		}
	}

	return nil
}
