package repository

import (
	"context"
	"github.com/jmoiron/sqlx"
	"tourguide/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type CategoryRepository interface {
	ListWithPostCount(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, categoryID string) (*models.Category, error)
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	CountPosts(ctx context.Context, categoryID string) (int, error)
	Delete(ctx context.Context, categoryID string) error
}

type TagRepository interface {
	ListWithPostCount(ctx context.Context) ([]models.Tag, error)
	FindByNames(ctx context.Context, names []string) ([]models.Tag, error)
	CreateMany(ctx context.Context, tags []models.Tag) ([]models.Tag, error)
	GetByID(ctx context.Context, tagID string) (*models.Tag, error)
	GetByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error)
	CountPosts(ctx context.Context, tagID string) (int, error)
	Delete(ctx context.Context, tagID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Find(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
}

type HealthRepository interface {
	Ping(ctx context.Context) error
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Tag      TagRepository
	Post     PostRepository
	Image    ImageRepository
	Health   HealthRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Tag:      NewTagRepository(db),
		Post:     NewPostRepository(db),
		Image:    NewImageRepository(db),
		Health:   NewHealthRepository(db),
	}
}
