package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"tourguide/internal/models"
	"tourguide/internal/repository"
	"tourguide/internal/storage"

	"github.com/google/uuid"
)

const wordsPerMinute = 200

type PostService interface {
	ListPublished(ctx context.Context, categoryID, tagID string) ([]models.Post, error)
	ListDrafts(ctx context.Context, author *models.Identity) ([]models.Post, error)
	CreatePost(ctx context.Context, author *models.Identity, req models.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo   repository.PostRepository
	imageRepo  repository.ImageRepository
	categories CategoryService
	tags       TagService
	storage    storage.Storage
	now        func() time.Time
}

func NewPostService(
	postRepo repository.PostRepository,
	imageRepo repository.ImageRepository,
	categories CategoryService,
	tags TagService,
	storage storage.Storage,
) PostService {
	return &postService{
		postRepo:   postRepo,
		imageRepo:  imageRepo,
		categories: categories,
		tags:       tags,
		storage:    storage,
		now:        time.Now,
	}
}

// ListPublished returns published posts, optionally narrowed to a category
// and/or a tag. Both filters must reference existing entities.
func (p *postService) ListPublished(ctx context.Context, categoryID, tagID string) ([]models.Post, error) {
	filter := models.PostFilter{Status: models.PostStatusPublished}

	if categoryID != "" {
		category, err := p.categories.GetCategoryByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = category.CategoryID
	}

	if tagID != "" {
		tag, err := p.tags.GetTagByID(ctx, tagID)
		if err != nil {
			return nil, err
		}
		filter.TagID = tag.TagID
	}

	return p.postRepo.Find(ctx, filter)
}

func (p *postService) ListDrafts(ctx context.Context, author *models.Identity) ([]models.Post, error) {
	return p.postRepo.Find(ctx, models.PostFilter{
		Status:   models.PostStatusDraft,
		AuthorID: author.UserID,
	})
}

func (p *postService) CreatePost(ctx context.Context, author *models.Identity, req models.CreatePostRequest) (*models.Post, error) {
	category, err := p.categories.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	tags, err := p.tags.GetTagsByIDs(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	now := p.now().UTC()
	post := &models.Post{
		PostID:       uuid.New().String(),
		AuthorID:     author.UserID,
		AuthorName:   author.Name,
		CategoryID:   category.CategoryID,
		CategoryName: category.Name,
		Title:        req.Title,
		Content:      req.Content,
		Status:       req.Status,
		ReadingTime:  readingTime(req.Content),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatedAt:    now,
		UpdatedAt:    now,
		Tags:         tags,
		Images:       []models.Image{},
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// UpdatePost replaces every mutable field of the post. Author and createdAt
// stay as they were.
func (p *postService) UpdatePost(ctx context.Context, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != post.CategoryID {
		category, err := p.categories.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		post.CategoryID = category.CategoryID
		post.CategoryName = category.Name
	}

	if !sameStringSet(req.TagIDs, post.TagIDs()) {
		tags, err := p.tags.GetTagsByIDs(ctx, req.TagIDs)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Status = req.Status
	post.ReadingTime = readingTime(req.Content)
	post.Latitude = req.Latitude
	post.Longitude = req.Longitude

	post.UpdatedAt = p.now().UTC()
	if post.UpdatedAt.Before(post.CreatedAt) {
		post.UpdatedAt = post.CreatedAt
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.Images = images

	return post, nil
}

// DeletePost removes the post row and then its stored images. A failed object
// removal is logged and does not fail the request.
func (p *postService) DeletePost(ctx context.Context, postID string) error {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}

	images, err := p.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	for _, image := range images {
		if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить %s из хранилища: %v", image.ObjectName, err)
		}
	}

	return nil
}

// readingTime estimates minutes to read content at 200 words per minute,
// rounding up. Blank content reads in zero minutes.
func readingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func sameStringSet(a, b []string) bool {
	left := make(map[string]struct{}, len(a))
	for _, value := range a {
		left[value] = struct{}{}
	}

	right := make(map[string]struct{}, len(b))
	for _, value := range b {
		right[value] = struct{}{}
	}

	if len(left) != len(right) {
		return false
	}

	for value := range left {
		if _, ok := right[value]; !ok {
			return false
		}
	}

	return true
}

func postNotFound(postID string) error {
	return fmt.Errorf("пост с ID %s: %w", postID, models.ErrNotFound)
}
