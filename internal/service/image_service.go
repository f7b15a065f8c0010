package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"
	"tourguide/internal/models"
	"tourguide/internal/repository"
	"tourguide/internal/storage"

	"github.com/google/uuid"
)

type ImageService interface {
	AddImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (*models.Image, error)
	ListImages(ctx context.Context, postID string) ([]models.Image, error)
	DeleteImage(ctx context.Context, postID, imageID string) error
}

type imageService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	storage   storage.Storage
	now       func() time.Time
}

func NewImageService(postRepo repository.PostRepository, imageRepo repository.ImageRepository, storage storage.Storage) ImageService {
	return &imageService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		storage:   storage,
		now:       time.Now,
	}
}

// AddImage uploads the file and records it against the post. The stored
// object is removed again if the row cannot be written.
func (s *imageService) AddImage(ctx context.Context, postID, fileName, contentType string, file io.Reader, size int64) (*models.Image, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, postID, fileName, contentType, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения в хранилище: %w", err)
	}

	image := &models.Image{
		ImageID:    uuid.New().String(),
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   imageURL,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Предупреждение: не удалось удалить %s из хранилища: %v", objectName, delErr)
		}
		return nil, err
	}

	return image, nil
}

func (s *imageService) ListImages(ctx context.Context, postID string) ([]models.Image, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	return s.imageRepo.GetByPostID(ctx, postID)
}

// DeleteImage removes an image that belongs to postID.
func (s *imageService) DeleteImage(ctx context.Context, postID, imageID string) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}

	if image.PostID != postID {
		return fmt.Errorf("изображение %s: %w", imageID, postNotFound(postID))
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	if err := s.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить %s из хранилища: %v", image.ObjectName, err)
	}

	return nil
}
