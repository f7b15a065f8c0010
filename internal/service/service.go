package service

import (
	"tourguide/internal/config"
	"tourguide/internal/repository"
	"tourguide/internal/storage"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Tag      TagService
	Post     PostService
	Image    ImageService
	Health   HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	categories := NewCategoryService(rep.Category)
	tags := NewTagService(rep.Tag)

	return &Service{
		Auth:     NewAuthService(rep.User, NewTokenService(cfg.JWTSecretKey)),
		User:     NewUserService(rep.User),
		Category: categories,
		Tag:      tags,
		Post:     NewPostService(rep.Post, rep.Image, categories, tags, storage),
		Image:    NewImageService(rep.Post, rep.Image, storage),
		Health:   NewHealthService(rep.Health),
	}
}
