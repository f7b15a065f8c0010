package service

import (
	"context"
	"errors"
	"fmt"
	"tourguide/internal/models"
	"tourguide/internal/repository"

	"github.com/google/uuid"
)

type TagService interface {
	GetTags(ctx context.Context) ([]models.Tag, error)
	CreateTags(ctx context.Context, names []string) ([]models.Tag, error)
	DeleteTag(ctx context.Context, tagID string) error
	GetTagByID(ctx context.Context, tagID string) (*models.Tag, error)
	GetTagsByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.ListWithPostCount(ctx)
}

// CreateTags returns the tags for names, creating only the ones that do not
// exist yet. Names are matched exactly.
func (s *tagService) CreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	names = uniqueStrings(names)

	existing, err := s.tagRepo.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, tag := range existing {
		known[tag.Name] = struct{}{}
	}

	var created []models.Tag
	for _, name := range names {
		if _, ok := known[name]; ok {
			continue
		}
		created = append(created, models.Tag{
			TagID: uuid.New().String(),
			Name:  name,
		})
	}

	if len(created) > 0 {
		created, err = s.tagRepo.CreateMany(ctx, created)
		if err != nil {
			return nil, err
		}
	}

	result := make([]models.Tag, 0, len(existing)+len(created))
	result = append(result, existing...)
	result = append(result, created...)

	return result, nil
}

// DeleteTag is a no-op for an unknown id. Drafts count as references.
func (s *tagService) DeleteTag(ctx context.Context, tagID string) error {
	_, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	count, err := s.tagRepo.CountPosts(ctx, tagID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("тег %s используется в %d постах: %w", tagID, count, models.ErrReferentialConflict)
	}

	return s.tagRepo.Delete(ctx, tagID)
}

func (s *tagService) GetTagByID(ctx context.Context, tagID string) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, tagID)
}

// GetTagsByIDs resolves every id or fails; it never returns a partial set.
func (s *tagService) GetTagsByIDs(ctx context.Context, tagIDs []string) ([]models.Tag, error) {
	tagIDs = uniqueStrings(tagIDs)
	if len(tagIDs) == 0 {
		return []models.Tag{}, nil
	}

	tags, err := s.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, err
	}

	if len(tags) < len(tagIDs) {
		return nil, fmt.Errorf("не все указанные ID тегов существуют: %w", models.ErrNotFound)
	}

	return tags, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
