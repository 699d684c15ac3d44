package services

import (
	"context"
	"errors"
	"strings"

	"news-portal/models"
	"news-portal/repositories"
)

type TagService struct {
	tags TagStore
}

func NewTagService(tags TagStore) *TagService {
	return &TagService{tags: tags}
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, models.InternalError("failed to list tags", err)
	}
	return tags, nil
}

func (s *TagService) Create(ctx context.Context, req models.TagRequest) (*models.Tag, error) {
	req.Name = strings.ToLower(strings.TrimSpace(req.Name))
	if req.Name == "" {
		return nil, models.ValidationError("Tag name is required")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tag, err := s.tags.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.ConflictError("Tag already exists")
		}
		return nil, models.InternalError("failed to create tag", err)
	}
	return tag, nil
}
