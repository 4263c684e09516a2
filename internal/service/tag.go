package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/store"
)

// TagService manages tags and their attachment to leads.
// Tags are shared by every dashboard user; names are unique.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: store, logger: logger}
}

// CreateTagRequest is the input to CreateTag.
type CreateTagRequest struct {
	Name        string `json:"name" validate:"notblank,max=64"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Description string `json:"description,omitempty" validate:"max=500"`
}

// UpdateTagRequest is a partial update. Nil fields are left unchanged.
type UpdateTagRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=64"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// ListTags returns all tags ordered by name.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// GetTag returns a tag by id.
func (s *TagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("tag %d not found", id)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// CreateTag creates a tag owned by creatorID.
func (s *TagService) CreateTag(ctx context.Context, creatorID string, req CreateTagRequest) (*domain.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Color = strings.TrimSpace(req.Color)
	req.Description = strings.TrimSpace(req.Description)

	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if creatorID == "" {
		return nil, domainerrors.Unauthorized("a signed-in user is required to create tags")
	}

	tag := &domain.Tag{
		Name:        req.Name,
		Color:       req.Color,
		Description: domain.StringPtr(req.Description),
		CreatedBy:   &creatorID,
	}
	if tag.Color == "" {
		tag.Color = domain.DefaultTagColor
	}

	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("tag %q already exists", tag.Name)
		}
		return nil, storeError(err, "create tag")
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "name", tag.Name, "user_id", creatorID)
	return tag, nil
}

// UpdateTag applies a partial update.
func (s *TagService) UpdateTag(ctx context.Context, id int64, req UpdateTagRequest) (*domain.Tag, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tag.Name = strings.TrimSpace(*req.Name)
	}
	if tag.Name == "" {
		return nil, domainerrors.ValidationWithDetails("validation failed", map[string]string{"name": "is required"})
	}
	if req.Color != nil {
		tag.Color = strings.TrimSpace(*req.Color)
		if tag.Color == "" {
			tag.Color = domain.DefaultTagColor
		}
	}
	if req.Description != nil {
		tag.Description = domain.StringPtr(strings.TrimSpace(*req.Description))
	}

	if err := s.store.UpdateTag(ctx, tag); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.AlreadyExistsf("tag %q already exists", tag.Name)
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFoundf("tag %d not found", id)
		default:
			return nil, fmt.Errorf("update tag: %w", err)
		}
	}

	s.logger.Info("tag updated", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

// DeleteTag removes a tag and, through the cascade, every lead association.
func (s *TagService) DeleteTag(ctx context.Context, id int64) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFoundf("tag %d not found", id)
		}
		return fmt.Errorf("delete tag: %w", err)
	}

	s.logger.Info("tag deleted", "tag_id", id)
	return nil
}

// AddTagToLead attaches a tag to a lead. Attaching a tag twice is a conflict.
func (s *TagService) AddTagToLead(ctx context.Context, userID string, leadID, tagID int64) (*domain.LeadTag, error) {
	if tagID <= 0 {
		return nil, domainerrors.Validation("tagId is required")
	}

	if _, err := s.store.GetLead(ctx, leadID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("lead %d not found", leadID)
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	if _, err := s.GetTag(ctx, tagID); err != nil {
		return nil, err
	}

	exists, err := s.store.LeadTagExists(ctx, leadID, tagID)
	if err != nil {
		return nil, fmt.Errorf("check lead tag: %w", err)
	}
	if exists {
		return nil, domainerrors.AlreadyExists("tag already assigned to this lead")
	}

	lt := &domain.LeadTag{LeadID: leadID, TagID: tagID}
	if userID != "" {
		lt.CreatedBy = &userID
	}

	// A concurrent request can insert the same pair after the check above;
	// the unique index rejects it and it surfaces as the same conflict.
	if err := s.store.AddLeadTag(ctx, lt); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("tag already assigned to this lead")
		}
		return nil, storeError(err, "add lead tag")
	}

	s.logger.Info("tag added to lead", "lead_id", leadID, "tag_id", tagID, "user_id", userID)
	return lt, nil
}

// RemoveTagFromLead detaches a tag. Removing an absent association succeeds.
func (s *TagService) RemoveTagFromLead(ctx context.Context, leadID, tagID int64) error {
	if tagID <= 0 {
		return domainerrors.Validation("tagId is required")
	}

	removed, err := s.store.RemoveLeadTag(ctx, leadID, tagID)
	if err != nil {
		return fmt.Errorf("remove lead tag: %w", err)
	}

	if removed {
		s.logger.Info("tag removed from lead", "lead_id", leadID, "tag_id", tagID)
	}
	return nil
}
