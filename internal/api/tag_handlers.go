package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name",
		Tags:        []string{"Tags"},
		Security:    dashboardSecurity,
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/v1/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag",
		Tags:          []string{"Tags"},
		Security:      dashboardSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
		Security:    dashboardSecurity,
	}, s.handleGetTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Description: "Updates the name, color or description of a tag",
		Tags:        []string{"Tags"},
		Security:    dashboardSecurity,
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from every lead",
		Tags:        []string{"Tags"},
		Security:    dashboardSecurity,
	}, s.handleDeleteTag)
}

// === DTOs ===

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body service.CreateTagRequest
}

// TagOutput wraps a tag for Huma.
type TagOutput struct {
	Body *domain.Tag
}

// TagIDInput identifies a tag.
type TagIDInput struct {
	ID int64 `path:"id" doc:"Tag ID"`
}

// UpdateTagInput wraps the update tag request for Huma.
type UpdateTagInput struct {
	ID   int64 `path:"id" doc:"Tag ID"`
	Body service.UpdateTagRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagsOutput{Body: tags}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	user, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.CreateTag(ctx, user.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.GetTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	tag, err := s.services.Tag.UpdateTag(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*SuccessOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Tag.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return success(), nil
}
