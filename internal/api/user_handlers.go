package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns the accounts leads can be assigned to, ordered by name",
		Tags:        []string{"Users"},
		Security:    dashboardSecurity,
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}",
		Summary:     "Get user",
		Description: "Returns one account's public details",
		Tags:        []string{"Users"},
		Security:    dashboardSecurity,
	}, s.handleGetUser)
}

// UserSummary is the public subset of a user shown in assignment pickers.
type UserSummary struct {
	ID        string      `json:"id" doc:"User ID"`
	Name      string      `json:"name" doc:"Display name"`
	Email     string      `json:"email" doc:"Email address"`
	Role      domain.Role `json:"role" doc:"user, employee or admin"`
	CreatedAt time.Time   `json:"createdAt" doc:"Creation time"`
}

func toUserSummary(u *domain.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummaryOutput wraps a single user summary for Huma.
type UserSummaryOutput struct {
	Body UserSummary
}

// UsersOutput wraps a list of users for Huma.
type UsersOutput struct {
	Body []UserSummary
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*UsersOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserSummary, len(users))
	for i, u := range users {
		resp[i] = toUserSummary(u)
	}
	return &UsersOutput{Body: resp}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserSummaryOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	user, err := s.services.User.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserSummaryOutput{Body: toUserSummary(user)}, nil
}
