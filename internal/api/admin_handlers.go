package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Description: "Returns every account with its role and ban state, ordered by name",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "adminCreateUser",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/users",
		Summary:       "Create user",
		Description:   "Creates an account. Only administrators may create employee or admin accounts.",
		Tags:          []string{"Admin"},
		Security:      dashboardSecurity,
		DefaultStatus: http.StatusCreated,
	}, s.handleAdminCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminBanUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users/{id}/ban",
		Summary:     "Ban user",
		Description: "Bans a user and revokes all their sessions",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminBanUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminUnbanUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users/{id}/unban",
		Summary:     "Unban user",
		Description: "Lifts a ban",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminUnbanUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSetPassword",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/users/{id}/password",
		Summary:     "Set password",
		Description: "Replaces a user's password and revokes all their sessions",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminSetPassword)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSetRole",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/users/{id}/role",
		Summary:     "Set role",
		Description: "Changes a user's role. Administrators only.",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminSetRole)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminDeleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes an account. Its leads become unassigned.",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminDeleteUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUserSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users/{id}/sessions",
		Summary:     "List user sessions",
		Description: "Returns the account's unexpired sessions",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminListUserSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminRevokeUserSessions",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/users/{id}/sessions",
		Summary:     "Revoke user sessions",
		Description: "Signs the account out everywhere",
		Tags:        []string{"Admin"},
		Security:    dashboardSecurity,
	}, s.handleAdminRevokeUserSessions)
}

// === DTOs ===

// AdminCreateUserInput wraps the create user request for Huma.
type AdminCreateUserInput struct {
	Body service.CreateUserRequest
}

// AdminUsersOutput wraps the full account list for Huma.
type AdminUsersOutput struct {
	Body []*domain.User
}

// SessionsOutput wraps a list of sessions for Huma.
type SessionsOutput struct {
	Body []*domain.Session
}

// RevokeSessionsResponse reports how many sessions were removed.
type RevokeSessionsResponse struct {
	Revoked int `json:"revoked" doc:"Number of sessions removed"`
}

// RevokeSessionsOutput wraps the revoke response for Huma.
type RevokeSessionsOutput struct {
	Body RevokeSessionsResponse
}

// UserIDInput identifies a user.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// BanUserInput wraps the ban request for Huma.
type BanUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body service.BanUserRequest
}

// SetPasswordInput wraps the set password request for Huma.
type SetPasswordInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body service.SetPasswordRequest
}

// SetRoleRequest is the request body for changing a role.
type SetRoleRequest struct {
	Role domain.Role `json:"role" doc:"user, employee or admin"`
}

// SetRoleInput wraps the set role request for Huma.
type SetRoleInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body SetRoleRequest
}

// === Handlers ===

func (s *Server) handleAdminCreateUser(ctx context.Context, input *AdminCreateUserInput) (*UserOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.CreateUser(ctx, actor, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminBanUser(ctx context.Context, input *BanUserInput) (*UserOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.BanUser(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminUnbanUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.UnbanUser(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminSetPassword(ctx context.Context, input *SetPasswordInput) (*UserOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.SetPassword(ctx, actor, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminSetRole(ctx context.Context, input *SetRoleInput) (*UserOutput, error) {
	actor, err := RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Admin.SetRole(ctx, actor, input.ID, input.Body.Role)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleAdminDeleteUser(ctx context.Context, input *UserIDInput) (*SuccessOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Admin.DeleteUser(ctx, actor, input.ID); err != nil {
		return nil, err
	}
	return success(), nil
}

func (s *Server) handleAdminListUsers(ctx context.Context, _ *struct{}) (*AdminUsersOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	users, err := s.services.Admin.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminUsersOutput{Body: users}, nil
}

func (s *Server) handleAdminListUserSessions(ctx context.Context, input *UserIDInput) (*SessionsOutput, error) {
	if _, err := RequireEmployee(ctx); err != nil {
		return nil, err
	}

	sessions, err := s.services.Admin.ListUserSessions(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SessionsOutput{Body: sessions}, nil
}

func (s *Server) handleAdminRevokeUserSessions(ctx context.Context, input *UserIDInput) (*RevokeSessionsOutput, error) {
	actor, err := RequireEmployee(ctx)
	if err != nil {
		return nil, err
	}

	n, err := s.services.Admin.RevokeUserSessions(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}
	return &RevokeSessionsOutput{Body: RevokeSessionsResponse{Revoked: n}}, nil
}
