package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leadboard/leadboard-server/internal/auth"
	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/id"
	"github.com/leadboard/leadboard-server/internal/store"
)

// DefaultBanReason is recorded when a ban is issued without a reason.
const DefaultBanReason = "No reason provided"

// AdminService handles account administration.
// Callers must already hold employee permissions; role changes additionally
// require CanAssignRoles.
type AdminService struct {
	store    store.Store
	sessions store.SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewAdminService creates a new admin service.
func NewAdminService(store store.Store, sessions store.SessionStore, logger *slog.Logger) *AdminService {
	return &AdminService{
		store:    store,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateUserRequest contains the data for an administrator-created account.
type CreateUserRequest struct {
	Name     string      `json:"name" validate:"notblank,max=100"`
	Email    string      `json:"email" validate:"required,email,max=254"`
	Password string      `json:"password" validate:"required,min=8,max=1024"`
	Role     domain.Role `json:"role,omitempty" validate:"omitempty,oneof=user employee admin"`
}

// BanUserRequest contains ban details. A zero ExpiresIn bans indefinitely.
type BanUserRequest struct {
	Reason string `json:"banReason,omitempty" validate:"max=500"`
	// ExpiresIn is the ban length in seconds.
	ExpiresIn int64 `json:"banExpiresIn,omitempty" validate:"gte=0"`
}

// SetPasswordRequest contains a replacement password.
type SetPasswordRequest struct {
	Password string `json:"newPassword" validate:"required,min=8,max=1024"`
}

// CreateUser creates an account. Only administrators may create accounts
// with a role other than user.
func (s *AdminService) CreateUser(ctx context.Context, actor *domain.User, req CreateUserRequest) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if req.Role != domain.RoleUser && !domain.CanAssignRoles(actor.Role) {
		return nil, domainerrors.Forbiddenf("only administrators can create %s accounts", req.Role)
	}

	user, err := createUser(ctx, s.store, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created by admin",
		"admin_id", actor.ID,
		"user_id", user.ID,
		"role", user.Role,
	)
	return user, nil
}

// createUser hashes the password and stores a new account.
func createUser(ctx context.Context, st store.Store, name, email, password string, role domain.Role) (*domain.User, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := st.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BanUser bans a user and signs them out everywhere.
func (s *AdminService) BanUser(ctx context.Context, actor *domain.User, targetID string, req BanUserRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if actor.ID == targetID {
		return nil, domainerrors.Validation("cannot ban your own account")
	}

	user, err := getUser(ctx, s.store, targetID)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultBanReason
	}
	user.Banned = true
	user.BanReason = &reason
	user.BanExpires = nil
	if req.ExpiresIn > 0 {
		expires := s.now().Add(time.Duration(req.ExpiresIn) * time.Second).UTC()
		user.BanExpires = &expires
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, "ban user")
	}
	s.revokeSessions(ctx, user.ID)

	s.logger.Info("user banned",
		"admin_id", actor.ID,
		"user_id", user.ID,
		"reason", reason,
	)
	return user, nil
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, actor *domain.User, targetID string) (*domain.User, error) {
	user, err := getUser(ctx, s.store, targetID)
	if err != nil {
		return nil, err
	}

	user.Banned = false
	user.BanReason = nil
	user.BanExpires = nil
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, "unban user")
	}

	s.logger.Info("user unbanned", "admin_id", actor.ID, "user_id", user.ID)
	return user, nil
}

// SetPassword replaces a user's password and signs them out everywhere.
func (s *AdminService) SetPassword(ctx context.Context, actor *domain.User, targetID string, req SetPasswordRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := getUser(ctx, s.store, targetID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, "set password")
	}
	s.revokeSessions(ctx, user.ID)

	s.logger.Info("user password reset", "admin_id", actor.ID, "user_id", user.ID)
	return user, nil
}

// SetRole changes a user's role. Administrators cannot change their own role.
func (s *AdminService) SetRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error) {
	if !domain.CanAssignRoles(actor.Role) {
		return nil, domainerrors.Forbidden("only administrators can change roles")
	}
	if !role.Valid() {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"role": "must be one of: user employee admin"})
	}
	if actor.ID == targetID {
		return nil, domainerrors.Validation("cannot change your own role")
	}

	user, err := getUser(ctx, s.store, targetID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	previous := user.Role
	user.Role = role
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, storeError(err, "set role")
	}

	s.logger.Info("user role changed",
		"admin_id", actor.ID,
		"user_id", user.ID,
		"from", previous,
		"to", role,
	)
	return user, nil
}

// ListUsers returns every account, including ban state, ordered by name.
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListUserSessions returns the user's unexpired sessions.
func (s *AdminService) ListUserSessions(ctx context.Context, targetID string) ([]*domain.Session, error) {
	if _, err := getUser(ctx, s.store, targetID); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListUserSessions(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// RevokeUserSessions signs a user out everywhere and returns how many sessions were removed.
// Revoking your own sessions is allowed and ends the current one too.
func (s *AdminService) RevokeUserSessions(ctx context.Context, actor *domain.User, targetID string) (int, error) {
	if _, err := getUser(ctx, s.store, targetID); err != nil {
		return 0, err
	}

	n, err := s.sessions.DeleteUserSessions(ctx, targetID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}

	s.logger.Info("user sessions revoked", "admin_id", actor.ID, "user_id", targetID, "count", n)
	return n, nil
}

// DeleteUser removes an account. Leads assigned to it become unassigned.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.User, targetID string) error {
	if actor.ID == targetID {
		return domainerrors.Validation("cannot delete your own account")
	}

	if err := s.store.DeleteUser(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.revokeSessions(ctx, targetID)

	s.logger.Info("user deleted", "admin_id", actor.ID, "user_id", targetID)
	return nil
}

// revokeSessions signs a user out everywhere. Failures are logged, not returned.
func (s *AdminService) revokeSessions(ctx context.Context, userID string) {
	n, err := s.sessions.DeleteUserSessions(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to revoke sessions", "user_id", userID, "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("sessions revoked", "user_id", userID, "count", n)
	}
}
