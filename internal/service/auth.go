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
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/store"
)

// touchInterval limits how often a session's LastSeenAt is rewritten.
const touchInterval = time.Minute

// AuthService handles sign-up, login, logout and per-request session checks.
type AuthService struct {
	store           store.Store
	sessions        store.SessionStore
	tokens          *auth.TokenService
	sessionDuration time.Duration
	metrics         *metrics.Metrics
	logger          *slog.Logger
	now             func() time.Time
}

// NewAuthService creates a new authentication service. m may be nil.
func NewAuthService(
	store store.Store,
	sessions store.SessionStore,
	tokens *auth.TokenService,
	sessionDuration time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:           store,
		sessions:        sessions,
		tokens:          tokens,
		sessionDuration: sessionDuration,
		metrics:         m,
		logger:          logger,
		now:             time.Now,
	}
}

// SignupRequest contains self-service registration data.
type SignupRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"` // Extracted from request by handler
	UserAgent string `json:"-"`
}

// LoginResult is a new session and the token naming it.
type LoginResult struct {
	User    *domain.User
	Session *domain.Session
	Token   string
}

// Principal is the authenticated caller of a request.
type Principal struct {
	User    *domain.User
	Session *domain.Session
}

// Signup creates an account with the user role. Such accounts can sign in
// but are refused by the dashboard until promoted.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := createUser(ctx, s.store, req.Name, req.Email, req.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether email exists
			s.metrics.ObserveLogin(metrics.LoginFailed)
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.metrics.ObserveLogin(metrics.LoginFailed)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	now := s.now()
	if user.IsBanned(now) {
		s.metrics.ObserveLogin(metrics.LoginBanned)
		return nil, domainerrors.Forbiddenf("account is banned: %s", domain.Deref(user.BanReason))
	}
	if user.Banned {
		s.liftExpiredBan(ctx, user)
	}

	sessionID, err := id.Generate(id.PrefixSession)
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	session := &domain.Session{
		ID:         sessionID,
		UserID:     user.ID,
		CreatedAt:  now.UTC(),
		ExpiresAt:  now.Add(s.sessionDuration).UTC(),
		LastSeenAt: now.UTC(),
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.metrics.ObserveLogin(metrics.LoginSuccess)
	s.logger.Info("user logged in", "user_id", user.ID, "session_id", session.ID, "ip", req.IPAddress)

	return &LoginResult{
		User:    user,
		Session: session,
		Token:   s.tokens.Issue(session, user.Role),
	}, nil
}

func (s *AuthService) liftExpiredBan(ctx context.Context, user *domain.User) {
	user.Banned = false
	user.BanReason = nil
	user.BanExpires = nil
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("failed to clear expired ban", "user_id", user.ID, "error", err)
	}
}

// Logout deletes the session. Unknown sessions are ignored.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info("user logged out", "session_id", sessionID)
	return nil
}

// Authenticate resolves a session token to its user and session.
// The session must still exist in the session store, so logout and
// revocation take effect on the next request.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnauthorized, "invalid session token")
	}

	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) || errors.Is(err, store.ErrSessionExpired) {
			return nil, domainerrors.TokenExpired("session expired or revoked")
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, domainerrors.Unauthorized("invalid session token")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.sessions.DeleteSession(ctx, session.ID)
			return nil, domainerrors.Unauthorized("account no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.IsBanned(s.now()) {
		_ = s.sessions.DeleteSession(ctx, session.ID)
		return nil, domainerrors.Forbidden("account is banned")
	}

	if s.now().Sub(session.LastSeenAt) > touchInterval {
		if err := s.sessions.TouchSession(ctx, session.ID); err != nil {
			s.logger.Debug("failed to touch session", "session_id", session.ID, "error", err)
		}
	}

	return &Principal{User: user, Session: session}, nil
}

// BootstrapAdmin creates an administrator when no users exist yet.
// It reports whether an account was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	req := CreateUserRequest{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email), Password: password, Role: domain.RoleAdmin}
	if err := validate.Validate(req); err != nil {
		return false, err
	}

	user, err := createUser(ctx, s.store, req.Name, req.Email, req.Password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}

	s.logger.Info("bootstrap administrator created", "user_id", user.ID, "email", user.Email)
	return true, nil
}
