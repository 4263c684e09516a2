package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signup",
		Summary:       "Sign up",
		Description:   "Creates an account with the user role. Dashboard access requires promotion by an administrator.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Verifies credentials, opens a session and sets the session cookie",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/logout",
		Summary:     "Logout",
		Description: "Deletes the current session and clears the session cookie",
		Tags:        []string{"Authentication"},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "verifySession",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/verify",
		Summary:     "Verify session",
		Description: "Reports whether the request carries a valid session. Never fails authentication.",
		Tags:        []string{"Authentication"},
	}, s.handleVerify)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/session",
		Summary:     "Current user",
		Description: "Returns the signed-in user",
		Tags:        []string{"Authentication"},
		Security:    dashboardSecurity,
	}, s.handleGetSession)
}

// === DTOs ===

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body service.SignupRequest
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" doc:"User email"`
	Password string `json:"password" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// LoginResponse describes the new session.
type LoginResponse struct {
	User      *domain.User `json:"user" doc:"Authenticated user"`
	ExpiresAt time.Time    `json:"expiresAt" doc:"Session expiry"`
	Token     string       `json:"token" doc:"Session token for Bearer authentication"`
}

// LoginOutput wraps the login response and session cookie for Huma.
type LoginOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      LoginResponse
}

// LogoutOutput clears the session cookie.
type LogoutOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      SuccessResponse
}

// VerifyResponse reports whether the caller is signed in.
type VerifyResponse struct {
	Authenticated bool `json:"authenticated" doc:"Whether the request carries a valid session"`
}

// VerifyOutput wraps the verify response for Huma.
type VerifyOutput struct {
	Body VerifyResponse
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*UserOutput, error) {
	user, err := s.services.Auth.Signup(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	client := getClient(ctx)
	if !s.loginLimiter.Allow(client.IP) {
		s.metrics.ObserveLogin(metrics.LoginRateLimited)
		s.logger.Warn("login rate limit exceeded", "ip", client.IP)
		return nil, domainerrors.RateLimited("too many login attempts, try again later")
	}

	res, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:     input.Body.Email,
		Password:  input.Body.Password,
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		SetCookie: s.sessionCookie(res.Token, res.Session.ExpiresAt),
		Body: LoginResponse{
			User:      res.User,
			ExpiresAt: res.Session.ExpiresAt,
			Token:     res.Token,
		},
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, _ *struct{}) (*LogoutOutput, error) {
	if p, err := GetPrincipal(ctx); err == nil {
		if err := s.services.Auth.Logout(ctx, p.Session.ID); err != nil {
			return nil, err
		}
	}

	return &LogoutOutput{
		SetCookie: s.clearedSessionCookie(),
		Body:      SuccessResponse{Success: true},
	}, nil
}

func (s *Server) handleVerify(ctx context.Context, _ *struct{}) (*VerifyOutput, error) {
	_, err := GetPrincipal(ctx)
	return &VerifyOutput{Body: VerifyResponse{Authenticated: err == nil}}, nil
}

func (s *Server) handleGetSession(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	p, err := GetPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: p.User}, nil
}

// sessionCookie is HTTP-only and lives as long as the session.
func (s *Server) sessionCookie(token string, expiresAt time.Time) http.Cookie {
	return http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.opts.SessionDuration.Seconds()),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *Server) clearedSessionCookie() http.Cookie {
	return http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}
