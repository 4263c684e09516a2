package api

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/service"
)

// sessionCookieName carries the session token for browser clients.
const sessionCookieName = "session_token"

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	principalKey ctxKey = "principal"
	authErrorKey ctxKey = "authError"
	clientKey    ctxKey = "client"
)

// clientInfo identifies the caller's network origin.
type clientInfo struct {
	IP        string
	UserAgent string
}

// authMiddleware resolves the session token from the cookie or a Bearer header.
// Requests without a valid session continue anonymously; the failure is kept in
// context so handlers that require auth can report why.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientKey, clientInfo{
				IP:        clientIP(r),
				UserAgent: r.UserAgent(),
			})

			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			principal, err := auth.Authenticate(ctx, token)
			if err != nil {
				ctx = context.WithValue(ctx, authErrorKey, err)
			} else {
				ctx = context.WithValue(ctx, principalKey, principal)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken prefers the cookie and falls back to "Authorization: Bearer".
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// clientIP strips the port from RemoteAddr. middleware.RealIP has already
// applied X-Forwarded-For / X-Real-IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func getClient(ctx context.Context) clientInfo {
	c, _ := ctx.Value(clientKey).(clientInfo)
	return c
}

// GetPrincipal returns the authenticated caller.
// Returns the authentication failure, or 401 when no token was sent.
func GetPrincipal(ctx context.Context) (*service.Principal, error) {
	if p, ok := ctx.Value(principalKey).(*service.Principal); ok && p != nil {
		return p, nil
	}
	if err, ok := ctx.Value(authErrorKey).(error); ok {
		return nil, err
	}
	return nil, domainerrors.Unauthorized("authentication required")
}

// RequireEmployee returns the caller when they may use the dashboard.
func RequireEmployee(ctx context.Context) (*domain.User, error) {
	p, err := GetPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.HasEmployeePermissions(p.User.Role) {
		return nil, domainerrors.Forbidden("employee access required")
	}
	return p.User, nil
}

// RequireAdmin returns the caller when they are an administrator.
func RequireAdmin(ctx context.Context) (*domain.User, error) {
	p, err := GetPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !domain.HasAdminPermissions(p.User.Role) {
		return nil, domainerrors.Forbidden("admin access required")
	}
	return p.User, nil
}
