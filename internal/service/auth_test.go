package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
)

func TestAuthService_Signup(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	u, err := env.auth.Signup(ctx, SignupRequest{Name: "Ada", Email: " ada@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)

	_, err = env.auth.Signup(ctx, SignupRequest{Name: "Ada 2", Email: "ADA@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = env.auth.Signup(ctx, SignupRequest{Name: "x", Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	ada := env.user(t, "ada", domain.RoleEmployee)

	res, err := env.auth.Login(ctx, LoginRequest{Email: "ADA@example.com", Password: "password123", IPAddress: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, ada.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "10.0.0.1", res.Session.IPAddress)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), res.Session.ExpiresAt, time.Minute)

	p, err := env.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, p.User.ID)
	assert.Equal(t, res.Session.ID, p.Session.ID)

	require.NoError(t, env.auth.Logout(ctx, res.Session.ID))
	_, err = env.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)

	// Logging out twice is harmless.
	require.NoError(t, env.auth.Logout(ctx, res.Session.ID))
}

func TestAuthService_LoginFailures(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.user(t, "ada", domain.RoleEmployee)

	_, err := env.auth.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = env.auth.Login(ctx, LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestAuthService_ExpiredBanIsLifted(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	ada := env.user(t, "ada", domain.RoleEmployee)

	past := time.Now().Add(-time.Hour)
	ada.Banned = true
	ada.BanReason = ptr("spam")
	ada.BanExpires = &past
	require.NoError(t, env.store.UpdateUser(ctx, ada))

	_, err := env.auth.Login(ctx, LoginRequest{Email: ada.Email, Password: "password123"})
	require.NoError(t, err)

	got, err := env.users.GetUser(ctx, ada.ID)
	require.NoError(t, err)
	assert.False(t, got.Banned)
}

func TestAuthService_Authenticate_Rejects(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Authenticate(ctx, "v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	// A well-formed token for a session that was never stored.
	forged := env.tokens.Issue(&domain.Session{
		ID:        "ses-forged",
		UserID:    "usr-ghost",
		ExpiresAt: time.Now().Add(time.Hour),
	}, domain.RoleAdmin)
	_, err = env.auth.Authenticate(ctx, forged)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	ada := env.user(t, "ada", domain.RoleEmployee)

	res, err := env.auth.Login(ctx, LoginRequest{Email: ada.Email, Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, env.store.DeleteUser(ctx, ada.ID))

	_, err = env.auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	created, err := env.auth.BootstrapAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created, "nothing configured")

	created, err = env.auth.BootstrapAdmin(ctx, "", "root@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, created)

	u, err := env.store.GetUserByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "Administrator", u.Name)

	created, err = env.auth.BootstrapAdmin(ctx, "Other", "other@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, created, "users already exist")
}
