package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leadboard/leadboard-server/internal/auth"
	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/metrics"
	"github.com/leadboard/leadboard-server/internal/store/sessionstore"
	"github.com/leadboard/leadboard-server/internal/store/sqlite"
)

// testEnv wires every service to a temporary SQLite database and an
// in-memory session store.
type testEnv struct {
	store    *sqlite.Store
	sessions *sessionstore.Store
	tokens   *auth.TokenService
	metrics  *metrics.Metrics

	leads    *LeadService
	tags     *TagService
	users    *UserService
	admin    *AdminService
	websites *WebsiteService
	auth     *AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	sessions, err := sessionstore.Open("", logger, sessionstore.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	key, err := auth.LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key)
	require.NoError(t, err)

	m := metrics.New()

	return &testEnv{
		store:    st,
		sessions: sessions,
		tokens:   tokens,
		metrics:  m,
		leads:    NewLeadService(st, m, logger),
		tags:     NewTagService(st, logger),
		users:    NewUserService(st),
		admin:    NewAdminService(st, sessions, logger),
		websites: NewWebsiteService(st),
		auth:     NewAuthService(st, sessions, tokens, 24*time.Hour, m, logger),
	}
}

func (e *testEnv) website(t *testing.T, url string) *domain.Website {
	t.Helper()
	w := &domain.Website{URL: url}
	require.NoError(t, e.store.CreateWebsite(context.Background(), w))
	return w
}

func (e *testEnv) lead(t *testing.T, websiteID int64, name, company string) *domain.Lead {
	t.Helper()
	l := &domain.Lead{
		Name:      domain.StringPtr(name),
		Company:   domain.StringPtr(company),
		Email:     domain.StringPtr(name + "@example.com"),
		WebsiteID: websiteID,
	}
	require.NoError(t, e.store.CreateLead(context.Background(), l))
	return l
}

// user creates an account with a real password hash so it can log in.
func (e *testEnv) user(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	u, err := createUser(context.Background(), e.store, name, name+"@example.com", "password123", role)
	require.NoError(t, err)
	return u
}

func (e *testEnv) tag(t *testing.T, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{Name: name}
	require.NoError(t, e.store.CreateTag(context.Background(), tag))
	return tag
}

func ptr[T any](v T) *T { return &v }
