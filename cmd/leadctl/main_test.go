package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadboard/leadboard-server/internal/domain"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestUserCommands(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	data := t.TempDir()

	out := run(t, "user", "create", "--data-path", data,
		"--email", "ops@example.com", "--name", "Ops", "--password", "password123", "--role", "employee")
	assert.Contains(t, out, "as employee")

	match := regexp.MustCompile(`\(id (\S+)\)`).FindStringSubmatch(out)
	require.Len(t, match, 2)

	out = run(t, "user", "list", "--data-path", data)
	assert.Contains(t, out, "ops@example.com")

	out = run(t, "user", "set-role", "--data-path", data, match[1], "admin")
	assert.Contains(t, out, "ops@example.com is now admin")
}

func TestSeedCommand(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	data := t.TempDir()

	out := run(t, "seed", "--data-path", data, "--websites", "2", "--leads", "10")
	assert.Contains(t, out, "seeded 2 websites and 10 leads")

	e, err := openEnv(false)
	require.NoError(t, err)
	defer e.Close()

	websites, err := e.store.ListWebsites(t.Context())
	require.NoError(t, err)
	assert.Len(t, websites, 2)

	leads, err := e.store.ListLeads(t.Context(), domain.LeadQuery{})
	require.NoError(t, err)
	assert.Len(t, leads, 10)
}

func TestRandomLead(t *testing.T) {
	for range 50 {
		l := randomLead(7)
		assert.Equal(t, int64(7), l.WebsiteID)
		require.NotNil(t, l.Name)
		require.NotNil(t, l.Company)
		if l.Email != nil {
			assert.Contains(t, *l.Email, "@")
		}
	}
}
