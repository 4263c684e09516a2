package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role        Role
		valid       bool
		employee    bool
		admin       bool
		assignRoles bool
	}{
		{RoleUser, true, false, false, false},
		{RoleEmployee, true, true, false, false},
		{RoleAdmin, true, true, true, true},
		{Role("owner"), false, false, false, false},
		{Role(""), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
			assert.Equal(t, tt.employee, HasEmployeePermissions(tt.role))
			assert.Equal(t, tt.admin, HasAdminPermissions(tt.role))
			assert.Equal(t, tt.assignRoles, CanAssignRoles(tt.role))
		})
	}
}

func TestUser_IsBanned(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.False(t, (&User{}).IsBanned(now))
	assert.True(t, (&User{Banned: true}).IsBanned(now), "ban without expiry is permanent")
	assert.True(t, (&User{Banned: true, BanExpires: &future}).IsBanned(now))
	assert.False(t, (&User{Banned: true, BanExpires: &past}).IsBanned(now), "expired ban has lapsed")
}

func TestUser_Ref(t *testing.T) {
	u := &User{ID: "usr-1", Name: "Ada", Email: "ada@example.com", Role: RoleEmployee}
	assert.Equal(t, &UserRef{ID: "usr-1", Name: "Ada", Email: "ada@example.com"}, u.Ref())
	assert.True(t, u.IsEmployee())
	assert.False(t, u.IsAdmin())
}
