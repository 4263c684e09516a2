package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{
		ID:           "usr-ada",
		Name:         "Ada Lovelace",
		Email:        "Ada@Example.com",
		PasswordHash: "$argon2id$stub",
		Role:         domain.RoleAdmin,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "usr-ada")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Email != "Ada@Example.com" || got.Role != domain.RoleAdmin || got.PasswordHash != "$argon2id$stub" {
		t.Errorf("unexpected user: %+v", got)
	}

	byEmail, err := s.GetUserByEmail(ctx, " ada@example.COM ")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("GetUserByEmail: got %s", byEmail.ID)
	}
}

func TestCreateUser_DefaultRoleAndDuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{ID: "usr-1", Name: "One", Email: "one@example.com"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Errorf("Role: got %q, want user", u.Role)
	}

	err := s.CreateUser(ctx, &domain.User{ID: "usr-2", Name: "Two", Email: "ONE@example.com"})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for case-insensitive duplicate, got %v", err)
	}
}

func TestListUsers_OrderedByName(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "usr-z", "Zed")
	seedUser(t, s, "usr-a", "Alice")

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Alice" || users[1].Name != "Zed" {
		t.Errorf("unexpected order: %+v", users)
	}

	n, err := s.CountUsers(context.Background())
	if err != nil || n != 2 {
		t.Errorf("CountUsers: got %d, %v", n, err)
	}
}

func TestGetUsersByIDs(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "usr-a", "A")
	seedUser(t, s, "usr-b", "B")

	users, err := s.GetUsersByIDs(context.Background(), []string{"usr-a", "usr-missing"})
	if err != nil {
		t.Fatalf("GetUsersByIDs: %v", err)
	}
	if len(users) != 1 || users[0].ID != "usr-a" {
		t.Errorf("unexpected users: %+v", users)
	}
}

func TestUpdateUser_Ban(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "usr-a", "A")

	expires := time.Now().Add(24 * time.Hour).UTC()
	u.Banned = true
	u.BanReason = domain.StringPtr("spam")
	u.BanExpires = &expires
	if err := s.UpdateUser(ctx, u); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if !got.Banned || domain.Deref(got.BanReason) != "spam" || got.BanExpires == nil || !got.BanExpires.Equal(expires) {
		t.Errorf("ban not persisted: %+v", got)
	}

	if err := s.UpdateUser(ctx, &domain.User{ID: "usr-nope", Role: domain.RoleUser}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown user: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser_UnassignsLeads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	w := seedWebsite(t, s, "https://acme.example")
	l := seedLead(t, s, w.ID, "One", "Acme")
	u := seedUser(t, s, "usr-a", "A")

	if err := s.AssignLead(ctx, l.ID, &u.ID); err != nil {
		t.Fatalf("AssignLead: %v", err)
	}
	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	got, err := s.GetLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetLead: %v", err)
	}
	if got.AssignedTo != nil {
		t.Errorf("expected lead to become unassigned, got %q", *got.AssignedTo)
	}

	if err := s.DeleteUser(ctx, u.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}
