package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
)

func TestTagService_CreateTag(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	ada := env.user(t, "ada", domain.RoleEmployee)

	tag, err := env.tags.CreateTag(ctx, ada.ID, CreateTagRequest{Name: "  Hot lead  ", Description: "   "})
	require.NoError(t, err)
	assert.Equal(t, "Hot lead", tag.Name)
	assert.Equal(t, domain.DefaultTagColor, tag.Color)
	assert.Nil(t, tag.Description)
	require.NotNil(t, tag.CreatedBy)
	assert.Equal(t, ada.ID, *tag.CreatedBy)

	_, err = env.tags.CreateTag(ctx, ada.ID, CreateTagRequest{Name: "Hot lead"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = env.tags.CreateTag(ctx, ada.ID, CreateTagRequest{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.tags.CreateTag(ctx, ada.ID, CreateTagRequest{Name: "Bad", Color: "blue"})
	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.CodeValidation, derr.Code)
	assert.Equal(t, map[string]string{"color": "must be a hex color such as #3b82f6"}, derr.Details)

	_, err = env.tags.CreateTag(ctx, "", CreateTagRequest{Name: "Orphan"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestTagService_UpdateTag(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	cold := env.tag(t, "Cold")
	env.tag(t, "Hot")

	updated, err := env.tags.UpdateTag(ctx, cold.ID, UpdateTagRequest{Color: ptr("#112233"), Description: ptr(" no reply ")})
	require.NoError(t, err)
	assert.Equal(t, "Cold", updated.Name)
	assert.Equal(t, "#112233", updated.Color)
	assert.Equal(t, "no reply", domain.Deref(updated.Description))

	_, err = env.tags.UpdateTag(ctx, cold.ID, UpdateTagRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.tags.UpdateTag(ctx, cold.ID, UpdateTagRequest{Name: ptr("Hot")})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = env.tags.UpdateTag(ctx, 999, UpdateTagRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	got, err := env.tags.GetTag(ctx, cold.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cold", got.Name, "failed updates must not persist")
}

func TestTagService_DeleteTag(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	w := env.website(t, "https://acme.example")
	l := env.lead(t, w.ID, "one", "Acme")
	tag := env.tag(t, "VIP")

	_, err := env.tags.AddTagToLead(ctx, "", l.ID, tag.ID)
	require.NoError(t, err)

	require.NoError(t, env.tags.DeleteTag(ctx, tag.ID))

	view, err := env.leads.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Tags)

	assert.ErrorIs(t, env.tags.DeleteTag(ctx, tag.ID), domainerrors.ErrNotFound)
}

func TestTagService_AddTagToLead(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	w := env.website(t, "https://acme.example")
	l := env.lead(t, w.ID, "one", "Acme")
	tag := env.tag(t, "VIP")
	ada := env.user(t, "ada", domain.RoleEmployee)

	lt, err := env.tags.AddTagToLead(ctx, ada.ID, l.ID, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, l.ID, lt.LeadID)
	assert.Equal(t, ada.ID, domain.Deref(lt.CreatedBy))

	_, err = env.tags.AddTagToLead(ctx, ada.ID, l.ID, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	_, err = env.tags.AddTagToLead(ctx, ada.ID, 404, tag.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.tags.AddTagToLead(ctx, ada.ID, l.ID, 404)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.tags.AddTagToLead(ctx, ada.ID, l.ID, 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestTagService_RemoveTagFromLead_Idempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	w := env.website(t, "https://acme.example")
	l := env.lead(t, w.ID, "one", "Acme")
	tag := env.tag(t, "VIP")

	_, err := env.tags.AddTagToLead(ctx, "", l.ID, tag.ID)
	require.NoError(t, err)

	require.NoError(t, env.tags.RemoveTagFromLead(ctx, l.ID, tag.ID))
	require.NoError(t, env.tags.RemoveTagFromLead(ctx, l.ID, tag.ID))
	require.NoError(t, env.tags.RemoveTagFromLead(ctx, 404, tag.ID))

	assert.ErrorIs(t, env.tags.RemoveTagFromLead(ctx, l.ID, 0), domainerrors.ErrValidation)
}

func TestTagService_ListTags(t *testing.T) {
	env := setupTestEnv(t)
	env.tag(t, "b")
	env.tag(t, "a")

	tags, err := env.tags.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Name)
}
