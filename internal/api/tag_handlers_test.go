package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadboard/leadboard-server/internal/domain"
)

func TestTagLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	token, user := ts.createUser(t, "clerk", domain.RoleEmployee)

	resp := ts.api.Post("/api/v1/tags", bearer(token), map[string]any{
		"name":        "  Hot  ",
		"description": "   ",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	tag := decode[domain.Tag](t, resp)
	assert.Equal(t, "Hot", tag.Name)
	assert.Equal(t, domain.DefaultTagColor, tag.Color)
	assert.Nil(t, tag.Description)
	assert.Equal(t, user.ID, domain.Deref(tag.CreatedBy))

	resp = ts.api.Get("/api/v1/tags/"+itoa(tag.ID), bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Patch("/api/v1/tags/"+itoa(tag.ID), bearer(token), map[string]any{"color": "#00ff00"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[domain.Tag](t, resp)
	assert.Equal(t, "#00ff00", updated.Color)
	assert.Equal(t, "Hot", updated.Name)

	resp = ts.api.Get("/api/v1/tags", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]domain.Tag](t, resp), 1)

	resp = ts.api.Delete("/api/v1/tags/"+itoa(tag.ID), bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/tags/"+itoa(tag.ID), bearer(token))
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, resp).Code)
}

func TestCreateTag_Errors(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createUser(t, "clerk", domain.RoleEmployee)

	resp := ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": "VIP"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": "VIP"})
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "ALREADY_EXISTS", decode[errorBody](t, resp).Code)

	resp = ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": "Cold", "color": "blue"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	body := decode[errorBody](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Details, "color")

	resp = ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": "   "})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Post("/api/v1/tags", bearer(token), map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[errorBody](t, resp).Code)
}

func TestUpdateTag_Errors(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createUser(t, "clerk", domain.RoleEmployee)

	var ids []int64
	for _, name := range []string{"A", "B"} {
		resp := ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, resp.Code)
		ids = append(ids, decode[domain.Tag](t, resp).ID)
	}

	resp := ts.api.Patch("/api/v1/tags/"+itoa(ids[0]), bearer(token), map[string]any{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Patch("/api/v1/tags/"+itoa(ids[0]), bearer(token), map[string]any{"name": "B"})
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp = ts.api.Patch("/api/v1/tags/9999", bearer(token), map[string]any{"name": "C"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
