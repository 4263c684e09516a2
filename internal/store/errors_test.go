package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadboard/leadboard-server/internal/store"
)

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get lead 3: %w", store.ErrNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrAlreadyExists)
	assert.NotErrorIs(t, store.ErrSessionExpired, store.ErrSessionNotFound)
	assert.Equal(t, "get lead 3: resource not found", err.Error())
}
