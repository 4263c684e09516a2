package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Expiry(t *testing.T) {
	live := &Session{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, live.IsExpired())
	assert.Greater(t, live.TTL(), 59*time.Minute)

	dead := &Session{ExpiresAt: time.Now().Add(-time.Second)}
	assert.True(t, dead.IsExpired())
	assert.Equal(t, time.Duration(0), dead.TTL())
}

func TestLead_Helpers(t *testing.T) {
	assert.False(t, (&Lead{}).IsAssigned())
	assert.False(t, (&Lead{AssignedTo: StringPtr("")}).IsAssigned())
	assert.True(t, (&Lead{AssignedTo: StringPtr("usr-1")}).IsAssigned())

	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", Deref(StringPtr("x")))
	assert.Equal(t, "", Deref(nil))
}
