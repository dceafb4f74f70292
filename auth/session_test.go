package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssueAndValidate(t *testing.T) {
	sm := NewSessionManager(time.Minute)

	sess := sm.Issue("alice")
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "alice", sess.Username)

	got, err := sm.Validate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)

	_, err = sm.Validate("no-such-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpiry(t *testing.T) {
	sm := NewSessionManager(-time.Second) // already expired on issue

	sess := sm.Issue("alice")
	_, err := sm.Validate(sess.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// Expired tokens are removed; a second probe sees an unknown token.
	_, err = sm.Validate(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRevoke(t *testing.T) {
	sm := NewSessionManager(time.Minute)

	sess := sm.Issue("alice")
	sm.Revoke(sess.Token)
	_, err := sm.Validate(sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
