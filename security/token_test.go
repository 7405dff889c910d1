package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, "blog-service")

	token, expiresAt, err := m.Issue(42, "alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("a", time.Hour, "").Issue(1, "u", nil)
	require.NoError(t, err)

	_, err = NewTokenManager("b", time.Hour, "").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("s", time.Minute, "")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := m.Issue(1, "u", nil)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignIssuer(t *testing.T) {
	token, _, err := NewTokenManager("s", time.Hour, "other").Issue(1, "u", nil)
	require.NoError(t, err)

	_, err = NewTokenManager("s", time.Hour, "blog-service").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("s", time.Hour, "").Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
