package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateValidate(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", time.Hour, "campus-events")

	token, expiresAt, err := m.Generate("session-1", "org-1", "org@example.com", "organization")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "session-1", claims.ID)
	require.Equal(t, "org-1", claims.Subject)
	require.Equal(t, "org@example.com", claims.Email)
	require.Equal(t, "organization", claims.Role)
}

func TestGenerateRequiresIDs(t *testing.T) {
	m := NewManager("secret", time.Hour, "campus-events")

	_, _, err := m.Generate("", "org-1", "", "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("0123456789abcdef0123456789abcdef", time.Hour, "campus-events")
	token, _, err := m.Generate("session-1", "org-1", "org@example.com", "admin")
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		_, err := m.Validate("")
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewManager("ffffffffffffffffffffffffffffffff", time.Hour, "campus-events")
		_, err := other.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := NewManager("0123456789abcdef0123456789abcdef", time.Hour, "someone-else")
		_, err := other.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewManager("0123456789abcdef0123456789abcdef", -time.Minute, "campus-events")
		old, _, err := expired.Generate("session-2", "org-1", "", "")
		require.NoError(t, err)
		_, err = m.Validate(old)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
