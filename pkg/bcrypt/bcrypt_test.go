package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	require.NoError(t, ComparePassword(hash, "s3cret-pass"))
	require.ErrorIs(t, ComparePassword(hash, "wrong"), ErrMismatch)
}

func TestCompareMalformedHash(t *testing.T) {
	err := ComparePassword("not-a-hash", "whatever")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMismatch)
}
