package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := hasher.Hash("secret-pass")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-pass", hash)

		ok, err := hasher.Verify("secret-pass", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		hash, err := hasher.Hash("secret-pass")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrong-pass", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.Error(t, err)
	})

	t.Run("empty inputs on verify", func(t *testing.T) {
		_, err := hasher.Verify("", "hash")
		assert.Error(t, err)
		_, err = hasher.Verify("pass", "")
		assert.Error(t, err)
	})
}
