package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	t.Parallel()

	key, err := NewKey()
	require.NoError(t, err)
	require.Len(t, key, KeySize)

	other, err := NewKey()
	require.NoError(t, err)
	require.NotEqual(t, key, other)
}

func TestSealOpen(t *testing.T) {
	t.Parallel()

	key, err := NewKey()
	require.NoError(t, err)

	t.Run("round-trip", func(t *testing.T) {
		sealed, err := Seal(key, "eyJhbGciOi.token.payload")
		require.NoError(t, err)
		require.NotContains(t, sealed, "token")

		opened, err := Open(key, sealed)
		require.NoError(t, err)
		require.Equal(t, "eyJhbGciOi.token.payload", opened)
	})

	t.Run("nonce makes sealing non-deterministic", func(t *testing.T) {
		a, err := Seal(key, "same")
		require.NoError(t, err)
		b, err := Seal(key, "same")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("wrong key fails to open", func(t *testing.T) {
		sealed, err := Seal(key, "secret")
		require.NoError(t, err)

		wrong, err := NewKey()
		require.NoError(t, err)
		_, err = Open(wrong, sealed)
		require.Error(t, err)
	})

	t.Run("tampered ciphertext fails", func(t *testing.T) {
		sealed, err := Seal(key, "secret")
		require.NoError(t, err)

		corrupted := []byte(sealed)
		corrupted[len(corrupted)-1] ^= 1
		_, err = Open(key, string(corrupted))
		require.Error(t, err)
	})

	t.Run("short keys are rejected", func(t *testing.T) {
		_, err := Seal([]byte("short"), "secret")
		require.ErrorIs(t, err, ErrInvalidKey)
		_, err = Open([]byte("short"), "whatever")
		require.ErrorIs(t, err, ErrInvalidKey)
	})
}
